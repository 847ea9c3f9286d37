package model

import (
	"time"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"

	ThemeLight = "light"
	ThemeDark  = "dark"
)

type User struct {
	ID             string    `json:"id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	HashedPassword string    `json:"-"` // Not exposed
	Role           string    `json:"role"`
	WeeklyGoal     int       `json:"weekly_goal"`
	MonthlyGoal    int       `json:"monthly_goal"`
	EasyGoal       int       `json:"easy_goal"`
	MediumGoal     int       `json:"medium_goal"`
	Theme          string    `json:"theme"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

package main

import (
	"context"
	"errors"
	"os"
	"strings"

	"codetrack/internal/common"
	"codetrack/internal/common/security"
	"codetrack/internal/domain/model"
	"codetrack/internal/domain/repository"
	"codetrack/internal/platform/config"
	"codetrack/internal/platform/database"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

var sampleProblems = []struct {
	key        string
	title      string
	tags       []string
	difficulty model.ProblemDifficulty
	platform   string
}{
	{"LC-1", "Two Sum", []string{"array", "hash-table"}, model.DifficultyEasy, "LeetCode"},
	{"LC-3", "Longest Substring Without Repeating Characters", []string{"string", "sliding-window"}, model.DifficultyMedium, "LeetCode"},
	{"CF-4A", "Watermelon", []string{"math"}, model.DifficultyEasy, "Codeforces"},
	{"LC-200", "Number of Islands", []string{"dfs", "bfs", "grid"}, model.DifficultyMedium, "LeetCode"},
	{"LC-297", "Serialize and Deserialize Binary Tree", []string{"tree", "design"}, model.DifficultyHard, "LeetCode"},
}

func main() {
	config.Load()
	database.Connect()
	defer database.Close()

	ctx := context.Background()
	problemRepo := repository.NewPgProblemRepository(database.DB)
	userRepo := repository.NewPgUserRepository(database.DB)

	for _, s := range sampleProblems {
		if _, err := problemRepo.FindByKey(ctx, s.key); err == nil {
			continue
		} else if !errors.Is(err, common.ErrNotFound) {
			log.Fatalf("seed: lookup %s: %v", s.key, err)
		}

		tx, err := database.DB.BeginTx(ctx, nil)
		if err != nil {
			log.Fatalf("seed: begin tx: %v", err)
		}
		problem := &model.Problem{
			ID:         uuid.NewString(),
			ProblemKey: s.key,
			Title:      s.title,
			Difficulty: s.difficulty,
			Platform:   s.platform,
		}
		if err := problemRepo.Create(ctx, tx, problem); err != nil {
			tx.Rollback()
			log.Fatalf("seed: create %s: %v", s.key, err)
		}
		tagIDs, err := problemRepo.FindOrCreateTags(ctx, tx, s.tags)
		if err != nil {
			tx.Rollback()
			log.Fatalf("seed: tags for %s: %v", s.key, err)
		}
		if err := problemRepo.ReplaceProblemTags(ctx, tx, problem.ID, tagIDs); err != nil {
			tx.Rollback()
			log.Fatalf("seed: link tags for %s: %v", s.key, err)
		}
		if err := tx.Commit(); err != nil {
			log.Fatalf("seed: commit %s: %v", s.key, err)
		}
		log.Infof("seeded problem %s", s.key)
	}

	seedAdmin(ctx, userRepo)
	log.Info("seed completed")
}

func seedAdmin(ctx context.Context, userRepo repository.UserRepository) {
	adminEmail := config.AppConfig.AdminEmail
	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminEmail == "" || adminPassword == "" {
		return
	}

	if _, err := userRepo.FindByEmail(ctx, adminEmail); err == nil {
		return
	} else if !errors.Is(err, common.ErrNotFound) {
		log.Fatalf("seed: admin lookup: %v", err)
	}

	hashed, err := security.HashPassword(adminPassword)
	if err != nil {
		log.Fatalf("seed: hash admin password: %v", err)
	}
	admin := &model.User{
		ID:             uuid.NewString(),
		Username:       "admin",
		Email:          strings.ToLower(adminEmail),
		HashedPassword: hashed,
		Role:           model.RoleAdmin,
		Theme:          model.ThemeLight,
	}
	if err := userRepo.Create(ctx, admin); err != nil {
		log.Fatalf("seed: create admin: %v", err)
	}
	log.Info("admin user created")
}

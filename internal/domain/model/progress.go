package model

// BucketCount is one grouped-count row (difficulty or tag buckets).
type BucketCount struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// DayCount is one calendar-day timeline bucket. Days without solves are
// never emitted; callers fill gaps themselves.
type DayCount struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Day   int `json:"day"`
	Count int `json:"count"`
}

type ProgressSummary struct {
	Total        int           `json:"total"`
	ByDifficulty []BucketCount `json:"by_difficulty"`
	ByTag        []BucketCount `json:"by_tag"`
}

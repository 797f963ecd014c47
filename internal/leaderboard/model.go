package leaderboard

import "time"

// Score keeps a denormalized username next to a nullable account link, so a
// row survives even when the submitting username matches no account.
type Score struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    *uint     `json:"user_id"`
	Username  string    `gorm:"not null;index" json:"username"`
	Score     int       `gorm:"not null" json:"score"`
	Level     string    `gorm:"not null" json:"level"`
	TimeTaken int       `gorm:"column:time_taken" json:"time_taken"`
	PlayedAt  time.Time `gorm:"column:played_at" json:"played_at"`
}

type ScoreRequest struct {
	Username  string `json:"username"`
	Score     int    `json:"score"`
	Level     string `json:"level"`
	TimeTaken int    `json:"timeTaken"`
}

type ScoreEntry struct {
	Username  string    `json:"username"`
	Score     int       `json:"score"`
	Level     string    `json:"level"`
	TimeTaken int       `json:"time_taken"`
	PlayedAt  time.Time `json:"played_at"`
}

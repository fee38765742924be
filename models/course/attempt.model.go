package course

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AssessmentAttempt represents one scored submission for an assessment.
// Attempts are append-only: they are never updated or deleted, new attempts
// are added with the next attempt number. Best/latest score and pass state
// are derived from the attempt history, not stored separately.
type AssessmentAttempt struct {
	gorm.Model
	UserID        uint `json:"user_id" gorm:"index;not null"`
	ContentID     uint `json:"content_id" gorm:"index;not null"`
	AttemptNumber int  `json:"attempt_number" gorm:"default:1"`

	// Answers maps question ID (as string) to the submitted answer token
	Answers datatypes.JSONMap `json:"answers"`

	EarnedPoints    int       `json:"earned_points"`
	TotalPoints     int       `json:"total_points"`
	ScorePercentage float64   `json:"score_percentage"`
	Passed          bool      `json:"passed" gorm:"default:false"`
	SubmittedAt     time.Time `json:"submitted_at"`
	IsDeleted       bool      `gorm:"default:false"`
}

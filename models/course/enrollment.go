package course

import (
	"time"

	"gorm.io/gorm"
)

// Enrollment status values
const (
	EnrollmentStatusEnrolled   = "ENROLLED"
	EnrollmentStatusInProgress = "IN_PROGRESS"
	EnrollmentStatusCompleted  = "COMPLETED"
)

// Enrollment tracks a user's enrollment in a course with progress.
// ProgressPercentage and CompletedItems are derived caches recomputed from
// the completion states of the course's content items; they are never the
// source of truth. Completed is one-way and CompletedAt is set exactly once.
type Enrollment struct {
	gorm.Model
	UserID             uint       `json:"user_id" gorm:"not null;uniqueIndex:idx_enrollment_user_course"`
	CourseID           uint       `json:"course_id" gorm:"not null;uniqueIndex:idx_enrollment_user_course"`
	Status             string     `json:"status" gorm:"default:'ENROLLED'"` // ENROLLED, IN_PROGRESS, COMPLETED
	ProgressPercentage float64    `json:"progress_percentage" gorm:"default:0"`
	CompletedItems     int        `json:"completed_items" gorm:"default:0"`
	TotalItems         int        `json:"total_items" gorm:"default:0"`
	Completed          bool       `json:"completed" gorm:"default:false"`
	CompletedAt        *time.Time `json:"completed_at"`
	IsDeleted          bool       `gorm:"default:false"`
}

package store

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	courseModels "lms/models/course"
	"lms/progress"
)

// ProgressStore is the persistence boundary for learner progress. Video
// progress writes follow a monotonic-merge contract: concurrent sessions
// (two tabs racing on the same record) can never make the accumulated watch
// time shrink or the completed flag revert, because the merge keeps the
// larger watch time and ORs the flag instead of last-write-wins.
type ProgressStore struct {
	db *gorm.DB
}

func NewProgressStore(db *gorm.DB) *ProgressStore {
	return &ProgressStore{db: db}
}

// GetVideoProgress returns the progress record for (user, content), or nil
// when the learner has no recorded playback yet.
func (s *ProgressStore) GetVideoProgress(userID, contentID uint) (*courseModels.VideoProgress, error) {
	var vp courseModels.VideoProgress
	err := s.db.Where("user_id = ? AND content_id = ? AND is_deleted = ?", userID, contentID, false).First(&vp).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &vp, nil
}

// UpsertVideoProgress records a playback sample. The row is created on the
// first sample; afterwards the watch time merges as a monotonic max and the
// completed flag as a monotonic OR, so a late sample carrying smaller values
// cannot overwrite a larger one. The resume position only moves when the
// sample's watch time is at least the stored one: a stale out-of-order
// sample always carries a stale total and is discarded, while a deliberate
// rewind-seek carries an equal or larger total and still lands. The merge
// expressions use CASE instead of GREATEST so they run on SQLite and
// Postgres alike. Returns the merged row.
func (s *ProgressStore) UpsertVideoProgress(userID, contentID uint, positionSeconds, totalWatchTimeSeconds float64, completed bool) (*courseModels.VideoProgress, error) {
	vp := courseModels.VideoProgress{
		UserID:                userID,
		ContentID:             contentID,
		LastPositionSeconds:   positionSeconds,
		TotalWatchTimeSeconds: totalWatchTimeSeconds,
		Completed:             completed,
	}

	err := s.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "content_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"last_position_seconds":    gorm.Expr("CASE WHEN ? >= total_watch_time_seconds THEN ? ELSE last_position_seconds END", totalWatchTimeSeconds, positionSeconds),
			"total_watch_time_seconds": gorm.Expr("CASE WHEN total_watch_time_seconds >= ? THEN total_watch_time_seconds ELSE ? END", totalWatchTimeSeconds, totalWatchTimeSeconds),
			"completed":                gorm.Expr("completed OR ?", completed),
			"updated_at":               time.Now(),
		}),
	}).Create(&vp).Error
	if err != nil {
		return nil, err
	}

	var merged courseModels.VideoProgress
	if err := s.db.Where("user_id = ? AND content_id = ?", userID, contentID).First(&merged).Error; err != nil {
		return nil, err
	}
	return &merged, nil
}

// ListAttempts returns the attempt history for (user, content) in attempt
// number order.
func (s *ProgressStore) ListAttempts(userID, contentID uint) ([]courseModels.AssessmentAttempt, error) {
	var attempts []courseModels.AssessmentAttempt
	err := s.db.Where("user_id = ? AND content_id = ? AND is_deleted = ?", userID, contentID, false).
		Order("attempt_number asc").Find(&attempts).Error
	return attempts, err
}

// AppendAttempt assigns the next attempt number and stores the attempt.
// Attempts are immutable once written; concurrent submissions simply produce
// multiple attempts.
func (s *ProgressStore) AppendAttempt(attempt *courseModels.AssessmentAttempt) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&courseModels.AssessmentAttempt{}).
			Where("user_id = ? AND content_id = ? AND is_deleted = ?", attempt.UserID, attempt.ContentID, false).
			Count(&count).Error; err != nil {
			return err
		}
		attempt.AttemptNumber = int(count) + 1
		return tx.Create(attempt).Error
	})
}

// GetEnrollment returns the enrollment for (user, course), or nil when the
// user is not enrolled.
func (s *ProgressStore) GetEnrollment(userID, courseID uint) (*courseModels.Enrollment, error) {
	var enrollment courseModels.Enrollment
	err := s.db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).First(&enrollment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &enrollment, nil
}

// SetEnrollmentProgress writes the derived progress cache. The completion
// transition is a compare-and-set on completed = false, so when two
// recomputations race only one of them reports the transition and downstream
// certificate issuance fires exactly once. A completed enrollment never
// reverts, even when the summary later drops below 100 because content was
// added to the course.
func (s *ProgressStore) SetEnrollmentProgress(userID, courseID uint, summary progress.Summary) (bool, error) {
	base := s.db.Model(&courseModels.Enrollment{}).
		Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false)

	if err := base.Updates(map[string]interface{}{
		"progress_percentage": summary.Percentage,
		"completed_items":     summary.DoneCount,
		"total_items":         summary.TotalCount,
	}).Error; err != nil {
		return false, err
	}

	if summary.Completed {
		res := s.db.Model(&courseModels.Enrollment{}).
			Where("user_id = ? AND course_id = ? AND completed = ? AND is_deleted = ?", userID, courseID, false, false).
			Updates(map[string]interface{}{
				"completed":    true,
				"completed_at": time.Now(),
				"status":       courseModels.EnrollmentStatusCompleted,
			})
		return res.RowsAffected == 1, res.Error
	}

	if summary.Percentage > 0 {
		err := s.db.Model(&courseModels.Enrollment{}).
			Where("user_id = ? AND course_id = ? AND completed = ? AND is_deleted = ?", userID, courseID, false, false).
			Update("status", courseModels.EnrollmentStatusInProgress).Error
		return false, err
	}
	return false, nil
}

// RecomputeEnrollment rebuilds the enrollment progress cache from the
// current completion states of the course's published content. Idempotent
// and safe to run concurrently for the same enrollment. Returns the summary
// and whether this call performed the completion transition.
func (s *ProgressStore) RecomputeEnrollment(userID, courseID uint) (progress.Summary, bool, error) {
	var items []courseModels.CourseContent
	if err := s.db.Where("course_id = ? AND is_deleted = ? AND is_published = ?", courseID, false, true).
		Find(&items).Error; err != nil {
		return progress.Summary{}, false, err
	}

	videoCompleted, err := s.completedVideoIDs(userID)
	if err != nil {
		return progress.Summary{}, false, err
	}

	assessmentPassed, err := s.PassedAssessmentIDs(userID)
	if err != nil {
		return progress.Summary{}, false, err
	}

	summary := progress.Summarize(items, videoCompleted, assessmentPassed)
	transitioned, err := s.SetEnrollmentProgress(userID, courseID, summary)
	return summary, transitioned, err
}

// CompletedVideoIDs returns the set of video content IDs the user has
// completed, for gating and aggregation reads.
func (s *ProgressStore) CompletedVideoIDs(userID uint) (map[uint]bool, error) {
	return s.completedVideoIDs(userID)
}

// PassedAssessmentIDs returns the set of assessment content IDs the user
// has at least one passing attempt for.
func (s *ProgressStore) PassedAssessmentIDs(userID uint) (map[uint]bool, error) {
	var rows []courseModels.AssessmentAttempt
	if err := s.db.Select("content_id").
		Where("user_id = ? AND passed = ? AND is_deleted = ?", userID, true, false).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	passed := make(map[uint]bool, len(rows))
	for _, r := range rows {
		passed[r.ContentID] = true
	}
	return passed, nil
}

func (s *ProgressStore) completedVideoIDs(userID uint) (map[uint]bool, error) {
	var rows []courseModels.VideoProgress
	if err := s.db.Select("content_id").
		Where("user_id = ? AND completed = ? AND is_deleted = ?", userID, true, false).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	done := make(map[uint]bool, len(rows))
	for _, r := range rows {
		done[r.ContentID] = true
	}
	return done, nil
}

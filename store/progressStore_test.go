package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	courseModels "lms/models/course"
)

func newTestStore(t *testing.T) *ProgressStore {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&courseModels.CourseContent{},
		&courseModels.VideoProgress{},
		&courseModels.AssessmentAttempt{},
		&courseModels.Enrollment{},
	))
	return NewProgressStore(db)
}

func seedContent(t *testing.T, s *ProgressStore, courseID, moduleID uint, contentType string) courseModels.CourseContent {
	t.Helper()
	content := courseModels.CourseContent{
		CourseID:        courseID,
		ModuleID:        moduleID,
		ContentType:     contentType,
		DurationSeconds: 100,
		PassPercentage:  70,
		IsPublished:     true,
	}
	require.NoError(t, s.db.Create(&content).Error)
	return content
}

func TestUpsertVideoProgressMonotonicMerge(t *testing.T) {
	s := newTestStore(t)

	vp, err := s.UpsertVideoProgress(1, 10, 40, 35, false)
	require.NoError(t, err)
	assert.InDelta(t, 35.0, vp.TotalWatchTimeSeconds, 1e-9)
	assert.False(t, vp.Completed)

	// a later sample from a second session with a smaller total must not
	// shrink the accumulated time or move the resume point
	vp, err = s.UpsertVideoProgress(1, 10, 20, 12, false)
	require.NoError(t, err)
	assert.InDelta(t, 35.0, vp.TotalWatchTimeSeconds, 1e-9)
	assert.InDelta(t, 40.0, vp.LastPositionSeconds, 1e-9)

	vp, err = s.UpsertVideoProgress(1, 10, 95, 92, true)
	require.NoError(t, err)
	assert.True(t, vp.Completed)
	assert.InDelta(t, 92.0, vp.TotalWatchTimeSeconds, 1e-9)

	// completed never reverts, even when a stale session says otherwise
	vp, err = s.UpsertVideoProgress(1, 10, 5, 3, false)
	require.NoError(t, err)
	assert.True(t, vp.Completed)
	assert.InDelta(t, 92.0, vp.TotalWatchTimeSeconds, 1e-9)

	// one row per (user, content)
	var count int64
	s.db.Model(&courseModels.VideoProgress{}).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestUpsertVideoProgressDiscardsStalePosition(t *testing.T) {
	s := newTestStore(t)

	_, err := s.UpsertVideoProgress(1, 10, 50, 45, false)
	require.NoError(t, err)

	// an out-of-order sample carries a stale total; its position must not
	// rewind the resume point
	vp, err := s.UpsertVideoProgress(1, 10, 10, 5, false)
	require.NoError(t, err)
	assert.InDelta(t, 50.0, vp.LastPositionSeconds, 1e-9)
	assert.InDelta(t, 45.0, vp.TotalWatchTimeSeconds, 1e-9)

	// a deliberate rewind-seek carries the current total and lands
	vp, err = s.UpsertVideoProgress(1, 10, 10, 45, false)
	require.NoError(t, err)
	assert.InDelta(t, 10.0, vp.LastPositionSeconds, 1e-9)

	// and watching on from the rewind advances both
	vp, err = s.UpsertVideoProgress(1, 10, 16, 51, false)
	require.NoError(t, err)
	assert.InDelta(t, 16.0, vp.LastPositionSeconds, 1e-9)
	assert.InDelta(t, 51.0, vp.TotalWatchTimeSeconds, 1e-9)
}

func TestUpsertVideoProgressIsolatedPerUserAndContent(t *testing.T) {
	s := newTestStore(t)

	_, err := s.UpsertVideoProgress(1, 10, 50, 45, false)
	require.NoError(t, err)
	_, err = s.UpsertVideoProgress(2, 10, 5, 3, false)
	require.NoError(t, err)

	vp, err := s.GetVideoProgress(2, 10)
	require.NoError(t, err)
	require.NotNil(t, vp)
	assert.InDelta(t, 3.0, vp.TotalWatchTimeSeconds, 1e-9)

	missing, err := s.GetVideoProgress(3, 10)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestAppendAttemptNumbersSequentially(t *testing.T) {
	s := newTestStore(t)

	first := &courseModels.AssessmentAttempt{UserID: 1, ContentID: 20, ScorePercentage: 75, Passed: true}
	require.NoError(t, s.AppendAttempt(first))
	assert.Equal(t, 1, first.AttemptNumber)

	second := &courseModels.AssessmentAttempt{UserID: 1, ContentID: 20, ScorePercentage: 50}
	require.NoError(t, s.AppendAttempt(second))
	assert.Equal(t, 2, second.AttemptNumber)

	// another learner starts from 1
	other := &courseModels.AssessmentAttempt{UserID: 2, ContentID: 20, ScorePercentage: 100, Passed: true}
	require.NoError(t, s.AppendAttempt(other))
	assert.Equal(t, 1, other.AttemptNumber)

	attempts, err := s.ListAttempts(1, 20)
	require.NoError(t, err)
	require.Len(t, attempts, 2)
	assert.Equal(t, 1, attempts[0].AttemptNumber)
	assert.Equal(t, 2, attempts[1].AttemptNumber)
}

func TestRecomputeEnrollmentTransitionFiresOnce(t *testing.T) {
	s := newTestStore(t)

	video := seedContent(t, s, 1, 10, courseModels.ContentTypeVideo)
	seedContent(t, s, 1, 10, courseModels.ContentTypeArticle)
	assessment := seedContent(t, s, 1, 10, courseModels.ContentTypeAssessment)

	require.NoError(t, s.db.Create(&courseModels.Enrollment{UserID: 1, CourseID: 1, Status: courseModels.EnrollmentStatusEnrolled}).Error)

	// article alone -> 1 of 3
	summary, transitioned, err := s.RecomputeEnrollment(1, 1)
	require.NoError(t, err)
	assert.False(t, transitioned)
	assert.InDelta(t, 100.0/3, summary.Percentage, 1e-6)

	enrollment, err := s.GetEnrollment(1, 1)
	require.NoError(t, err)
	assert.Equal(t, courseModels.EnrollmentStatusInProgress, enrollment.Status)
	assert.False(t, enrollment.Completed)

	// finish the video and pass the assessment
	_, err = s.UpsertVideoProgress(1, video.ID, 95, 92, true)
	require.NoError(t, err)
	require.NoError(t, s.AppendAttempt(&courseModels.AssessmentAttempt{
		UserID: 1, ContentID: assessment.ID, ScorePercentage: 80, Passed: true,
	}))

	summary, transitioned, err = s.RecomputeEnrollment(1, 1)
	require.NoError(t, err)
	assert.True(t, transitioned)
	assert.InDelta(t, 100.0, summary.Percentage, 1e-9)

	enrollment, err = s.GetEnrollment(1, 1)
	require.NoError(t, err)
	assert.True(t, enrollment.Completed)
	require.NotNil(t, enrollment.CompletedAt)
	completedAt := *enrollment.CompletedAt

	// rerunning the recomputation must not report the transition again
	_, transitioned, err = s.RecomputeEnrollment(1, 1)
	require.NoError(t, err)
	assert.False(t, transitioned)

	enrollment, err = s.GetEnrollment(1, 1)
	require.NoError(t, err)
	assert.Equal(t, completedAt, *enrollment.CompletedAt)
}

func TestRecomputeEnrollmentCompletionSurvivesAddedContent(t *testing.T) {
	s := newTestStore(t)

	seedContent(t, s, 1, 10, courseModels.ContentTypeArticle)
	require.NoError(t, s.db.Create(&courseModels.Enrollment{UserID: 1, CourseID: 1}).Error)

	_, transitioned, err := s.RecomputeEnrollment(1, 1)
	require.NoError(t, err)
	assert.True(t, transitioned)

	// authoring adds a video after completion; the percentage drops but
	// the completed flag stays
	seedContent(t, s, 1, 10, courseModels.ContentTypeVideo)

	summary, transitioned, err := s.RecomputeEnrollment(1, 1)
	require.NoError(t, err)
	assert.False(t, transitioned)
	assert.InDelta(t, 50.0, summary.Percentage, 1e-9)

	enrollment, err := s.GetEnrollment(1, 1)
	require.NoError(t, err)
	assert.True(t, enrollment.Completed)
	assert.Equal(t, courseModels.EnrollmentStatusCompleted, enrollment.Status)
	assert.InDelta(t, 50.0, enrollment.ProgressPercentage, 1e-9)
}

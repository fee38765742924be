package progress

import (
	"testing"

	"github.com/stretchr/testify/assert"

	courseModels "lms/models/course"
)

func TestSummarizeCountsDoneItems(t *testing.T) {
	items := []courseModels.CourseContent{
		contentItem(1, 10, courseModels.ContentTypeVideo),
		contentItem(2, 10, courseModels.ContentTypeVideo),
		contentItem(3, 10, courseModels.ContentTypeArticle),
		contentItem(4, 10, courseModels.ContentTypeAssessment),
	}

	// both videos done, article free, assessment not passed -> 3 of 4
	s := Summarize(items, map[uint]bool{1: true, 2: true}, nil)
	assert.Equal(t, 3, s.DoneCount)
	assert.Equal(t, 4, s.TotalCount)
	assert.InDelta(t, 75.0, s.Percentage, 1e-9)
	assert.False(t, s.Completed)

	// passing the assessment completes the course
	s = Summarize(items, map[uint]bool{1: true, 2: true}, map[uint]bool{4: true})
	assert.Equal(t, 4, s.DoneCount)
	assert.InDelta(t, 100.0, s.Percentage, 1e-9)
	assert.True(t, s.Completed)
}

func TestSummarizeArticlesCountUnconditionally(t *testing.T) {
	items := []courseModels.CourseContent{
		contentItem(1, 10, courseModels.ContentTypeArticle),
		contentItem(2, 10, courseModels.ContentTypeArticle),
	}

	s := Summarize(items, nil, nil)
	assert.InDelta(t, 100.0, s.Percentage, 1e-9)
	assert.True(t, s.Completed)
}

func TestSummarizeEmptyCourse(t *testing.T) {
	s := Summarize(nil, nil, nil)
	assert.Zero(t, s.Percentage)
	assert.False(t, s.Completed)
}

func TestSummarizeIgnoresStateForMissingItems(t *testing.T) {
	items := []courseModels.CourseContent{
		contentItem(1, 10, courseModels.ContentTypeVideo),
	}

	// state for removed content must not inflate the count
	s := Summarize(items, map[uint]bool{1: true, 99: true}, map[uint]bool{98: true})
	assert.Equal(t, 1, s.DoneCount)
	assert.Equal(t, 1, s.TotalCount)
	assert.True(t, s.Completed)
}

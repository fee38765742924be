package progress

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	courseModels "lms/models/course"
)

func mcq(id uint, correct string, points int) courseModels.Question {
	return courseModels.Question{
		Model:         gorm.Model{ID: id},
		QuestionType:  courseModels.QuestionTypeMultipleChoice,
		OptionA:       "a",
		OptionB:       "b",
		OptionC:       "c",
		OptionD:       "d",
		CorrectAnswer: correct,
		Points:        points,
	}
}

func trueFalse(id uint, correct string, points int) courseModels.Question {
	return courseModels.Question{
		Model:         gorm.Model{ID: id},
		QuestionType:  courseModels.QuestionTypeTrueFalse,
		CorrectAnswer: correct,
		Points:        points,
	}
}

func TestGradeFourQuestionAssessment(t *testing.T) {
	questions := []courseModels.Question{
		mcq(1, "A", 1), mcq(2, "B", 1), mcq(3, "C", 1), mcq(4, "D", 1),
	}
	answers := map[uint]string{1: "A", 2: "B", 3: "C", 4: "A"}

	result, err := Grade(questions, answers, 70)
	require.NoError(t, err)
	assert.Equal(t, 3, result.EarnedPoints)
	assert.Equal(t, 4, result.TotalPoints)
	assert.InDelta(t, 75.0, result.ScorePercentage, 1e-9)
	assert.True(t, result.Passed)

	// 2/4 misses the 70% threshold
	result, err = Grade(questions, map[uint]string{1: "A", 2: "B", 3: "A", 4: "A"}, 70)
	require.NoError(t, err)
	assert.InDelta(t, 50.0, result.ScorePercentage, 1e-9)
	assert.False(t, result.Passed)
}

func TestGradeOptionLettersCaseInsensitive(t *testing.T) {
	questions := []courseModels.Question{mcq(1, "B", 1)}

	for _, token := range []string{"B", "b", " b "} {
		result, err := Grade(questions, map[uint]string{1: token}, 100)
		require.NoError(t, err)
		assert.Equal(t, 1, result.EarnedPoints, "token %q", token)
	}
}

func TestGradeTrueFalseExactMatch(t *testing.T) {
	questions := []courseModels.Question{trueFalse(1, "TRUE", 1)}

	// surrounding whitespace is stripped before the exact comparison
	for _, token := range []string{"TRUE", " TRUE ", "TRUE\n"} {
		result, err := Grade(questions, map[uint]string{1: token}, 100)
		require.NoError(t, err)
		assert.Equal(t, 1, result.EarnedPoints, "token %q", token)
	}

	for _, token := range []string{"true", "True", "FALSE", ""} {
		result, err := Grade(questions, map[uint]string{1: token}, 100)
		require.NoError(t, err)
		assert.Zero(t, result.EarnedPoints, "token %q", token)
	}
}

func TestGradeUnansweredQuestionsScoreZero(t *testing.T) {
	questions := []courseModels.Question{mcq(1, "A", 2), mcq(2, "B", 2)}

	result, err := Grade(questions, map[uint]string{1: "A"}, 50)
	require.NoError(t, err)
	assert.Equal(t, 2, result.EarnedPoints)
	assert.Equal(t, 4, result.TotalPoints)
	assert.InDelta(t, 50.0, result.ScorePercentage, 1e-9)
	assert.True(t, result.Passed)
}

func TestGradePointWeights(t *testing.T) {
	questions := []courseModels.Question{mcq(1, "A", 3), mcq(2, "B", 1)}

	result, err := Grade(questions, map[uint]string{1: "A", 2: "C"}, 70)
	require.NoError(t, err)
	assert.Equal(t, 3, result.EarnedPoints)
	assert.Equal(t, 4, result.TotalPoints)
	assert.InDelta(t, 75.0, result.ScorePercentage, 1e-9)
}

func TestGradeRejectsEmptyAssessment(t *testing.T) {
	_, err := Grade(nil, map[uint]string{1: "A"}, 70)
	assert.ErrorIs(t, err, ErrNoQuestions)
}

func TestDerivedAttemptViews(t *testing.T) {
	attempts := []courseModels.AssessmentAttempt{
		{AttemptNumber: 1, ScorePercentage: 75, Passed: true},
		{AttemptNumber: 2, ScorePercentage: 50, Passed: false},
	}

	// a later, worse attempt lowers the latest score but never the best
	assert.InDelta(t, 75.0, BestScore(attempts), 1e-9)
	assert.InDelta(t, 50.0, LatestScore(attempts), 1e-9)
	assert.True(t, HasPassed(attempts))

	assert.False(t, HasPassed(nil))
	assert.Zero(t, BestScore(nil))
	assert.Zero(t, LatestScore(nil))
}

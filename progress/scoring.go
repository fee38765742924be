package progress

import (
	"errors"
	"strings"

	courseModels "lms/models/course"
)

// ErrNoQuestions is returned when an assessment has no questions to
// grade against.
var ErrNoQuestions = errors.New("assessment has no questions")

// ScoreResult is the outcome of grading one submitted answer set
type ScoreResult struct {
	EarnedPoints    int     `json:"earned_points"`
	TotalPoints     int     `json:"total_points"`
	ScorePercentage float64 `json:"score_percentage"`
	Passed          bool    `json:"passed"`
}

// Grade scores a submitted answer set against the assessment's questions.
// Each question awards its full point weight when the submitted token
// matches the stored correct token. Tokens are trimmed of surrounding
// whitespace first; option letters then compare case-insensitively while
// TRUE/FALSE must match exactly. Unanswered questions score zero for that
// question; they do not fail the submission.
func Grade(questions []courseModels.Question, answers map[uint]string, passPercentage float64) (ScoreResult, error) {
	if len(questions) == 0 {
		return ScoreResult{}, ErrNoQuestions
	}

	var result ScoreResult
	for _, q := range questions {
		points := q.Points
		if points < 1 {
			points = 1
		}
		result.TotalPoints += points

		token, ok := answers[q.ID]
		if !ok {
			continue
		}
		if answerMatches(q, token) {
			result.EarnedPoints += points
		}
	}

	result.ScorePercentage = 100 * float64(result.EarnedPoints) / float64(result.TotalPoints)
	result.Passed = result.ScorePercentage >= passPercentage
	return result, nil
}

func answerMatches(q courseModels.Question, token string) bool {
	token = strings.TrimSpace(token)
	if q.QuestionType == courseModels.QuestionTypeTrueFalse {
		return token == q.CorrectAnswer
	}
	return strings.EqualFold(token, q.CorrectAnswer)
}

// HasPassed reports whether any attempt in the history passed
func HasPassed(attempts []courseModels.AssessmentAttempt) bool {
	for _, a := range attempts {
		if a.Passed {
			return true
		}
	}
	return false
}

// BestScore returns the highest score across the attempt history
func BestScore(attempts []courseModels.AssessmentAttempt) float64 {
	best := float64(0)
	for _, a := range attempts {
		if a.ScorePercentage > best {
			best = a.ScorePercentage
		}
	}
	return best
}

// LatestScore returns the score of the attempt with the highest attempt
// number, 0 when there are no attempts.
func LatestScore(attempts []courseModels.AssessmentAttempt) float64 {
	latest := 0
	score := float64(0)
	for _, a := range attempts {
		if a.AttemptNumber >= latest {
			latest = a.AttemptNumber
			score = a.ScorePercentage
		}
	}
	return score
}

package controllers

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"

	"lms/database"
	"lms/middleware"
	courseModels "lms/models/course"
	"lms/progress"
	"lms/utils"
	courseValidator "lms/validators/course"
)

// SubmitAssessment grades a submitted answer set and appends a new attempt.
// Attempts are never limited or mutated; best/latest scores are derived from
// the history on read.
func SubmitAssessment(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)
	contentID := c.Locals("contentID").(int)

	// Check enrollment
	var enrollment courseModels.Enrollment
	if err := database.Database.Db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", user.ID, courseID, false).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "User not enrolled in this course!", nil)
	}

	// Check content exists and is an assessment
	var content courseModels.CourseContent
	if err := database.Database.Db.Where("id = ? AND course_id = ? AND is_deleted = ? AND is_published = ?", contentID, courseID, false, true).First(&content).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Content not found!", nil)
	}
	if !content.IsAssessment() {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Content is not an assessment!", nil)
	}

	// An assessment stays locked until the module's videos are watched
	var siblings []courseModels.CourseContent
	database.Database.Db.Where("module_id = ? AND is_deleted = ? AND is_published = ?", content.ModuleID, false, true).Find(&siblings)

	ps := progressStore()
	videoCompleted, err := ps.CompletedVideoIDs(user.ID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch progress!", nil)
	}
	if progress.IsLocked(content, siblings, videoCompleted) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Complete the module videos to unlock this assessment!", nil)
	}

	var questions []courseModels.Question
	database.Database.Db.Where("content_id = ? AND is_deleted = ?", contentID, false).Order("order_index asc").Find(&questions)
	if len(questions) == 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Assessment has no questions!", nil)
	}

	reqData, ok := c.Locals("validatedSubmission").(*courseValidator.AssessmentSubmission)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	answers := make(map[uint]string, len(reqData.Answers))
	stored := make(datatypes.JSONMap, len(reqData.Answers))
	for questionID, token := range reqData.Answers {
		id, err := strconv.Atoi(questionID)
		if err != nil || id <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid question ID in answers!", nil)
		}
		answers[uint(id)] = token
		stored[questionID] = token
	}

	result, err := progress.Grade(questions, answers, content.PassPercentage)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Failed to grade submission!", nil)
	}

	// Attempt history before this submission, for the pass transition
	previous, err := ps.ListAttempts(user.ID, uint(contentID))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch attempts!", nil)
	}
	alreadyPassed := progress.HasPassed(previous)

	attempt := courseModels.AssessmentAttempt{
		UserID:          user.ID,
		ContentID:       uint(contentID),
		Answers:         stored,
		EarnedPoints:    result.EarnedPoints,
		TotalPoints:     result.TotalPoints,
		ScorePercentage: result.ScorePercentage,
		Passed:          result.Passed,
		SubmittedAt:     time.Now(),
	}
	if err := ps.AppendAttempt(&attempt); err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to submit answers!", nil)
	}

	if result.Passed && !alreadyPassed {
		utils.SendAssessmentPassedEmail(user.Email, user.Name, content.Title, result.ScorePercentage)
		recomputeEnrollmentProgress(user, uint(courseID))
	}

	history := append(previous, attempt)
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Answers submitted!", fiber.Map{
		"attempt":      attempt,
		"score":        result.ScorePercentage,
		"passed":       result.Passed,
		"best_score":   progress.BestScore(history),
		"latest_score": progress.LatestScore(history),
		"has_passed":   progress.HasPassed(history),
	})
}

// GetAssessmentAttempts returns the attempt history with derived views
func GetAssessmentAttempts(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)
	contentID := c.Locals("contentID").(int)

	var content courseModels.CourseContent
	if err := database.Database.Db.Where("id = ? AND course_id = ? AND is_deleted = ? AND is_published = ?", contentID, courseID, false, true).First(&content).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Content not found!", nil)
	}
	if !content.IsAssessment() {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Content is not an assessment!", nil)
	}

	attempts, err := progressStore().ListAttempts(user.ID, uint(contentID))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch attempts!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Attempts fetched successfully!", fiber.Map{
		"attempts":     attempts,
		"best_score":   progress.BestScore(attempts),
		"latest_score": progress.LatestScore(attempts),
		"has_passed":   progress.HasPassed(attempts),
	})
}

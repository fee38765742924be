package controllers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	"lms/progress"
	"lms/utils"
)

// GetUserProgress gets the user's progress in a course
func GetUserProgress(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)

	ps := progressStore()
	enrollment, err := ps.GetEnrollment(user.ID, uint(courseID))
	if err != nil || enrollment == nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "User not enrolled in this course!", nil)
	}

	videoCompleted, err := ps.CompletedVideoIDs(user.ID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch progress!", nil)
	}
	assessmentPassed, err := ps.PassedAssessmentIDs(user.ID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch progress!", nil)
	}

	var contents []courseModels.CourseContent
	database.Database.Db.Where("course_id = ? AND is_deleted = ? AND is_published = ?", courseID, false, true).
		Order("order_index asc").Find(&contents)

	summary := progress.Summarize(contents, videoCompleted, assessmentPassed)

	// Get module-wise progress
	var modules []courseModels.Module
	database.Database.Db.Where("course_id = ? AND is_deleted = ?", courseID, false).Order("order_index asc").Find(&modules)

	type ModuleProgress struct {
		ModuleID          uint    `json:"module_id"`
		ModuleName        string  `json:"module_name"`
		TotalContents     int     `json:"total_contents"`
		CompletedContents int     `json:"completed_contents"`
		Progress          float64 `json:"progress"`
	}

	moduleProgress := make([]ModuleProgress, len(modules))
	for i, mod := range modules {
		var moduleContents []courseModels.CourseContent
		for _, content := range contents {
			if content.ModuleID == mod.ID {
				moduleContents = append(moduleContents, content)
			}
		}
		moduleSummary := progress.Summarize(moduleContents, videoCompleted, assessmentPassed)

		moduleProgress[i] = ModuleProgress{
			ModuleID:          mod.ID,
			ModuleName:        mod.Title,
			TotalContents:     moduleSummary.TotalCount,
			CompletedContents: moduleSummary.DoneCount,
			Progress:          moduleSummary.Percentage,
		}
	}

	completedIDs := make([]uint, 0)
	for _, content := range contents {
		if (content.IsVideo() && videoCompleted[content.ID]) ||
			(content.IsAssessment() && assessmentPassed[content.ID]) ||
			(!content.IsVideo() && !content.IsAssessment()) {
			completedIDs = append(completedIDs, content.ID)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress fetched successfully!", fiber.Map{
		"enrollment":      enrollment,
		"completed_ids":   completedIDs,
		"completed_items": summary.DoneCount,
		"total_items":     summary.TotalCount,
		"progress":        summary.Percentage,
		"is_completed":    summary.Completed,
		"module_progress": moduleProgress,
	})
}

// recomputeEnrollmentProgress refreshes the enrollment cache after a
// completion event. Failures are logged and never surfaced to the caller;
// the daily reconciliation job repairs any missed update.
func recomputeEnrollmentProgress(user *models.User, courseID uint) {
	_, transitioned, err := progressStore().RecomputeEnrollment(user.ID, courseID)
	if err != nil {
		log.Printf("[PROGRESS] failed to recompute enrollment for user %d course %d: %v", user.ID, courseID, err)
		return
	}
	if transitioned {
		utils.IssueCertificate(user.ID, courseID)
	}
}

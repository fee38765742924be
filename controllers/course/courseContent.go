package controllers

import (
	"github.com/gofiber/fiber/v2"

	"lms/database"
	"lms/middleware"
	courseModels "lms/models/course"
	"lms/progress"
)

// QuestionView is a question as shown to learners: no correct answer, no
// explanation until the assessment has been attempted.
type QuestionView struct {
	ID           uint   `json:"id"`
	QuestionType string `json:"question_type"`
	Text         string `json:"text"`
	OptionA      string `json:"option_a,omitempty"`
	OptionB      string `json:"option_b,omitempty"`
	OptionC      string `json:"option_c,omitempty"`
	OptionD      string `json:"option_d,omitempty"`
	Points       int    `json:"points"`
	OrderIndex   int    `json:"order_index"`
}

// ContentView enriches a content item with the learner's state
type ContentView struct {
	courseModels.CourseContent
	IsLocked bool `json:"is_locked"`

	// VIDEO state
	ResumePositionSeconds float64 `json:"resume_position_seconds,omitempty"`
	WatchTimeSeconds      float64 `json:"watch_time_seconds,omitempty"`
	IsCompleted           bool    `json:"is_completed"`

	// ASSESSMENT state
	Questions []QuestionView `json:"questions,omitempty"`
	HasPassed bool           `json:"has_passed,omitempty"`
}

// GetCourseContent lists the course content grouped by module, with lock
// state recomputed per read from the learner's current completion data.
func GetCourseContent(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ? AND is_published = ?", courseID, false, true).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	// Check enrollment
	var enrollment courseModels.Enrollment
	if err := database.Database.Db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", user.ID, courseID, false).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "User not enrolled in this course!", nil)
	}

	var modules []courseModels.Module
	database.Database.Db.Where("course_id = ? AND is_deleted = ?", courseID, false).Order("order_index asc").Find(&modules)

	var contents []courseModels.CourseContent
	if err := database.Database.Db.Where("course_id = ? AND is_deleted = ? AND is_published = ?", courseID, false, true).
		Order("module_id asc, order_index asc").Find(&contents).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch course content!", nil)
	}

	ps := progressStore()
	videoCompleted, err := ps.CompletedVideoIDs(user.ID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch progress!", nil)
	}

	result := make([]ContentView, len(contents))
	for i, content := range contents {
		view := ContentView{
			CourseContent: content,
			IsLocked:      progress.IsLocked(content, contents, videoCompleted),
		}

		switch content.ContentType {
		case courseModels.ContentTypeVideo:
			view.IsCompleted = videoCompleted[content.ID]
			if vp, err := ps.GetVideoProgress(user.ID, content.ID); err == nil && vp != nil {
				view.ResumePositionSeconds = progress.ResumePosition(vp.LastPositionSeconds, content.DurationSeconds)
				view.WatchTimeSeconds = vp.TotalWatchTimeSeconds
			}

		case courseModels.ContentTypeAssessment:
			var questions []courseModels.Question
			database.Database.Db.Where("content_id = ? AND is_deleted = ?", content.ID, false).
				Order("order_index asc").Find(&questions)
			view.Questions = make([]QuestionView, len(questions))
			for j, q := range questions {
				view.Questions[j] = QuestionView{
					ID:           q.ID,
					QuestionType: q.QuestionType,
					Text:         q.Text,
					OptionA:      q.OptionA,
					OptionB:      q.OptionB,
					OptionC:      q.OptionC,
					OptionD:      q.OptionD,
					Points:       q.Points,
					OrderIndex:   q.OrderIndex,
				}
			}
			if attempts, err := ps.ListAttempts(user.ID, content.ID); err == nil {
				view.HasPassed = progress.HasPassed(attempts)
				view.IsCompleted = view.HasPassed
			}
		}

		result[i] = view
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course content fetched successfully!", fiber.Map{
		"modules":  modules,
		"contents": result,
	})
}

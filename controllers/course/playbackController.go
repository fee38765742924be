package controllers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"lms/database"
	"lms/middleware"
	courseModels "lms/models/course"
	"lms/progress"
	courseValidator "lms/validators/course"
)

// RecordPlaybackSample ingests one debounced progress sample for a video.
// The watch time merges monotonically, so replayed or out-of-order samples
// cannot double count. Persistence failures are logged and swallowed:
// playback must never be interrupted by a progress write.
func RecordPlaybackSample(c *fiber.Ctx) error {
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

	// Check content exists and is a video
	var content courseModels.CourseContent
	if err := database.Database.Db.Where("id = ? AND course_id = ? AND is_deleted = ? AND is_published = ?", contentID, courseID, false, true).First(&content).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Content not found!", nil)
	}
	if !content.IsVideo() {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Content is not a video!", nil)
	}

	reqData, ok := c.Locals("validatedPlaybackSample").(*courseValidator.PlaybackSampleRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	ps := progressStore()

	prior, err := ps.GetVideoProgress(user.ID, uint(contentID))
	if err != nil {
		log.Printf("[PLAYBACK] Failed to read progress for user %d content %d: %v", user.ID, contentID, err)
	}
	wasCompleted := prior != nil && prior.Completed

	// The stored completed flag stays authoritative even if the duration
	// metadata changed since it was set; the OR-merge below guarantees it.
	completed := progress.IsWatchComplete(reqData.TotalWatchTimeSeconds, content.DurationSeconds)

	merged, err := ps.UpsertVideoProgress(user.ID, uint(contentID), reqData.PositionSeconds, reqData.TotalWatchTimeSeconds, completed)
	if err != nil {
		// transient write failure: the next sample carries newer state
		log.Printf("[PLAYBACK] Failed to persist sample for user %d content %d: %v", user.ID, contentID, err)
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Playback sample accepted!", nil)
	}

	if merged.Completed && !wasCompleted {
		recomputeEnrollmentProgress(user, uint(courseID))
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Playback sample accepted!", fiber.Map{
		"total_watch_time_seconds": merged.TotalWatchTimeSeconds,
		"completed":                merged.Completed,
	})
}

// GetPlaybackState returns the resume point and watch state for a video
func GetPlaybackState(c *fiber.Ctx) error {
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
	if !content.IsVideo() {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Content is not a video!", nil)
	}

	vp, err := progressStore().GetVideoProgress(user.ID, uint(contentID))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch playback state!", nil)
	}

	state := fiber.Map{
		"resume_position_seconds":  0.0,
		"total_watch_time_seconds": 0.0,
		"completed":                false,
	}
	if vp != nil {
		state["resume_position_seconds"] = progress.ResumePosition(vp.LastPositionSeconds, content.DurationSeconds)
		state["total_watch_time_seconds"] = vp.TotalWatchTimeSeconds
		state["completed"] = vp.Completed
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Playback state fetched successfully!", state)
}

package courseRoutes

import (
	controllers "lms/controllers/course"
	"lms/middleware"
	validators "lms/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up all user-facing course routes
func SetupCourseRoutes(app *fiber.App) {
	userGroup := app.Group("/course")

	// Course listing and details (public published courses)
	userGroup.Get("/list", middleware.JWTMiddleware, validators.CourseList(), controllers.GetAllCourses)
	userGroup.Get("/:id", middleware.JWTMiddleware, validators.GetCourseDetail(), controllers.GetCourseDetails)

	// Enrollment
	userGroup.Post("/:id/enroll", middleware.JWTMiddleware, validators.EnrollCourse(), controllers.EnrollInCourse)

	// Content viewing (for enrolled users)
	userGroup.Get("/:id/content", middleware.JWTMiddleware, validators.CourseContentList(), controllers.GetCourseContent)

	// Video playback tracking
	userGroup.Post("/:course_id/content/:content_id/playback", middleware.JWTMiddleware, validators.ContentParams(), validators.PlaybackSample(), controllers.RecordPlaybackSample)
	userGroup.Get("/:course_id/content/:content_id/playback", middleware.JWTMiddleware, validators.ContentParams(), controllers.GetPlaybackState)

	// Assessment submission and history
	userGroup.Post("/:course_id/content/:content_id/assessment/submit", middleware.JWTMiddleware, validators.ContentParams(), validators.SubmitAssessment(), controllers.SubmitAssessment)
	userGroup.Get("/:course_id/content/:content_id/assessment/attempts", middleware.JWTMiddleware, validators.ContentParams(), controllers.GetAssessmentAttempts)

	// Progress tracking
	userGroup.Get("/:course_id/progress", middleware.JWTMiddleware, validators.GetCourseProgress(), controllers.GetUserProgress)

	// Certificate for a completed course
	userGroup.Get("/:course_id/certificate", middleware.JWTMiddleware, validators.GetCourseProgress(), controllers.GetCourseCertificate)

	// User enrollments and certificates
	userEnrollGroup := app.Group("/user")
	userEnrollGroup.Get("/enrollments", middleware.JWTMiddleware, controllers.GetUserEnrollmentsList)
	userEnrollGroup.Get("/certificates", middleware.JWTMiddleware, controllers.GetUserCertificates)
}

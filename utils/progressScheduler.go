package utils

import (
	"log"

	"github.com/jinzhu/now"
	"github.com/robfig/cron/v3"

	"lms/database"
	courseModels "lms/models/course"
	"lms/store"
)

// InitializeProgressScheduler sets up the daily progress reconciliation job
func InitializeProgressScheduler() {
	log.Println("[PROGRESS-SCHEDULER] Initializing progress scheduler...")

	c := cron.New()

	// Run daily at 2 AM to reconcile enrollment progress caches
	c.AddFunc("0 2 * * *", func() {
		log.Println("[PROGRESS-SCHEDULER] Running daily progress reconciliation...")
		ReconcileEnrollmentProgress()
	})

	c.Start()
	log.Println("[PROGRESS-SCHEDULER] Progress scheduler started - runs daily at 2 AM")
}

// ReconcileEnrollmentProgress recomputes the cached progress of every
// enrollment touched since the start of the previous day. Repairs caches
// left stale by write failures swallowed on the playback path, and issues
// any certificates whose completion transition was missed.
func ReconcileEnrollmentProgress() {
	db := database.Database.Db
	since := now.BeginningOfDay().AddDate(0, 0, -1)

	var enrollments []courseModels.Enrollment
	if err := db.
		Where("is_deleted = ? AND updated_at >= ?", false, since).
		Find(&enrollments).Error; err != nil {
		log.Printf("[PROGRESS-SCHEDULER] Error fetching enrollments: %v", err)
		return
	}

	log.Printf("[PROGRESS-SCHEDULER] Reconciling %d enrollments", len(enrollments))

	ps := store.NewProgressStore(db)
	reconciled := 0
	for _, enrollment := range enrollments {
		_, transitioned, err := ps.RecomputeEnrollment(enrollment.UserID, enrollment.CourseID)
		if err != nil {
			log.Printf("[PROGRESS-SCHEDULER] Error reconciling enrollment %d: %v", enrollment.ID, err)
			continue
		}
		reconciled++
		if transitioned {
			log.Printf("[PROGRESS-SCHEDULER] Enrollment %d completed during reconciliation", enrollment.ID)
			IssueCertificate(enrollment.UserID, enrollment.CourseID)
		}
	}

	log.Printf("[PROGRESS-SCHEDULER] Reconciled %d enrollments", reconciled)
}

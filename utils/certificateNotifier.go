package utils

import (
	"fmt"
	"log"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"

	"lms/config"
	"lms/database"
	"lms/models"
	courseModels "lms/models/course"
)

// IssueCertificate creates the certificate record for a completed
// enrollment and fires the completion notifications. Called once per
// completion transition; a unique index on the certificate number and
// the existence check make duplicate calls harmless. All failures are
// logged and swallowed so callers never block on notification delivery.
func IssueCertificate(userID, courseID uint) {
	db := database.Database.Db

	var enrollment courseModels.Enrollment
	if err := db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).First(&enrollment).Error; err != nil {
		log.Printf("[CERTIFICATE] Enrollment not found for user %d course %d: %v", userID, courseID, err)
		return
	}
	if !enrollment.Completed {
		log.Printf("[CERTIFICATE] Enrollment %d not completed, skipping issuance", enrollment.ID)
		return
	}

	var existing courseModels.Certificate
	if err := db.Where("enrollment_id = ? AND is_deleted = ?", enrollment.ID, false).First(&existing).Error; err == nil {
		log.Printf("[CERTIFICATE] Certificate already issued for enrollment %d", enrollment.ID)
		return
	}

	certificate := courseModels.Certificate{
		UserID:            userID,
		CourseID:          courseID,
		EnrollmentID:      enrollment.ID,
		CertificateNumber: fmt.Sprintf("CERT-%s", uuid.New().String()),
		IssuedAt:          time.Now(),
	}
	if err := db.Create(&certificate).Error; err != nil {
		log.Printf("[CERTIFICATE] Failed to create certificate for enrollment %d: %v", enrollment.ID, err)
		return
	}
	log.Printf("[CERTIFICATE] Issued certificate %s for enrollment %d", certificate.CertificateNumber, enrollment.ID)

	var user models.User
	if err := db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		log.Printf("[CERTIFICATE] User %d not found: %v", userID, err)
		return
	}

	var course courseModels.Course
	db.Where("id = ?", courseID).First(&course)

	notifyCertificateWebhook(&user, &course, &certificate)
	SendCourseCompletionEmail(user.Email, user.Name, course.Title, certificate.CertificateNumber)
}

// notifyCertificateWebhook posts the issued certificate to the external
// certificate rendering service, if one is configured.
func notifyCertificateWebhook(user *models.User, course *courseModels.Course, certificate *courseModels.Certificate) {
	webhookURL := config.AppConfig.CertificateWebhookURL
	if webhookURL == "" {
		return
	}

	client := resty.New()
	client.SetTimeout(10 * time.Second)

	resp, err := client.R().
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]interface{}{
			"certificate_number": certificate.CertificateNumber,
			"user_name":          user.Name,
			"user_email":         user.Email,
			"course_title":       course.Title,
			"issued_at":          certificate.IssuedAt,
		}).
		Post(webhookURL)
	if err != nil {
		log.Printf("[CERTIFICATE] Webhook call failed: %v", err)
		return
	}
	if resp.StatusCode() >= 400 {
		log.Printf("[CERTIFICATE] Webhook returned status %d: %s", resp.StatusCode(), resp.String())
	}
}

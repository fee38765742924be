package utils

import (
	"fmt"
	"log"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"lms/config"
)

// Generic Send Email
func SendEmail(toEmail, toName, subject, htmlBody string) error {
	if config.AppConfig.SendGridKey == "" {
		log.Printf("[EMAIL] SendGrid key not configured, skipping email to %s", toEmail)
		return nil
	}

	from := mail.NewEmail(config.AppConfig.EmailFromName, config.AppConfig.EmailSender)
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, "", htmlBody)

	client := sendgrid.NewSendClient(config.AppConfig.SendGridKey)
	response, err := client.Send(message)
	if err != nil {
		log.Printf("[EMAIL] Error sending email to %s: %v", toEmail, err)
		return err
	}
	if response.StatusCode >= 400 {
		log.Printf("[EMAIL] SendGrid rejected email to %s: status %d", toEmail, response.StatusCode)
		return fmt.Errorf("sendgrid returned status %d", response.StatusCode)
	}
	return nil
}

// HTML wrapper shared by all notification emails
func getEmailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; box-shadow: 0 4px 15px rgba(0,0,0,0.05); }
			.header { background-color: #1A237E; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #1A237E; line-height: 1.6; }
			.content h2 { color: #1A237E; margin-top: 0; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; border-top: 1px solid #E0E0E0; }
			.btn { display: inline-block; padding: 12px 24px; background-color: #43A047; color: #FFFFFF; text-decoration: none; border-radius: 4px; font-weight: bold; margin-top: 20px; }
			.info-box { background: #E8F0FE; padding: 15px; border-radius: 4px; border-left: 4px solid #43A047; margin: 20px 0; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header">
				<h1>LMS ACADEMY</h1>
			</div>
			<div class="content">
				<h2>%s</h2>
				%s
			</div>
			<div class="footer">
				&copy; 2026 LMS Academy. All rights reserved.
			</div>
		</div>
	</body>
	</html>
	`, title, bodyContent)
}

// --- Triggers ---

// 1. Enrollment Confirmation
func SendEnrollmentEmail(email, name, courseName string) {
	subject := "Enrollment Confirmed: " + courseName
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>You have successfully enrolled in <strong>%s</strong>.</p>
		<div class="info-box">
			<strong>Next Steps:</strong> Head to your dashboard and start with the first module.
		</div>
	`, name, courseName)

	go SendEmail(email, name, subject, getEmailTemplate("Enrollment Successful", body))
}

// 2. Course Completion + Certificate
func SendCourseCompletionEmail(email, name, courseName, certificateNumber string) {
	subject := "Congratulations! You Completed " + courseName
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Congratulations on completing <strong>%s</strong>!</p>
		<p>Your certificate has been issued.</p>
		<div class="info-box">
			<strong>Certificate Number:</strong> %s
		</div>
		<a href="#" class="btn">View Certificate</a>
	`, name, courseName, certificateNumber)

	go SendEmail(email, name, subject, getEmailTemplate("Course Completed", body))
}

// 3. Assessment Passed
func SendAssessmentPassedEmail(email, name, contentTitle string, score float64) {
	subject := "Assessment Passed: " + contentTitle
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>You passed <strong>%s</strong> with a score of <strong>%.1f%%</strong>.</p>
		<p>Keep up the great work!</p>
	`, name, contentTitle, score)

	go SendEmail(email, name, subject, getEmailTemplate("Assessment Passed", body))
}

package main

import (
	"encoding/csv"
	"log"
	"os"
	"strconv"
	"strings"

	"lms/config"
	"lms/database"
	courseModels "lms/models/course"
)

func main() {
	// Load config and connect to database
	config.LoadConfig()
	database.ConnectDb()

	// Open CSV file
	file, err := os.Open("QuestionBank.csv")
	if err != nil {
		log.Fatalf("Failed to open CSV file: %v", err)
	}
	defer file.Close()

	// Create CSV reader
	reader := csv.NewReader(file)

	// Read all records
	records, err := reader.ReadAll()
	if err != nil {
		log.Fatalf("Failed to read CSV: %v", err)
	}

	if len(records) < 2 {
		log.Fatal("CSV file is empty or has only headers")
	}

	// Skip header row
	header := records[0]
	log.Printf("CSV Headers: %v", header)
	log.Printf("Total rows to import: %d", len(records)-1)

	// Map header indices
	headerIndex := make(map[string]int)
	for i, h := range header {
		headerIndex[strings.TrimSpace(h)] = i
	}

	inserted := 0
	updated := 0
	skipped := 0

	for i, row := range records[1:] {
		if i%100 == 0 {
			log.Printf("Processing row %d...", i+1)
		}

		// Parse fields from CSV
		question := courseModels.Question{
			ContentID:     uint(parseInt(getField(row, headerIndex, "contentId"))),
			QuestionType:  strings.ToUpper(getField(row, headerIndex, "questionType")),
			Text:          getField(row, headerIndex, "text"),
			OptionA:       getField(row, headerIndex, "optionA"),
			OptionB:       getField(row, headerIndex, "optionB"),
			OptionC:       getField(row, headerIndex, "optionC"),
			OptionD:       getField(row, headerIndex, "optionD"),
			CorrectAnswer: strings.ToUpper(strings.TrimSpace(getField(row, headerIndex, "correctAnswer"))),
			Points:        parseInt(getField(row, headerIndex, "points")),
			Explanation:   getField(row, headerIndex, "explanation"),
			OrderIndex:    parseInt(getField(row, headerIndex, "orderIndex")),
			IsDeleted:     false,
		}

		if question.QuestionType == "" {
			question.QuestionType = courseModels.QuestionTypeMultipleChoice
		}
		if question.Points < 1 {
			question.Points = 1
		}

		// Skip if no content or question text
		if question.ContentID == 0 || question.Text == "" || question.CorrectAnswer == "" {
			skipped++
			continue
		}

		// The referenced content must exist and be an assessment
		var content courseModels.CourseContent
		if err := database.Database.Db.Where("id = ? AND is_deleted = ?", question.ContentID, false).First(&content).Error; err != nil {
			log.Printf("Row %d: content %d not found, skipping", i+1, question.ContentID)
			skipped++
			continue
		}
		if !content.IsAssessment() {
			log.Printf("Row %d: content %d is not an assessment, skipping", i+1, question.ContentID)
			skipped++
			continue
		}

		// Check if question exists by content and order index
		var existing courseModels.Question
		result := database.Database.Db.Where("content_id = ? AND order_index = ? AND is_deleted = ?", question.ContentID, question.OrderIndex, false).First(&existing)

		if result.Error != nil {
			// Insert new question
			if err := database.Database.Db.Create(&question).Error; err != nil {
				log.Printf("Error inserting question (content=%d order=%d): %v", question.ContentID, question.OrderIndex, err)
				continue
			}
			inserted++
		} else {
			// Update existing question
			existing.QuestionType = question.QuestionType
			existing.Text = question.Text
			existing.OptionA = question.OptionA
			existing.OptionB = question.OptionB
			existing.OptionC = question.OptionC
			existing.OptionD = question.OptionD
			existing.CorrectAnswer = question.CorrectAnswer
			existing.Points = question.Points
			existing.Explanation = question.Explanation

			if err := database.Database.Db.Save(&existing).Error; err != nil {
				log.Printf("Error updating question (content=%d order=%d): %v", question.ContentID, question.OrderIndex, err)
				continue
			}
			updated++
		}
	}

	log.Printf("=== Import Complete ===")
	log.Printf("Inserted: %d", inserted)
	log.Printf("Updated: %d", updated)
	log.Printf("Skipped: %d", skipped)
	log.Printf("Total processed: %d", inserted+updated+skipped)
}

func getField(row []string, headerIndex map[string]int, name string) string {
	idx, ok := headerIndex[name]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func parseInt(s string) int {
	if s == "" {
		return 0
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return v
}

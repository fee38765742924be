package course

import "gorm.io/gorm"

// Question type values for Question.QuestionType
const (
	QuestionTypeMultipleChoice = "MULTIPLE_CHOICE"
	QuestionTypeTrueFalse      = "TRUE_FALSE"
)

// Question represents a question inside an ASSESSMENT content item.
// Multiple choice questions carry 2-4 options (A-D); unused option slots
// stay empty. True/false questions use the tokens TRUE and FALSE.
type Question struct {
	gorm.Model
	ContentID    uint   `json:"content_id" gorm:"index;not null"`
	QuestionType string `json:"question_type" gorm:"default:'MULTIPLE_CHOICE'"` // MULTIPLE_CHOICE, TRUE_FALSE
	Text         string `json:"text" gorm:"type:text"`
	OptionA      string `json:"option_a"`
	OptionB      string `json:"option_b"`
	OptionC      string `json:"option_c"`
	OptionD      string `json:"option_d"`

	// CorrectAnswer is the answer token: an option letter (A-D) for
	// multiple choice, TRUE or FALSE for true/false questions.
	CorrectAnswer string `json:"correct_answer"`

	Points      int    `json:"points" gorm:"default:1"` // point weight, >= 1
	Explanation string `json:"explanation" gorm:"type:text"`
	OrderIndex  int    `json:"order_index" gorm:"default:0"`
	IsDeleted   bool   `gorm:"default:false"`
}

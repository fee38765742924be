package course

import "gorm.io/gorm"

// Content type values for CourseContent.ContentType
const (
	ContentTypeVideo      = "VIDEO"
	ContentTypeArticle    = "ARTICLE"
	ContentTypeAssessment = "ASSESSMENT"
)

// CourseContent represents a single content item within a module
type CourseContent struct {
	gorm.Model
	CourseID    uint   `json:"course_id" gorm:"index;not null"`
	ModuleID    uint   `json:"module_id" gorm:"index;not null"`
	Title       string `json:"title"`
	Description string `json:"description"`
	ContentType string `json:"content_type" gorm:"default:'ARTICLE'"` // VIDEO, ARTICLE, ASSESSMENT
	TextContent string `json:"text_content" gorm:"type:text"`         // For ARTICLE type
	VideoURL    string `json:"video_url"`                             // For VIDEO type

	// DurationSeconds is the known video length; only meaningful for VIDEO
	DurationSeconds float64 `json:"duration_seconds" gorm:"default:0"`

	// PassPercentage is the pass threshold for ASSESSMENT content (0-100)
	PassPercentage float64 `json:"pass_percentage" gorm:"default:70"`

	OrderIndex  int  `json:"order_index" gorm:"default:0"` // Order within module
	IsPublished bool `json:"is_published" gorm:"default:false"`
	IsDeleted   bool `gorm:"default:false"`
}

// IsVideo reports whether the content is a video item
func (cc *CourseContent) IsVideo() bool {
	return cc.ContentType == ContentTypeVideo
}

// IsAssessment reports whether the content is an assessment item
func (cc *CourseContent) IsAssessment() bool {
	return cc.ContentType == ContentTypeAssessment
}

package course

import "gorm.io/gorm"

// VideoProgress tracks a user's effective watch time for a video content
// item. One row per (user, content); created on the first playback sample.
// TotalWatchTimeSeconds never decreases and Completed never reverts, even
// when two sessions write concurrently - the store merges max/OR on write.
type VideoProgress struct {
	gorm.Model
	UserID    uint `json:"user_id" gorm:"not null;uniqueIndex:idx_video_progress_user_content"`
	ContentID uint `json:"content_id" gorm:"not null;uniqueIndex:idx_video_progress_user_content"`

	LastPositionSeconds   float64 `json:"last_position_seconds" gorm:"default:0"`    // resume point
	TotalWatchTimeSeconds float64 `json:"total_watch_time_seconds" gorm:"default:0"` // effective watch time
	Completed             bool    `json:"completed" gorm:"default:false"`            // one-way
	IsDeleted             bool    `gorm:"default:false"`
}

package progress

import courseModels "lms/models/course"

// Summary is the aggregated progress for one enrollment. It is always a
// pure function of the current per-item completion states, never stored
// state read back.
type Summary struct {
	DoneCount  int     `json:"done_count"`
	TotalCount int     `json:"total_count"`
	Percentage float64 `json:"percentage"`
	Completed  bool    `json:"completed"`
}

// Summarize folds per-item completion state into course-level progress.
// A video counts once completed, an assessment once any attempt passed, and
// articles count unconditionally since no interaction is tracked for them.
func Summarize(items []courseModels.CourseContent, videoCompleted, assessmentPassed map[uint]bool) Summary {
	s := Summary{TotalCount: len(items)}
	for _, item := range items {
		switch item.ContentType {
		case courseModels.ContentTypeVideo:
			if videoCompleted[item.ID] {
				s.DoneCount++
			}
		case courseModels.ContentTypeAssessment:
			if assessmentPassed[item.ID] {
				s.DoneCount++
			}
		default:
			s.DoneCount++
		}
	}
	if s.TotalCount > 0 {
		s.Percentage = 100 * float64(s.DoneCount) / float64(s.TotalCount)
	}
	s.Completed = s.TotalCount > 0 && s.DoneCount == s.TotalCount
	return s
}

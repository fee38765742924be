package progress

import courseModels "lms/models/course"

// IsLocked decides whether a content item is currently locked for a learner.
// Only assessments ever lock: an assessment stays locked while its module
// contains at least one video the learner has not completed. Assessments in
// a module without videos are never locked, and videos and articles are
// never locked.
//
// Lock state is never persisted. It is recomputed from the module's current
// content list on every read, so authoring changes take effect without any
// migration step.
func IsLocked(item courseModels.CourseContent, siblings []courseModels.CourseContent, videoCompleted map[uint]bool) bool {
	if !item.IsAssessment() {
		return false
	}
	for _, sib := range siblings {
		if sib.ModuleID != item.ModuleID || !sib.IsVideo() {
			continue
		}
		if !videoCompleted[sib.ID] {
			return true
		}
	}
	return false
}

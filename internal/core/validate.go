package core

// validateTask checks field-level invariants on a fully merged task.
// Runs on create and after every partial update.
func validateTask(task *Task) error {
	if task.Title == "" {
		return &ValidationError{Field: "title", Reason: "must not be empty"}
	}
	if !ValidTypes[task.Type] {
		return &ValidationError{Field: "type", Reason: "unknown type " + task.Type}
	}
	if !ValidStatuses[task.Status] {
		return &ValidationError{Field: "status", Reason: "unknown status " + task.Status}
	}
	if !ValidPriorityModes[task.PriorityMode] {
		return &ValidationError{Field: "priority_mode", Reason: "unknown mode " + task.PriorityMode}
	}
	if task.PriorityLevel < 0 || task.PriorityLevel > 3 {
		return &ValidationError{Field: "priority_level", Reason: "must be between 0 and 3"}
	}
	if task.SoftDeadline != nil && task.HardDeadline != nil && task.SoftDeadline.After(*task.HardDeadline) {
		return &ValidationError{Field: "soft_deadline", Reason: "must not be after hard_deadline"}
	}
	return nil
}

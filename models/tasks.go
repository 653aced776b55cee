package models

// ResetTaskPayload is the payload of an asynchronous schedule reset task.
type ResetTaskPayload struct {
	ScheduleID string `json:"scheduleId"`
}

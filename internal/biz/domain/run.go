package domain

import "time"

// Run status values
const (
	RunStatusOK     = "ok"
	RunStatusFailed = "failed"
)

// Run is one recorded generation run
type Run struct {
	ID              string
	CreatedAt       time.Time
	Conversations   int
	Days            int
	MessagesPerDate int
	Status          string
	Error           string
}

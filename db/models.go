package db

import "time"

// Cut statuses.
const (
	StatusRunning  = "running"
	StatusComplete = "complete"
	StatusError    = "error"
)

// Cut represents a row in the cuts table.
type Cut struct {
	ID           int64
	InputPath    string
	StartSeconds int
	EndSeconds   int
	OutputPath   string
	Engine       string
	Status       string
	StartedAt    time.Time
	FinishedAt   *time.Time
	ErrorAt      *time.Time
	Filesize     int64
	Log          string
}

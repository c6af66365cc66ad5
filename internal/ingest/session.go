package ingest

import (
	"time"

	"github.com/google/uuid"

	"github.com/StinkyLord/lockfile-loader/internal/model"
)

// Status is the lifecycle state of a Session.
type Status int

const (
	StatusIdle Status = iota
	StatusProcessing
	StatusDone
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusProcessing:
		return "processing"
	case StatusDone:
		return "done"
	default:
		return "unknown"
	}
}

// MarshalText encodes the status by name in JSON reports.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Session is the record of one ingestion batch. Results are in processing
// order: file by file, dependency by dependency.
type Session struct {
	ID            uuid.UUID   `json:"id"`
	ApplicationID string      `json:"applicationId"`
	Status        Status      `json:"status"`
	Results       []model.Row `json:"results"`
	StartedAt     time.Time   `json:"startedAt"`
	FinishedAt    time.Time   `json:"finishedAt"`
}

// Summary holds the aggregate counts shown after a batch.
type Summary struct {
	Associated int `json:"associated"`
	Errors     int `json:"errors"`
	Total      int `json:"total"`
}

func newSession(applicationID string) *Session {
	return &Session{
		ID:            uuid.New(),
		ApplicationID: applicationID,
		Status:        StatusIdle,
	}
}

// Summary counts associated rows and rows carrying an error.
func (s *Session) Summary() Summary {
	sum := Summary{Total: len(s.Results)}
	for _, r := range s.Results {
		if r.Associada {
			sum.Associated++
		}
		if r.Failed() {
			sum.Errors++
		}
	}
	return sum
}

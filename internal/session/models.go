package session

import "time"

type Status string

const (
	StatusCreated   Status = "created"
	StatusActive    Status = "active"
	StatusPaused    Status = "paused"
	StatusCompleted Status = "completed"
)

// ParseStatus maps a request string onto a known status.
func ParseStatus(s string) (Status, bool) {
	switch Status(s) {
	case StatusCreated, StatusActive, StatusPaused, StatusCompleted:
		return Status(s), true
	}
	return "", false
}

type Session struct {
	ID                    string     `json:"id"`
	UserID                string     `json:"user_id"`
	RuckWeightKg          float64    `json:"ruck_weight_kg"`
	Status                Status     `json:"status"`
	StartTime             *time.Time `json:"start_time,omitempty"`
	EndTime               *time.Time `json:"end_time,omitempty"`
	PausedAt              *time.Time `json:"-"`
	DurationSeconds       *int       `json:"duration_seconds,omitempty"`
	PausedDurationSeconds int        `json:"paused_duration_seconds"`
	DistanceKm            float64    `json:"distance_km"`
	ElevationGainM        float64    `json:"elevation_gain_m"`
	ElevationLossM        float64    `json:"elevation_loss_m"`
	CaloriesBurned        float64    `json:"calories_burned"`
	CreatedAt             time.Time  `json:"created_at"`
	UpdatedAt             time.Time  `json:"updated_at"`

	Points []LocationPoint `json:"location_points,omitempty"`
	Review *Review         `json:"review,omitempty"`
}

type LocationPoint struct {
	ID         int64     `json:"id"`
	SessionID  string    `json:"session_id"`
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
	Altitude   *float64  `json:"altitude,omitempty"`
	RecordedAt time.Time `json:"recorded_at"`
}

type Review struct {
	ID        string    `json:"id"`
	SessionID string    `json:"session_id"`
	Rating    int       `json:"rating"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Metrics is the cumulative state reported back after a point is ingested.
type Metrics struct {
	DistanceKm     float64 `json:"distance_km"`
	ElevationGainM float64 `json:"elevation_gain_m"`
	ElevationLossM float64 `json:"elevation_loss_m"`
	CaloriesBurned float64 `json:"calories_burned"`
}

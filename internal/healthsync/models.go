package healthsync

import "time"

// Workout mirrors the Apple Health export format. The required summary
// fields are pointers so a missing key can be told apart from zero.
type Workout struct {
	ActivityType      string       `json:"workoutActivityType,omitempty"`
	StartDate         *time.Time   `json:"startDate"`
	EndDate           *time.Time   `json:"endDate"`
	Duration          *float64     `json:"duration"`
	Distance          *float64     `json:"distance"`
	ElevationAscended *float64     `json:"elevationAscended,omitempty"`
	Metadata          *Metadata    `json:"metadata,omitempty"`
	Route             []RoutePoint `json:"route,omitempty"`
}

type Metadata struct {
	RuckWeight float64 `json:"ruckWeight"`
}

type RoutePoint struct {
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Altitude  *float64  `json:"altitude"`
	Timestamp time.Time `json:"timestamp"`
}

type SyncRequest struct {
	Workouts []Workout `json:"workouts"`
}

type SyncResponse struct {
	Message       string `json:"message"`
	ImportedCount int    `json:"imported_count"`
}

type ExportData struct {
	Workouts []Workout `json:"workouts"`
}

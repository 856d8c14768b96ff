package stats

// Rollup is a sum/average/count aggregate over completed sessions in a
// time window. An empty window yields the zero value, never an error.
type Rollup struct {
	TotalDistanceKm      float64 `json:"total_distance_km"`
	TotalElevationGainM  float64 `json:"total_elevation_gain_m"`
	TotalCaloriesBurned  float64 `json:"total_calories_burned"`
	AverageDistanceKm    float64 `json:"average_distance_km"`
	SessionCount         int     `json:"session_count"`
	TotalDurationSeconds int64   `json:"total_duration_seconds"`
}

type MonthlyRollup struct {
	Month int `json:"month"`
	Rollup
}

// YearlyRollup adds the per-month breakdown to the year's totals. The
// breakdown always holds exactly 12 entries when a year was requested.
type YearlyRollup struct {
	Rollup
	MonthlyBreakdown []MonthlyRollup `json:"monthly_breakdown,omitempty"`
}

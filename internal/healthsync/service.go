package healthsync

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/orourkera/rucking/internal/db"
)

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrInvalidFormat = errors.New("invalid workout data format")
)

const exportActivityType = "HKWorkoutActivityTypeWalking"

type Service struct {
	db db.Pool

	// commitPerWorkout trades batch atomicity for durability of each
	// accepted workout.
	commitPerWorkout bool
}

func NewService(db db.Pool, commitPerWorkout bool) *Service {
	return &Service{db: db, commitPerWorkout: commitPerWorkout}
}

// Import reconciles a workout batch into completed sessions. Workouts
// missing a required summary field, of an unsupported activity type, or
// already present for the owner are skipped, in input order. Returns
// how many workouts were stored.
func (s *Service) Import(ctx context.Context, userID string, req SyncRequest) (int, error) {
	if err := s.userExists(ctx, userID); err != nil {
		return 0, err
	}
	if req.Workouts == nil {
		return 0, ErrInvalidFormat
	}

	if s.commitPerWorkout {
		imported := 0
		for _, w := range req.Workouts {
			ok, err := s.importOne(ctx, userID, w)
			if err != nil {
				return imported, err
			}
			if ok {
				imported++
			}
		}
		return imported, nil
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	imported := 0
	for _, w := range req.Workouts {
		ok, err := importWorkout(ctx, tx, userID, w)
		if err != nil {
			return 0, err
		}
		if ok {
			imported++
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return imported, nil
}

func (s *Service) importOne(ctx context.Context, userID string, w Workout) (bool, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return false, err
	}
	defer tx.Rollback(ctx)

	ok, err := importWorkout(ctx, tx, userID, w)
	if err != nil {
		return false, err
	}
	return ok, tx.Commit(ctx)
}

func importWorkout(ctx context.Context, q db.Querier, userID string, w Workout) (bool, error) {
	if w.StartDate == nil || w.EndDate == nil || w.Duration == nil || w.Distance == nil {
		return false, nil
	}
	if !supportedActivity(w.ActivityType) {
		return false, nil
	}

	var exists bool
	err := q.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM ruck_sessions WHERE user_id = $1 AND start_time = $2)
	`, userID, *w.StartDate).Scan(&exists)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	var ruckWeight float64
	if w.Metadata != nil {
		ruckWeight = w.Metadata.RuckWeight
	}
	var elevationGain float64
	if w.ElevationAscended != nil {
		elevationGain = *w.ElevationAscended
	}

	sessionID := uuid.NewString()
	_, err = q.Exec(ctx, `
		INSERT INTO ruck_sessions
			(id, user_id, ruck_weight_kg, status, start_time, end_time,
			 duration_seconds, distance_km, elevation_gain_m)
		VALUES ($1,$2,$3,'completed',$4,$5,$6,$7,$8)
	`, sessionID, userID, ruckWeight, *w.StartDate, *w.EndDate,
		int(*w.Duration), *w.Distance, elevationGain)
	if err != nil {
		return false, err
	}

	for _, point := range w.Route {
		_, err := q.Exec(ctx, `
			INSERT INTO location_points (session_id, latitude, longitude, altitude, recorded_at)
			VALUES ($1,$2,$3,$4,$5)
		`, sessionID, point.Latitude, point.Longitude, point.Altitude, point.Timestamp)
		if err != nil {
			return false, err
		}
	}
	return true, nil
}

// supportedActivity keeps walking-like workouts only. An absent type is
// not supported.
func supportedActivity(activityType string) bool {
	lower := strings.ToLower(activityType)
	for _, kind := range []string{"walking", "hiking", "outdoor"} {
		if strings.Contains(lower, kind) {
			return true
		}
	}
	return false
}

// Export renders the owner's completed sessions in the workout format.
// Sessions missing either timestamp are excluded.
func (s *Service) Export(ctx context.Context, userID string) (ExportData, error) {
	if err := s.userExists(ctx, userID); err != nil {
		return ExportData{}, err
	}

	rows, err := s.db.Query(ctx, `
		SELECT id, ruck_weight_kg, start_time, end_time, duration_seconds,
		       distance_km, elevation_gain_m
		FROM ruck_sessions
		WHERE user_id = $1 AND status = 'completed'
		ORDER BY start_time
	`, userID)
	if err != nil {
		return ExportData{}, err
	}
	defer rows.Close()

	type exportRow struct {
		id            string
		ruckWeight    float64
		startTime     *time.Time
		endTime       *time.Time
		duration      *int
		distance      float64
		elevationGain float64
	}

	var sessions []exportRow
	for rows.Next() {
		var row exportRow
		if err := rows.Scan(&row.id, &row.ruckWeight, &row.startTime, &row.endTime,
			&row.duration, &row.distance, &row.elevationGain); err != nil {
			return ExportData{}, err
		}
		sessions = append(sessions, row)
	}
	if err := rows.Err(); err != nil {
		return ExportData{}, err
	}

	data := ExportData{Workouts: []Workout{}}
	for _, row := range sessions {
		if row.startTime == nil || row.endTime == nil {
			continue
		}

		duration := 0.0
		if row.duration != nil {
			duration = float64(*row.duration)
		}
		workout := Workout{
			ActivityType: exportActivityType,
			StartDate:    row.startTime,
			EndDate:      row.endTime,
			Duration:     &duration,
			Distance:     &row.distance,
			Metadata:     &Metadata{RuckWeight: row.ruckWeight},
		}
		if row.elevationGain != 0 {
			gain := row.elevationGain
			workout.ElevationAscended = &gain
		}

		route, err := s.routePoints(ctx, row.id)
		if err != nil {
			return ExportData{}, err
		}
		workout.Route = route

		data.Workouts = append(data.Workouts, workout)
	}
	return data, nil
}

func (s *Service) routePoints(ctx context.Context, sessionID string) ([]RoutePoint, error) {
	rows, err := s.db.Query(ctx, `
		SELECT latitude, longitude, altitude, recorded_at
		FROM location_points
		WHERE session_id = $1
		ORDER BY recorded_at
	`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var route []RoutePoint
	for rows.Next() {
		var point RoutePoint
		if err := rows.Scan(&point.Latitude, &point.Longitude, &point.Altitude, &point.Timestamp); err != nil {
			return nil, err
		}
		route = append(route, point)
	}
	return route, rows.Err()
}

func (s *Service) userExists(ctx context.Context, userID string) error {
	var exists bool
	err := s.db.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)
	`, userID).Scan(&exists)
	if err != nil {
		return err
	}
	if !exists {
		return ErrUserNotFound
	}
	return nil
}

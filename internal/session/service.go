package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/orourkera/rucking/internal/calories"
	"github.com/orourkera/rucking/internal/db"
	"github.com/orourkera/rucking/internal/shared/geo"
)

var nowFn = time.Now

type Service struct {
	db    db.Pool
	locks *keyedLocks
}

func NewService(db db.Pool) *Service {
	return &Service{db: db, locks: newKeyedLocks()}
}

const sessionColumns = `id, user_id, ruck_weight_kg, status, start_time, end_time, paused_at,
		       duration_seconds, paused_duration_seconds, distance_km,
		       elevation_gain_m, elevation_loss_m, calories_burned, created_at, updated_at`

// Create opens a new session in the created state with all metrics zeroed.
func (s *Service) Create(ctx context.Context, userID string, ruckWeightKg float64) (Session, error) {
	if errs := ValidateRuckWeight(ruckWeightKg); len(errs) > 0 {
		return Session{}, errs
	}

	var exists bool
	if err := s.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE id=$1)`, userID).Scan(&exists); err != nil {
		return Session{}, err
	}
	if !exists {
		return Session{}, ErrUserNotFound
	}

	sess := Session{
		ID:           uuid.NewString(),
		UserID:       userID,
		RuckWeightKg: ruckWeightKg,
		Status:       StatusCreated,
	}
	row := s.db.QueryRow(ctx, `
		INSERT INTO ruck_sessions (id, user_id, ruck_weight_kg, status)
		VALUES ($1,$2,$3,$4)
		RETURNING created_at, updated_at
	`, sess.ID, sess.UserID, sess.RuckWeightKg, sess.Status)
	if err := row.Scan(&sess.CreatedAt, &sess.UpdatedAt); err != nil {
		return Session{}, err
	}
	return sess, nil
}

// Get loads a session with its review and, optionally, its ordered points.
func (s *Service) Get(ctx context.Context, id string, includePoints bool) (Session, error) {
	sess, err := loadSession(ctx, s.db, id)
	if err != nil {
		return Session{}, err
	}

	review, err := s.review(ctx, id)
	if err == nil {
		sess.Review = &review
	} else if !errors.Is(err, ErrReviewNotFound) {
		return Session{}, err
	}

	if includePoints {
		points, err := s.points(ctx, id)
		if err != nil {
			return Session{}, err
		}
		sess.Points = points
	}
	return sess, nil
}

// List returns all sessions owned by a user, most recent first.
func (s *Service) List(ctx context.Context, userID string) ([]Session, error) {
	rows, err := s.db.Query(ctx, `
		SELECT `+sessionColumns+`
		FROM ruck_sessions WHERE user_id=$1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		sess, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, sess)
	}
	return sessions, rows.Err()
}

// UpdateWeight changes the fixed load weight of an existing session.
func (s *Service) UpdateWeight(ctx context.Context, id string, ruckWeightKg float64) (Session, error) {
	if errs := ValidateRuckWeight(ruckWeightKg); len(errs) > 0 {
		return Session{}, errs
	}

	sess, err := loadSession(ctx, s.db, id)
	if err != nil {
		return Session{}, err
	}
	sess.RuckWeightKg = ruckWeightKg

	_, err = s.db.Exec(ctx, `
		UPDATE ruck_sessions SET ruck_weight_kg=$2, updated_at=now() WHERE id=$1
	`, sess.ID, sess.RuckWeightKg)
	if err != nil {
		return Session{}, err
	}
	return sess, nil
}

// Delete removes a session; owned points and review go with it.
func (s *Service) Delete(ctx context.Context, id string) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM ruck_sessions WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// SetStatus requests a status transition and persists the resulting timing
// fields. Disallowed transitions fail with ErrInvalidTransition and leave
// the stored row untouched.
func (s *Service) SetStatus(ctx context.Context, id string, target Status) (Session, error) {
	sess, err := loadSession(ctx, s.db, id)
	if err != nil {
		return Session{}, err
	}

	if err := Transition(&sess, target, nowFn().UTC()); err != nil {
		return Session{}, err
	}

	_, err = s.db.Exec(ctx, `
		UPDATE ruck_sessions
		SET status=$2, start_time=$3, end_time=$4, paused_at=$5,
		    duration_seconds=$6, paused_duration_seconds=$7, updated_at=now()
		WHERE id=$1
	`, sess.ID, sess.Status, sess.StartTime, sess.EndTime, sess.PausedAt,
		sess.DurationSeconds, sess.PausedDurationSeconds)
	if err != nil {
		return Session{}, err
	}
	return sess, nil
}

// AddPoint appends a location sample to an active session and folds the
// incremental distance, elevation and calorie updates into its cumulative
// metrics. The whole read-modify-write runs under the session's lock and a
// single transaction, so a mid-flight failure mutates nothing.
func (s *Service) AddPoint(ctx context.Context, sessionID string, input LocationPoint) (Metrics, error) {
	if errs := ValidateCoordinates(input.Latitude, input.Longitude); len(errs) > 0 {
		return Metrics{}, errs
	}

	lock := s.locks.get(sessionID)
	lock.Lock()
	defer lock.Unlock()

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return Metrics{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	sess, err := loadSession(ctx, tx, sessionID)
	if err != nil {
		return Metrics{}, err
	}
	if sess.Status != StatusActive {
		return Metrics{}, ErrNotActive
	}

	var prev LocationPoint
	hasPrev := true
	err = tx.QueryRow(ctx, `
		SELECT latitude, longitude, altitude
		FROM location_points
		WHERE session_id=$1
		ORDER BY recorded_at DESC
		LIMIT 1
	`, sessionID).Scan(&prev.Latitude, &prev.Longitude, &prev.Altitude)
	if errors.Is(err, pgx.ErrNoRows) {
		hasPrev = false
	} else if err != nil {
		return Metrics{}, err
	}

	if input.RecordedAt.IsZero() {
		input.RecordedAt = nowFn().UTC()
	}
	err = tx.QueryRow(ctx, `
		INSERT INTO location_points (session_id, latitude, longitude, altitude, recorded_at)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING id
	`, sessionID, input.Latitude, input.Longitude, input.Altitude, input.RecordedAt).Scan(&input.ID)
	if err != nil {
		return Metrics{}, err
	}

	if hasPrev {
		sess.DistanceKm += geo.DistanceKm(prev.Latitude, prev.Longitude, input.Latitude, input.Longitude)

		if prev.Altitude != nil && input.Altitude != nil {
			gain, loss := geo.ElevationChange(*prev.Altitude, *input.Altitude)
			sess.ElevationGainM += gain
			sess.ElevationLossM += loss
		}

		var weightKg *float64
		if err := tx.QueryRow(ctx, `SELECT weight_kg FROM users WHERE id=$1`, sess.UserID).Scan(&weightKg); err != nil {
			return Metrics{}, err
		}
		if weightKg != nil && *weightKg > 0 {
			sess.CaloriesBurned = calories.Burned(*weightKg, sess.RuckWeightKg, sess.DistanceKm, sess.ElevationGainM)
		}

		_, err = tx.Exec(ctx, `
			UPDATE ruck_sessions
			SET distance_km=$2, elevation_gain_m=$3, elevation_loss_m=$4,
			    calories_burned=$5, updated_at=now()
			WHERE id=$1
		`, sessionID, sess.DistanceKm, sess.ElevationGainM, sess.ElevationLossM, sess.CaloriesBurned)
		if err != nil {
			return Metrics{}, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return Metrics{}, err
	}

	return Metrics{
		DistanceKm:     sess.DistanceKm,
		ElevationGainM: sess.ElevationGainM,
		ElevationLossM: sess.ElevationLossM,
		CaloriesBurned: sess.CaloriesBurned,
	}, nil
}

// Points returns all samples of a session in recording order.
func (s *Service) Points(ctx context.Context, sessionID string) ([]LocationPoint, error) {
	var exists bool
	if err := s.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM ruck_sessions WHERE id=$1)`, sessionID).Scan(&exists); err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrNotFound
	}
	return s.points(ctx, sessionID)
}

func (s *Service) points(ctx context.Context, sessionID string) ([]LocationPoint, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, session_id, latitude, longitude, altitude, recorded_at
		FROM location_points
		WHERE session_id=$1
		ORDER BY recorded_at
	`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var points []LocationPoint
	for rows.Next() {
		var p LocationPoint
		if err := rows.Scan(&p.ID, &p.SessionID, &p.Latitude, &p.Longitude, &p.Altitude, &p.RecordedAt); err != nil {
			return nil, err
		}
		points = append(points, p)
	}
	return points, rows.Err()
}

// Review returns the session's review, or ErrReviewNotFound.
func (s *Service) Review(ctx context.Context, sessionID string) (Review, error) {
	var exists bool
	if err := s.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM ruck_sessions WHERE id=$1)`, sessionID).Scan(&exists); err != nil {
		return Review{}, err
	}
	if !exists {
		return Review{}, ErrNotFound
	}
	return s.review(ctx, sessionID)
}

func (s *Service) review(ctx context.Context, sessionID string) (Review, error) {
	var r Review
	err := s.db.QueryRow(ctx, `
		SELECT id, session_id, rating, notes, created_at, updated_at
		FROM session_reviews WHERE session_id=$1
	`, sessionID).Scan(&r.ID, &r.SessionID, &r.Rating, &r.Notes, &r.CreatedAt, &r.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Review{}, ErrReviewNotFound
	}
	if err != nil {
		return Review{}, err
	}
	return r, nil
}

// UpsertReview creates or replaces the session's single review.
func (s *Service) UpsertReview(ctx context.Context, sessionID string, rating int, notes string) (Review, error) {
	if errs := ValidateRating(rating); len(errs) > 0 {
		return Review{}, errs
	}

	var exists bool
	if err := s.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM ruck_sessions WHERE id=$1)`, sessionID).Scan(&exists); err != nil {
		return Review{}, err
	}
	if !exists {
		return Review{}, ErrNotFound
	}

	r := Review{SessionID: sessionID, Rating: rating, Notes: notes}
	err := s.db.QueryRow(ctx, `
		INSERT INTO session_reviews (id, session_id, rating, notes)
		VALUES ($1,$2,$3,$4)
		ON CONFLICT (session_id) DO UPDATE
		SET rating=EXCLUDED.rating, notes=EXCLUDED.notes, updated_at=now()
		RETURNING id, created_at, updated_at
	`, uuid.NewString(), r.SessionID, r.Rating, r.Notes).Scan(&r.ID, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return Review{}, err
	}
	return r, nil
}

func loadSession(ctx context.Context, q db.Querier, id string) (Session, error) {
	row := q.QueryRow(ctx, `
		SELECT `+sessionColumns+`
		FROM ruck_sessions WHERE id=$1
	`, id)
	sess, err := scanSession(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Session{}, ErrNotFound
	}
	if err != nil {
		return Session{}, err
	}
	return sess, nil
}

func scanSession(row pgx.Row) (Session, error) {
	var sess Session
	err := row.Scan(&sess.ID, &sess.UserID, &sess.RuckWeightKg, &sess.Status,
		&sess.StartTime, &sess.EndTime, &sess.PausedAt,
		&sess.DurationSeconds, &sess.PausedDurationSeconds, &sess.DistanceKm,
		&sess.ElevationGainM, &sess.ElevationLossM, &sess.CaloriesBurned,
		&sess.CreatedAt, &sess.UpdatedAt)
	return sess, err
}

package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/orourkera/rucking/internal/db"
)

var (
	ErrNotFound      = errors.New("user not found")
	ErrInvalidWeight = errors.New("invalid weight_kg")
)

const (
	minWeightKg = 20.0
	maxWeightKg = 500.0
)

// ValidateWeight bounds body weight to a plausible human range. Calorie
// estimates degrade to zero without a weight, so an absent value is
// fine; an absurd one is not.
func ValidateWeight(weightKg float64) error {
	if weightKg < minWeightKg || weightKg > maxWeightKg {
		return fmt.Errorf("%w: must be between %.0f and %.0f", ErrInvalidWeight, minWeightKg, maxWeightKg)
	}
	return nil
}

type Service struct {
	db db.Querier
}

func NewService(db db.Querier) *Service {
	return &Service{db: db}
}

func (s *Service) Get(ctx context.Context, id string) (Profile, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, email, username, weight_kg, created_at, updated_at
		FROM users WHERE id = $1
	`, id)

	var p Profile
	if err := row.Scan(&p.ID, &p.Email, &p.Username, &p.WeightKg, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Profile{}, ErrNotFound
		}
		return Profile{}, err
	}
	return p, nil
}

func (s *Service) Update(ctx context.Context, id string, req UpdateRequest) (Profile, error) {
	if req.WeightKg != nil {
		if err := ValidateWeight(*req.WeightKg); err != nil {
			return Profile{}, err
		}
	}

	current, err := s.Get(ctx, id)
	if err != nil {
		return Profile{}, err
	}
	if req.Username != nil {
		current.Username = *req.Username
	}
	if req.WeightKg != nil {
		current.WeightKg = req.WeightKg
	}

	row := s.db.QueryRow(ctx, `
		UPDATE users SET username = $2, weight_kg = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`, id, current.Username, current.WeightKg)
	if err := row.Scan(&current.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Profile{}, ErrNotFound
		}
		return Profile{}, err
	}
	return current, nil
}

// Delete removes the account. Sessions, points and reviews go with it
// through the schema's cascade rules.
func (s *Service) Delete(ctx context.Context, id string) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

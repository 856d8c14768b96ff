package user

import "time"

// Profile is the public view of an account. The password hash never
// leaves the auth package.
type Profile struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	WeightKg  *float64  `json:"weight_kg,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type UpdateRequest struct {
	Username *string  `json:"username"`
	WeightKg *float64 `json:"weight_kg"`
}

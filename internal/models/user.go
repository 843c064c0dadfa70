package models

import "time"

// Role gates who may create shared exercise definitions or administer
// accounts.
type Role string

const (
	RoleUser        Role = "USER"
	RoleTrustedUser Role = "TRUSTED_USER"
	RoleAdmin       Role = "ADMIN"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleTrustedUser || r == RoleAdmin
}

// CanCreateExercises reports whether the role may add shared catalog entries.
func (r Role) CanCreateExercises() bool {
	return r == RoleTrustedUser || r == RoleAdmin
}

// User is an account record.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
}

// Preferences parameterize the rest timer and display-only unit conversion.
type Preferences struct {
	UserID          int64  `json:"userId"`
	DefaultRestTime int    `json:"defaultRestTime"`
	WeightUnit      string `json:"weightUnit"`
}

// DefaultPreferences returns the values used when a user has no stored row.
func DefaultPreferences(userID int64) Preferences {
	return Preferences{UserID: userID, DefaultRestTime: 60, WeightUnit: "kg"}
}

// WeightMeasurement is one body-weight entry.
type WeightMeasurement struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"userId"`
	WeightKg   float64   `json:"weightKg"`
	MeasuredAt time.Time `json:"measuredAt"`
}

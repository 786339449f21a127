// Package model holds the row types returned by the repositories and
// serialized by the handlers. JSON field names are part of the API.
package model

import "time"

// Role is the marketplace role of a User.
type Role string

const (
	RoleOwner  Role = "owner"
	RoleWalker Role = "walker"
)

// DashboardPath is where a freshly logged-in user of this role lands.
// Anything that is not an owner is sent to the walker dashboard.
func (r Role) DashboardPath() string {
	if r == RoleOwner {
		return "/owner-dashboard.html"
	}
	return "/walker-dashboard.html"
}

// Book is the demo entity used to prove database connectivity.
type Book struct {
	ID     int    `json:"id" db:"id"`
	Title  string `json:"title" db:"title"`
	Author string `json:"author" db:"author"`
}

// User is a full users row, as stored in the session after login.
//
// PasswordHash holds whatever the row stores; it is compared verbatim
// by the login query.
type User struct {
	UserID       int       `json:"user_id" db:"user_id"`
	Username     string    `json:"username" db:"username"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"password_hash" db:"password_hash"`
	Role         Role      `json:"role" db:"role"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// DogWithOwner is a dog joined with its owner's username.
type DogWithOwner struct {
	DogName       string `json:"dog_name" db:"dog_name"`
	Size          string `json:"size" db:"size"`
	OwnerUsername string `json:"owner_username" db:"owner_username"`
}

// OpenWalkRequest is an open walk request joined with its dog and owner.
type OpenWalkRequest struct {
	RequestID       int       `json:"request_id" db:"request_id"`
	DogName         string    `json:"dog_name" db:"dog_name"`
	RequestedTime   time.Time `json:"requested_time" db:"requested_time"`
	DurationMinutes int       `json:"duration_minutes" db:"duration_minutes"`
	Location        string    `json:"location" db:"location"`
	OwnerUsername   string    `json:"owner_username" db:"owner_username"`
}

// WalkerSummary aggregates ratings and completed walks for one walker.
// AverageRating is nil when the walker has never been rated.
type WalkerSummary struct {
	WalkerUsername string   `json:"walker_username" db:"walker_username"`
	TotalRatings   int      `json:"total_ratings" db:"total_ratings"`
	AverageRating  *float64 `json:"average_rating" db:"average_rating"`
	CompletedWalks int      `json:"completed_walks" db:"completed_walks"`
}

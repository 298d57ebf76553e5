package domain

import "time"

// UserRole represents the role of a user in the marketplace
type UserRole string

const (
	RoleBuyer  UserRole = "buyer"
	RoleSeller UserRole = "seller"
)

// User represents a marketplace participant. Identity itself is owned by the
// external session provider; this record carries the role and the encrypted
// calendar credential material.
type User struct {
	ID    int64
	Name  *string
	Email string
	Role  UserRole

	// Encrypted credential material (tokencrypt envelopes). A user without a
	// refresh token has no connected calendar.
	EncryptedRefreshToken *string
	EncryptedAccessToken  *string
	AccessTokenExpiresAt  *time.Time

	CalendarID *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsSeller returns true if the user exposes bookable slots
func (u *User) IsSeller() bool {
	return u.Role == RoleSeller
}

// CalendarConnected returns true if the user has a stored refresh credential
func (u *User) CalendarConnected() bool {
	return u.EncryptedRefreshToken != nil && *u.EncryptedRefreshToken != ""
}

// TargetCalendarID returns the calendar events and freebusy queries go to
func (u *User) TargetCalendarID() string {
	if u.CalendarID != nil && *u.CalendarID != "" {
		return *u.CalendarID
	}
	return DefaultCalendarID
}

// DisplayName returns the name if set, the email otherwise
func (u *User) DisplayName() string {
	if u.Name != nil && *u.Name != "" {
		return *u.Name
	}
	return u.Email
}

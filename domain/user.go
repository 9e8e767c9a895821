package domain

import "time"

// User represents a registered account identity.
type User struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`

	// Both reset fields are set during an active password-reset window and
	// cleared together once the token is redeemed or the password changes.
	ResetPasswordToken   *string    `json:"-"`
	ResetPasswordExpires *time.Time `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HasActiveResetToken reports whether the user holds a reset token that is
// still valid at the reference time.
func (u *User) HasActiveResetToken(reference time.Time) bool {
	if u == nil || u.ResetPasswordToken == nil || u.ResetPasswordExpires == nil {
		return false
	}
	if reference.IsZero() {
		reference = time.Now()
	}
	return reference.Before(*u.ResetPasswordExpires)
}

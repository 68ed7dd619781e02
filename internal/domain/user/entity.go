package user

import (
	"time"

	"github.com/google/uuid"
)

const RoleUser = "user"

// Address is the user's postal address.
type Address struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zip_code"`
}

// User represents a pickup requester.
type User struct {
	ID             uuid.UUID
	FirstName      string
	LastName       string
	Email          string
	PasswordHashed string
	PhoneNumber    string
	Address        Address
	Role           string

	// Password reset; only the hash of the token is ever stored.
	ResetTokenHash    *string
	ResetTokenExpires *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// HasValidResetToken reports whether the stored reset token hash matches and
// has not expired.
func (u *User) HasValidResetToken(tokenHash string, now time.Time) bool {
	if u.ResetTokenHash == nil || u.ResetTokenExpires == nil {
		return false
	}
	return *u.ResetTokenHash == tokenHash && now.Before(*u.ResetTokenExpires)
}

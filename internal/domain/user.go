package domain

import "time"

// User represents a registered account. PasswordHash is the only form of the
// password that is ever persisted.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	CreatedAt    time.Time
	UpdatedAt    time.Time

	pendingPassword string
	passwordChanged bool
}

// SetPassword stages a plaintext password. It is hashed by the credential
// store on the next Create or Save and never stored as is.
func (u *User) SetPassword(plain string) {
	u.pendingPassword = plain
	u.passwordChanged = true
}

// PendingPassword returns the staged plaintext password, if any.
func (u *User) PendingPassword() (string, bool) {
	return u.pendingPassword, u.passwordChanged
}

// ApplyPasswordHash replaces the staged password with its hash and clears the
// changed flag.
func (u *User) ApplyPasswordHash(hash string) {
	u.PasswordHash = hash
	u.pendingPassword = ""
	u.passwordChanged = false
}

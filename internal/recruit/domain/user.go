package domain

import "time"

type User struct {
	ID           string
	FirstName    string
	LastName     string
	Email        string // unique natural key, used for login
	Phone        string // optional
	PasswordHash string // bcrypt encoded, never plaintext
	Role         Role
	IsActive     bool // inactive accounts cannot authenticate
	CreatedAt    time.Time
}

func (u User) FullName() string {
	return u.FirstName + " " + u.LastName
}

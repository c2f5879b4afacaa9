package entity

import "strings"

type User struct {
	Base
	Email        string  `db:"email"`
	PasswordHash string  `db:"password_hash"`
	FirstName    *string `db:"first_name"`
	LastName     *string `db:"last_name"`
	IsActive     bool    `db:"is_active"`
	IsAdmin      bool    `db:"is_admin"`
}

// FullName joins first and last name, tolerating either being unset
func (u *User) FullName() string {
	var parts []string
	if u.FirstName != nil && *u.FirstName != "" {
		parts = append(parts, *u.FirstName)
	}
	if u.LastName != nil && *u.LastName != "" {
		parts = append(parts, *u.LastName)
	}
	return strings.Join(parts, " ")
}

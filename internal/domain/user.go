package domain

// User is an account holder. The login is the primary key; every other
// entity in the system is owned by exactly one login.
type User struct {
	Login        string
	Email        string
	PasswordHash string
}

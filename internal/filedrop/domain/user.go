package domain

// User is one seeded account. The set of users is fixed at startup and
// never mutated for the process lifetime.
type User struct {
	Username     string
	FullName     string
	PasswordHash string // argon2 encoded
	Disabled     bool
}

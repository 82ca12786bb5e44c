package models

// User is the identity row matched during login. UserID doubles as the
// patient_id used to filter every other table.
type User struct {
	UserID   int    `json:"user_id"`
	Email    string `json:"email"`
	Username string `json:"username"`
}

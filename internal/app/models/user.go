package models

// Role identifies the credential kind.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleStudent Role = "student"
)

// User defines a login credential, optionally linked to a student.
type User struct {
	ID        int64  `json:"id" db:"id"`
	Username  string `json:"username" db:"username"`
	Password  string `json:"-" db:"password"` // salted PBKDF2 hash, excluded from JSON
	Role      Role   `json:"role" db:"role"`
	StudentID *int64 `json:"studentId,omitempty" db:"student_id"`
}

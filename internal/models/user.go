package models

import (
	"time"

	"github.com/google/uuid"
)

type UserType string

const (
	UserTypeEmployee UserType = "Employee"
	UserTypeAdmin    UserType = "Admin"
)

type User struct {
	ID        uuid.UUID `db:"id"`
	Type      UserType  `db:"type"`
	Email     string    `db:"email"`
	Password  string    `db:"password"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

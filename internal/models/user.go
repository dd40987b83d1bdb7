package models

import (
	"time"

	"github.com/google/uuid"
)

type Company struct {
	ID          uuid.UUID `db:"id"`
	Name        string    `db:"name"`
	CompanyCode string    `db:"company_code"`
	CreatedAt   time.Time `db:"created_at"`
}

type User struct {
	ID        uuid.UUID `db:"id"`
	Email     string    `db:"email"`
	FullName  string    `db:"full_name"`
	CompanyID uuid.UUID `db:"company_id"`
	IsAdmin   bool      `db:"is_admin"`
	CreatedAt time.Time `db:"created_at"`
}

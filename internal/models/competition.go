package models

import (
	"time"

	"github.com/google/uuid"
)

// Competition — месячное соревнование одной компании.
// YearMonth всегда нормализован к первому числу месяца.
type Competition struct {
	ID        uuid.UUID `db:"id"`
	CompanyID uuid.UUID `db:"company_id"`
	YearMonth time.Time `db:"year_month"`
	IsActive  bool      `db:"is_active"`
	CreatedAt time.Time `db:"created_at"`
}

type Entry struct {
	ID            uuid.UUID `db:"id"`
	UserID        uuid.UUID `db:"user_id"`
	ActivityID    uuid.UUID `db:"activity_id"`
	CompetitionID uuid.UUID `db:"competition_id"`
	Value         float64   `db:"value"`
	Points        int       `db:"points"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

// EntryDetail — запись с именами для отчётов.
type EntryDetail struct {
	UserName     string    `db:"user_name"`
	ActivityName string    `db:"activity_name"`
	Unit         string    `db:"unit"`
	Value        float64   `db:"value"`
	Points       int       `db:"points"`
	UpdatedAt    time.Time `db:"updated_at"`
}

// Standing не хранится в БД — всегда пересчитывается из записей.
type Standing struct {
	UserID      uuid.UUID
	FullName    string
	TotalPoints int
	Entries     int
	Rank        int
}

package models

import (
	"time"

	"github.com/google/uuid"
)

// Tier — одна ступень шкалы: [Min, Max) → Points.
// Max == nil означает открытую верхнюю ступень (без ограничения).
type Tier struct {
	Min    float64  `json:"min"`
	Max    *float64 `json:"max,omitempty"`
	Points int      `json:"points"`
}

// TierTable хранится в activities.scoring_tiers как JSONB.
type TierTable struct {
	Tiers []Tier `json:"tiers"`
}

type Activity struct {
	ID          uuid.UUID  `db:"id"`
	CompanyID   *uuid.UUID `db:"company_id"` // nil — глобальная активность
	Name        string     `db:"name"`
	Description string     `db:"description"`
	Unit        string     `db:"unit"`
	Tiers       TierTable  `db:"scoring_tiers"`
	IsActive    bool       `db:"is_active"`
	CreatedAt   time.Time  `db:"created_at"`
}

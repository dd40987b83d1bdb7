package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/velmark/fitness-contest/internal/models"
)

func ptrF(v float64) *float64 { return &v }

// SeedGlobalActivities наполняет глобальный каталог стандартными
// активностями. Повторный запуск ничего не меняет.
func SeedGlobalActivities(ctx context.Context, database *sql.DB) error {
	defaults := []models.Activity{
		{
			Name: "Бег", Description: "Километры бега за месяц", Unit: "км",
			Tiers: models.TierTable{Tiers: []models.Tier{
				{Min: 0, Max: ptrF(50), Points: 1},
				{Min: 50, Max: ptrF(100), Points: 2},
				{Min: 100, Points: 3},
			}},
		},
		{
			Name: "Велосипед", Description: "Километры на велосипеде за месяц", Unit: "км",
			Tiers: models.TierTable{Tiers: []models.Tier{
				{Min: 0, Max: ptrF(100), Points: 1},
				{Min: 100, Max: ptrF(200), Points: 2},
				{Min: 200, Points: 3},
			}},
		},
		{
			Name: "Ходьба", Description: "Тысячи шагов за месяц", Unit: "тыс. шагов",
			Tiers: models.TierTable{Tiers: []models.Tier{
				{Min: 0, Max: ptrF(150), Points: 1},
				{Min: 150, Max: ptrF(300), Points: 2},
				{Min: 300, Points: 3},
			}},
		},
	}

	for _, a := range defaults {
		raw, err := json.Marshal(a.Tiers)
		if err != nil {
			return err
		}
		_, err = database.ExecContext(ctx, `
INSERT INTO activities (company_id, name, description, unit, scoring_tiers, is_active)
VALUES (NULL, $1, $2, $3, $4, TRUE)
ON CONFLICT (name) WHERE company_id IS NULL DO NOTHING`,
			a.Name, a.Description, a.Unit, raw)
		if err != nil {
			return fmt.Errorf("seed активности %q: %w", a.Name, err)
		}
	}
	return nil
}

//go:build testutil
// +build testutil

package db_test

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/velmark/fitness-contest/internal/db"
	"github.com/velmark/fitness-contest/internal/models"
	"github.com/velmark/fitness-contest/internal/testutil/testdb"
)

func ptrF(v float64) *float64 { return &v }

// fixture: компания, сотрудник, активность «Бег», соревнование за март 2025.
type fixture struct {
	company     *models.Company
	user        *models.User
	activity    *models.Activity
	competition *models.Competition
}

func mustFixture(t *testing.T, database *sql.DB) fixture {
	t.Helper()
	ctx := context.Background()

	company, err := db.CreateCompany(ctx, database, "ООО Ромашка")
	if err != nil {
		t.Fatal(err)
	}
	user, err := db.CreateUser(ctx, database, "ivanov@romashka.ru", "Иванов Иван", company.ID, false)
	if err != nil {
		t.Fatal(err)
	}
	activity, err := db.CreateActivity(ctx, database, &company.ID, "Бег", "Километры бега", "км",
		models.TierTable{Tiers: []models.Tier{
			{Min: 0, Max: ptrF(50), Points: 1},
			{Min: 50, Max: ptrF(100), Points: 2},
			{Min: 100, Points: 3},
		}})
	if err != nil {
		t.Fatal(err)
	}
	competition, err := db.GetOrCreateCompetition(ctx, database, company.ID,
		time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC), true)
	if err != nil {
		t.Fatal(err)
	}
	return fixture{company, user, activity, competition}
}

func TestUpsertEntry_Idempotent(t *testing.T) {
	h, err := testdb.Start(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	defer h.Close()
	ctx := context.Background()
	fx := mustFixture(t, h.DB)

	var first *models.Entry
	for i := 0; i < 5; i++ {
		e, err := db.UpsertEntry(ctx, h.DB, fx.user.ID, fx.activity.ID, fx.competition.ID, 52.5, 2)
		if err != nil {
			t.Fatal(err)
		}
		if first == nil {
			first = e
			continue
		}
		if e.ID != first.ID || e.Points != 2 {
			t.Fatalf("повторная отправка должна вернуть ту же запись: %+v", e)
		}
	}

	var count int
	if err := h.DB.QueryRow(`SELECT COUNT(*) FROM user_entries`).Scan(&count); err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Fatalf("ожидали одну запись, в таблице %d", count)
	}
}

func TestUpsertEntry_OverwritesValueAndPoints(t *testing.T) {
	h, err := testdb.Start(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	defer h.Close()
	ctx := context.Background()
	fx := mustFixture(t, h.DB)

	e1, err := db.UpsertEntry(ctx, h.DB, fx.user.ID, fx.activity.ID, fx.competition.ID, 10, 1)
	if err != nil {
		t.Fatal(err)
	}
	e2, err := db.UpsertEntry(ctx, h.DB, fx.user.ID, fx.activity.ID, fx.competition.ID, 120, 3)
	if err != nil {
		t.Fatal(err)
	}
	if e2.ID != e1.ID {
		t.Fatal("перезапись создала новую строку")
	}
	if e2.Value != 120 || e2.Points != 3 {
		t.Fatalf("значение и баллы не перезаписались: %+v", e2)
	}
	if !e2.CreatedAt.Equal(e1.CreatedAt) {
		t.Fatal("created_at не должен меняться при перезаписи")
	}
}

func TestUpsertEntry_Parallel(t *testing.T) {
	h, err := testdb.Start(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	defer h.Close()
	ctx := context.Background()
	fx := mustFixture(t, h.DB)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if _, err := db.UpsertEntry(ctx, h.DB, fx.user.ID, fx.activity.ID, fx.competition.ID, float64(i), 1); err != nil {
				t.Error(err)
			}
		}(i)
	}
	wg.Wait()

	var count int
	if err := h.DB.QueryRow(`SELECT COUNT(*) FROM user_entries WHERE user_id = $1`, fx.user.ID).Scan(&count); err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Fatalf("параллельные записи по одному ключу: ожидали одну строку, получили %d", count)
	}
}

func TestListEntries_Order(t *testing.T) {
	h, err := testdb.Start(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	defer h.Close()
	ctx := context.Background()
	fx := mustFixture(t, h.DB)

	user2, err := db.CreateUser(ctx, h.DB, "petrov@romashka.ru", "Петров Пётр", fx.company.ID, false)
	if err != nil {
		t.Fatal(err)
	}
	cycling, err := db.CreateActivity(ctx, h.DB, &fx.company.ID, "Велосипед", "", "км",
		models.TierTable{Tiers: []models.Tier{{Min: 0, Points: 1}}})
	if err != nil {
		t.Fatal(err)
	}

	for _, uid := range []uuid.UUID{fx.user.ID, user2.ID} {
		for _, aid := range []uuid.UUID{fx.activity.ID, cycling.ID} {
			if _, err := db.UpsertEntry(ctx, h.DB, uid, aid, fx.competition.ID, 10, 1); err != nil {
				t.Fatal(err)
			}
		}
	}

	entries, err := db.ListEntries(ctx, h.DB, fx.competition.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 4 {
		t.Fatalf("ожидали 4 записи, получили %d", len(entries))
	}
	for i := 1; i < len(entries); i++ {
		prev, cur := entries[i-1], entries[i]
		if prev.UserID.String() > cur.UserID.String() {
			t.Fatal("записи не упорядочены по пользователю")
		}
		if prev.UserID == cur.UserID && prev.ActivityID.String() > cur.ActivityID.String() {
			t.Fatal("записи одного пользователя не упорядочены по активности")
		}
	}
}

func TestCascadeDelete(t *testing.T) {
	h, err := testdb.Start(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	defer h.Close()
	ctx := context.Background()
	fx := mustFixture(t, h.DB)

	if _, err := db.UpsertEntry(ctx, h.DB, fx.user.ID, fx.activity.ID, fx.competition.ID, 10, 1); err != nil {
		t.Fatal(err)
	}
	if _, err := h.DB.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, fx.user.ID); err != nil {
		t.Fatal(err)
	}
	var count int
	if err := h.DB.QueryRow(`SELECT COUNT(*) FROM user_entries`).Scan(&count); err != nil {
		t.Fatal(err)
	}
	if count != 0 {
		t.Fatalf("записи удалённого пользователя должны каскадно удаляться, осталось %d", count)
	}
}

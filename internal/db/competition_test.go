//go:build testutil
// +build testutil

package db_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/velmark/fitness-contest/internal/db"
	"github.com/velmark/fitness-contest/internal/testutil/testdb"
)

func TestGetOrCreateCompetition_Parallel(t *testing.T) {
	h, err := testdb.Start(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	defer h.Close()
	ctx := context.Background()

	company, err := db.CreateCompany(ctx, h.DB, "ООО Ромашка")
	if err != nil {
		t.Fatal(err)
	}
	month := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)

	// 50 конкурирующих первых заявок — ровно одно соревнование
	var wg sync.WaitGroup
	ids := make([]uuid.UUID, 50)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			c, err := db.GetOrCreateCompetition(ctx, h.DB, company.ID, month, true)
			if err != nil {
				t.Error(err)
				return
			}
			ids[i] = c.ID
		}(i)
	}
	wg.Wait()

	for i := 1; i < len(ids); i++ {
		if ids[i] != ids[0] {
			t.Fatalf("получили разные соревнования для одного месяца: %s и %s", ids[0], ids[i])
		}
	}

	var count int
	if err := h.DB.QueryRow(`SELECT COUNT(*) FROM monthly_competitions WHERE company_id = $1`, company.ID).Scan(&count); err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Fatalf("ожидали одно соревнование, в таблице %d", count)
	}
}

func TestGetOrCreateCompetition_ReturnsExistingUnchanged(t *testing.T) {
	h, err := testdb.Start(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	defer h.Close()
	ctx := context.Background()

	company, err := db.CreateCompany(ctx, h.DB, "ООО Ромашка")
	if err != nil {
		t.Fatal(err)
	}
	month := time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC)

	first, err := db.GetOrCreateCompetition(ctx, h.DB, company.ID, month, false)
	if err != nil {
		t.Fatal(err)
	}
	// повторный вызов с другим флагом активности не меняет запись
	second, err := db.GetOrCreateCompetition(ctx, h.DB, company.ID, month, true)
	if err != nil {
		t.Fatal(err)
	}
	if second.ID != first.ID || second.IsActive != first.IsActive {
		t.Fatalf("существующее соревнование изменилось: %+v → %+v", first, second)
	}
}

func TestCloseCompetition_Idempotent(t *testing.T) {
	h, err := testdb.Start(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	defer h.Close()
	ctx := context.Background()

	company, err := db.CreateCompany(ctx, h.DB, "ООО Ромашка")
	if err != nil {
		t.Fatal(err)
	}
	c, err := db.GetOrCreateCompetition(ctx, h.DB, company.ID,
		time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC), true)
	if err != nil {
		t.Fatal(err)
	}

	if err := db.CloseCompetition(ctx, h.DB, c.ID); err != nil {
		t.Fatal(err)
	}
	// повторное закрытие — no-op, не ошибка
	if err := db.CloseCompetition(ctx, h.DB, c.ID); err != nil {
		t.Fatalf("повторное закрытие должно быть no-op: %v", err)
	}

	got, err := db.GetCompetitionByID(ctx, h.DB, c.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.IsActive {
		t.Fatal("соревнование осталось активным после закрытия")
	}
}

func TestCloseElapsedCompetitions(t *testing.T) {
	h, err := testdb.Start(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	defer h.Close()
	ctx := context.Background()

	company, err := db.CreateCompany(ctx, h.DB, "ООО Ромашка")
	if err != nil {
		t.Fatal(err)
	}
	feb := time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC)
	mar := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	if _, err := db.GetOrCreateCompetition(ctx, h.DB, company.ID, feb, true); err != nil {
		t.Fatal(err)
	}
	cur, err := db.GetOrCreateCompetition(ctx, h.DB, company.ID, mar, true)
	if err != nil {
		t.Fatal(err)
	}

	n, err := db.CloseElapsedCompetitions(ctx, h.DB, mar)
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Fatalf("ожидали закрыть 1 соревнование, закрыли %d", n)
	}
	got, err := db.GetCompetitionByID(ctx, h.DB, cur.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !got.IsActive {
		t.Fatal("текущий месяц не должен закрываться")
	}
}

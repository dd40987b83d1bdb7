package export

import (
	"fmt"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/velmark/fitness-contest/internal/models"
)

type SheetSpec struct {
	Title  string
	Header []string
	Rows   [][]string
}

type LeaderboardWorkbook struct {
	File *excelize.File
}

// BuildLeaderboardSheets готовит листы отчёта: рейтинг и детализацию записей.
func BuildLeaderboardSheets(standings []models.Standing, details []models.EntryDetail) []SheetSpec {
	rating := SheetSpec{
		Title:  "Рейтинг",
		Header: []string{"Место", "Сотрудник", "Баллы", "Активности"},
	}
	for _, s := range standings {
		rating.Rows = append(rating.Rows, []string{
			strconv.Itoa(s.Rank),
			s.FullName,
			strconv.Itoa(s.TotalPoints),
			strconv.Itoa(s.Entries),
		})
	}

	entries := SheetSpec{
		Title:  "Записи",
		Header: []string{"Сотрудник", "Активность", "Значение", "Ед.", "Баллы", "Обновлено"},
	}
	for _, d := range details {
		entries.Rows = append(entries.Rows, []string{
			d.UserName,
			d.ActivityName,
			strconv.FormatFloat(d.Value, 'f', -1, 64),
			d.Unit,
			strconv.Itoa(d.Points),
			d.UpdatedAt.Format("02.01.2006 15:04"),
		})
	}
	return []SheetSpec{rating, entries}
}

func NewLeaderboardWorkbook(sheets []SheetSpec) (*LeaderboardWorkbook, error) {
	f := excelize.NewFile()

	bold, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	for i, s := range sheets {
		name := s.Title
		if i == 0 {
			if err := f.SetSheetName("Sheet1", name); err != nil {
				return nil, fmt.Errorf("rename sheet: %w", err)
			}
		} else {
			if _, err := f.NewSheet(name); err != nil {
				return nil, fmt.Errorf("new sheet: %w", err)
			}
		}
		// заголовки
		for col, h := range s.Header {
			cell := fmt.Sprintf("%s1", colName(col+1))
			if err := f.SetCellStr(name, cell, h); err != nil {
				return nil, fmt.Errorf("set cell %s: %w", cell, err)
			}
		}
		// стиль заголовков + автофильтр
		end := colName(len(s.Header)) + "1"
		_ = f.SetCellStyle(name, "A1", end, bold)
		_ = f.AutoFilter(name, "A1:"+end, nil)

		// строки
		for r, row := range s.Rows {
			for c, val := range row {
				cell := fmt.Sprintf("%s%d", colName(c+1), r+2)
				if err := f.SetCellStr(name, cell, val); err != nil {
					return nil, fmt.Errorf("set cell %s: %w", cell, err)
				}
			}
		}
		// эвристическая ширина: по длине заголовка и первых строк
		for c := 1; c <= len(s.Header); c++ {
			maxim := len(s.Header[c-1])
			for r := 0; r < minim(50, len(s.Rows)); r++ {
				if l := len(s.Rows[r][c-1]); l > maxim {
					maxim = l
				}
			}
			w := float64(maxim) * 0.9
			if w < 12 {
				w = 12
			}
			if w > 40 {
				w = 40
			}
			_ = f.SetColWidth(name, colName(c), colName(c), w)
		}
	}
	return &LeaderboardWorkbook{File: f}, nil
}

// SaveTemp пишет файл отчёта вида leaderboard_2025-03.xlsx во временный каталог.
func (w *LeaderboardWorkbook) SaveTemp(month time.Time) (string, error) {
	name := fmt.Sprintf("leaderboard_%s.xlsx", month.Format("2006-01"))
	path := "/tmp/" + name
	return path, w.File.SaveAs(path)
}

// helpers
func colName(n int) string {
	s := ""
	for n > 0 {
		n--
		s = string(rune('A'+(n%26))) + s
		n /= 26
	}
	return s
}

func minim(a, b int) int {
	if a < b {
		return a
	}
	return b
}

package config

import (
	"testing"
)

func TestParseEmails(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"a@corp.ru", 1},
		{"a@corp.ru,b@corp.ru", 2},
		{" a@corp.ru , B@Corp.RU ", 2},
	}
	for _, tc := range cases {
		got := parseEmails(tc.in)
		if len(got) != tc.want {
			t.Fatalf("parseEmails(%q): ожидали %d адресов, получили %v", tc.in, tc.want, got)
		}
	}
	// адреса приводятся к нижнему регистру
	got := parseEmails("Admin@Corp.RU")
	if got[0] != "admin@corp.ru" {
		t.Fatalf("ожидали нижний регистр, получили %q", got[0])
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://test")
	t.Setenv("TZ", "UTC")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("HTTP_ADDR по умолчанию :8080, получили %q", cfg.HTTPAddr)
	}
	if cfg.LogLevel != "info" || cfg.Env != "dev" {
		t.Fatalf("неожиданные значения по умолчанию: %+v", cfg)
	}
	if cfg.Location == nil {
		t.Fatal("Location не должен быть nil")
	}
}

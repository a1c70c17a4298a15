package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoad_PreservesOrderAndLowercases(t *testing.T) {
	c, err := Load(strings.NewReader(`{"Tea": 10, "coffee": 20, "Vada Pav": 18}`))
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	got := c.Entries()
	want := []Entry{{"tea", 10}, {"coffee", 20}, {"vada pav", 18}}
	if len(got) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("entry %d: expected %+v, got %+v", i, want[i], got[i])
		}
	}
}

func TestLoad_Malformed(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"empty", ``},
		{"array", `["tea"]`},
		{"string price", `{"tea": "ten"}`},
		{"fractional price", `{"tea": 10.5}`},
		{"negative price", `{"tea": -1}`},
		{"nested", `{"tea": {"price": 10}}`},
		{"null price", `{"tea": null}`},
		{"case duplicate", `{"tea": 10, "TEA": 12}`},
		{"empty name", `{"": 10}`},
		{"truncated", `{"tea": 10`},
		{"trailing", `{"tea": 10} {}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.src))
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !errors.Is(err, ErrMalformed) {
				t.Fatalf("expected ErrMalformed, got %v", err)
			}
		})
	}
}

func TestLookup_CaseInsensitiveWithZeroFallback(t *testing.T) {
	c, err := New([]Entry{{"tea", 10}, {"coffee", 20}})
	if err != nil {
		t.Fatalf("New error: %v", err)
	}

	tests := []struct {
		name string
		want int64
	}{
		{"tea", 10},
		{"TEA", 10},
		{"Tea", 10},
		{"cOFFee", 20},
		{"mystery-item", 0},
		{"", 0},
	}
	for _, tt := range tests {
		if got := c.Lookup(tt.name); got != tt.want {
			t.Errorf("Lookup(%q) = %d, want %d", tt.name, got, tt.want)
		}
		if c.Lookup(tt.name) != c.Lookup(strings.ToLower(tt.name)) {
			t.Errorf("Lookup(%q) differs from its lowercased form", tt.name)
		}
	}
}

func TestEntriesAndPricesAreCopies(t *testing.T) {
	c, err := New([]Entry{{"tea", 10}})
	if err != nil {
		t.Fatalf("New error: %v", err)
	}

	c.Entries()[0].Price = 999
	c.Prices()["tea"] = 999

	if c.Lookup("tea") != 10 {
		t.Fatalf("catalog was mutated through a returned copy")
	}
	if c.Len() != 1 {
		t.Fatalf("expected Len 1, got %d", c.Len())
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "price_db.json")
	if err := os.WriteFile(path, []byte(`{"tea": 10, "coffee": 20}`), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	c, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile error: %v", err)
	}
	if c.Lookup("coffee") != 20 {
		t.Fatalf("expected coffee=20, got %d", c.Lookup("coffee"))
	}

	if _, err := LoadFile(filepath.Join(dir, "missing.json")); err == nil {
		t.Fatal("expected error for missing file, got nil")
	}
}

func TestLoadFile_RepositoryPriceList(t *testing.T) {
	c, err := LoadFile(filepath.Join("..", "..", "price_db.json"))
	if err != nil {
		t.Fatalf("LoadFile error: %v", err)
	}
	if c.Len() == 0 {
		t.Fatal("expected a non-empty price list")
	}
}

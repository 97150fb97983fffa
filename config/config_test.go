package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/etnz/kassabuch"
	"github.com/google/go-cmp/cmp"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	if diff := cmp.Diff(Default(), *cfg); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
	if d := cfg.Dialect(); d.Delimiter != ';' || d.Quote != '|' {
		t.Errorf("Dialect() = %q %q, want ; |", d.Delimiter, d.Quote)
	}
	if cfg.Mode() != kassabuch.SubstringMatch {
		t.Errorf("Mode() = %v, want SubstringMatch", cfg.Mode())
	}
}

func TestLoadFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kassabuch.yaml")
	content := `year: 2021
product_folder: data/products
pattern_search: true
save_history: false
csv:
  delimiter: ","
  encoding: utf-8
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("KB_OUTPUT_FOLDER", "elsewhere")
	t.Setenv("KB_CSV_QUOTE", `"`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	want := Default()
	want.Year = 2021
	want.ProductFolder = "data/products"
	want.OutputFolder = "elsewhere"
	want.PatternSearch = true
	want.SaveHistory = false
	want.CSV = CSV{Delimiter: ",", Quote: `"`, Encoding: "utf-8"}
	if diff := cmp.Diff(want, *cfg); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
	if cfg.Mode() != kassabuch.PatternMatch {
		t.Errorf("Mode() = %v, want PatternMatch", cfg.Mode())
	}
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		name   string
		change func(*Config)
		want   string
	}{
		{"long delimiter", func(c *Config) { c.CSV.Delimiter = ";;" }, "Delimiter"},
		{"no product folder", func(c *Config) { c.ProductFolder = "" }, "ProductFolder"},
		{"bad currency", func(c *Config) { c.Currency = "EURO" }, "Currency"},
		{"bad encoding", func(c *Config) { c.CSV.Encoding = "klingon" }, "csv.encoding"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.change(&cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Errorf("Validate() = %v, want an error about %s", err, tc.want)
			}
		})
	}
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate(Default()) unexpected error: %v", err)
	}
}

func TestEnvKey(t *testing.T) {
	testCases := map[string]string{
		"KB_PRODUCT_FOLDER": "product_folder",
		"KB_CSV_DELIMITER":  "csv.delimiter",
		"KB_DEBUG":          "debug",
	}
	for in, want := range testCases {
		if got := envKey(in); got != want {
			t.Errorf("envKey(%q) = %q, want %q", in, got, want)
		}
	}
}

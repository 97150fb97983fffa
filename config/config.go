// Package config loads the kb configuration from a YAML file and the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/etnz/kassabuch"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"go.uber.org/zap"
)

// EnvPrefix prefixes the environment variables overriding the file.
const EnvPrefix = "KB_"

// CSV describes the dialect of bill files.
type CSV struct {
	Delimiter string `koanf:"delimiter" validate:"required,onechar"`
	Quote     string `koanf:"quote" validate:"required,onechar"`
	Encoding  string `koanf:"encoding" validate:"required"`
}

// Config holds the settings of a kb run.
type Config struct {
	Year                int    `koanf:"year" validate:"gte=1900,lte=9999"`
	ProductFolder       string `koanf:"product_folder" validate:"required"`
	OutputFolder        string `koanf:"output_folder" validate:"required"`
	StoresFile          string `koanf:"stores_file" validate:"required"`
	PaymentsFile        string `koanf:"payments_file" validate:"required"`
	DiscountClassesFile string `koanf:"discount_classes_file" validate:"required"`
	ProductKeysFile     string `koanf:"product_keys_file"`
	Encoding            string `koanf:"encoding" validate:"required"`
	CSV                 CSV    `koanf:"csv"`
	DecimalSeparator    string `koanf:"decimal_separator" validate:"required"`
	PatternSearch       bool   `koanf:"pattern_search"`
	SaveHistory         bool   `koanf:"save_history"`
	Currency            string `koanf:"currency" validate:"required,len=3"`
	LogFile             string `koanf:"log_file"`
	Debug               bool   `koanf:"debug"`
}

// Default returns the configuration used when nothing overrides it.
func Default() Config {
	return Config{
		Year:                time.Now().Year(),
		ProductFolder:       "products",
		OutputFolder:        "output",
		StoresFile:          "stores.json",
		PaymentsFile:        "payments.json",
		DiscountClassesFile: "discount_classes.json",
		ProductKeysFile:     "product_keys.json",
		Encoding:            "utf-8",
		CSV:                 CSV{Delimiter: ";", Quote: "|", Encoding: "windows-1252"},
		DecimalSeparator:    ",",
		SaveHistory:         true,
		Currency:            "EUR",
	}
}

// Load reads path on top of the defaults, then the KB_ environment variables.
// A missing file is not an error.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	k := koanf.New(".")
	if path != "" {
		err := k.Load(file.Provider(path), yaml.Parser())
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
	}
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	cfg := Default()
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// envKey maps KB_CSV_QUOTE to csv.quote and KB_PRODUCT_FOLDER to product_folder.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	if rest, ok := strings.CutPrefix(key, "csv_"); ok {
		return "csv." + rest
	}
	return key
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterValidation("onechar", func(fl validator.FieldLevel) bool {
		return utf8.RuneCountInString(fl.Field().String()) == 1
	})
	return v
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if _, err := kassabuch.TextEncoding(c.Encoding); err != nil {
		return fmt.Errorf("invalid config: encoding: %w", err)
	}
	if _, err := kassabuch.TextEncoding(c.CSV.Encoding); err != nil {
		return fmt.Errorf("invalid config: csv.encoding: %w", err)
	}
	return nil
}

// Dialect returns the CSV dialect of bill files.
func (c *Config) Dialect() kassabuch.CSVDialect {
	delimiter, _ := utf8.DecodeRuneInString(c.CSV.Delimiter)
	quote, _ := utf8.DecodeRuneInString(c.CSV.Quote)
	enc, _ := kassabuch.TextEncoding(c.CSV.Encoding)
	return kassabuch.CSVDialect{Delimiter: delimiter, Quote: quote, Encoding: enc}
}

// Format returns the formatting options of bill rows.
func (c *Config) Format() kassabuch.FormatOptions {
	return kassabuch.FormatOptions{DecimalSeparator: c.DecimalSeparator}
}

// Mode returns the matching mode of the template resolver.
func (c *Config) Mode() kassabuch.MatchMode {
	if c.PatternSearch {
		return kassabuch.PatternMatch
	}
	return kassabuch.SubstringMatch
}

// ProductStore returns the product folder store.
func (c *Config) ProductStore(logger *zap.Logger) *kassabuch.FolderStore {
	enc, _ := kassabuch.TextEncoding(c.Encoding)
	return &kassabuch.FolderStore{
		Folder:   c.ProductFolder,
		KeysFile: c.ProductKeysFile,
		Encoding: enc,
		Logger:   logger,
	}
}

// ReferenceFiles returns the stores, payments and discount classes files.
func (c *Config) ReferenceFiles(logger *zap.Logger) kassabuch.ReferenceFiles {
	enc, _ := kassabuch.TextEncoding(c.Encoding)
	return kassabuch.ReferenceFiles{
		Stores:          c.StoresFile,
		Payments:        c.PaymentsFile,
		DiscountClasses: c.DiscountClassesFile,
		Encoding:        enc,
		Logger:          logger,
	}
}

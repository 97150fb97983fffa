package kassabuch

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"sort"

	"go.uber.org/zap"
	"golang.org/x/text/encoding"
)

// ReferenceFiles locates the JSON files of the stores, the payment methods
// and the discount classes.
type ReferenceFiles struct {
	Stores          string
	Payments        string
	DiscountClasses string
	Encoding        encoding.Encoding
	Logger          *zap.Logger
}

func (f ReferenceFiles) log() *zap.Logger {
	if f.Logger == nil {
		return zap.NewNop()
	}
	return f.Logger
}

// jpayments is the content of the payments file.
type jpayments struct {
	Payments []string `json:"payments"`
}

// Load reads the three files. A missing file is read as empty.
func (f ReferenceFiles) Load() (*References, error) {
	r := NewReferences()
	if err := f.read(f.Stores, &r.Stores); err != nil {
		return nil, err
	}
	var jp jpayments
	if err := f.read(f.Payments, &jp); err != nil {
		return nil, err
	}
	r.Payments = jp.Payments
	sort.Strings(r.Payments)
	if err := f.read(f.DiscountClasses, &r.DiscountClasses); err != nil {
		return nil, err
	}
	if r.Stores == nil {
		r.Stores = make(map[string]Store)
	}
	if r.DiscountClasses == nil {
		r.DiscountClasses = make(DiscountTable)
	}
	return r, nil
}

func (f ReferenceFiles) read(path string, v any) error {
	if path == "" {
		return nil
	}
	data, err := readText(path, f.Encoding)
	if errors.Is(err, fs.ErrNotExist) {
		f.log().Warn("reference file does not exist, using an empty one", zap.String("file", path))
		return nil
	}
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("invalid reference file %q: %w", path, err)
	}
	return nil
}

// WriteStores writes the stores file.
func (f ReferenceFiles) WriteStores(r *References) error {
	return f.write(f.Stores, r.Stores)
}

// WritePayments writes the payments file, sorted.
func (f ReferenceFiles) WritePayments(r *References) error {
	payments := append([]string{}, r.Payments...)
	sort.Strings(payments)
	return f.write(f.Payments, jpayments{Payments: payments})
}

func (f ReferenceFiles) write(path string, v any) error {
	if path == "" {
		return nil
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	if err := writeText(path, append(data, '\n'), f.Encoding); err != nil {
		return fmt.Errorf("could not write %q: %w", path, err)
	}
	return nil
}

package kassabuch

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/etnz/kassabuch/date"
)

// Sub folders of the output folder.
const (
	BackupFolder = "bill_backups"
	ExportFolder = "export"
)

// UniquePath returns base+ext when no such file exists, otherwise the first
// free base_00+ext, base_01+ext, ...
func UniquePath(base, ext string) string {
	if !exists(base + ext) {
		return base + ext
	}
	for i := 0; ; i++ {
		p := fmt.Sprintf("%s_%02d%s", base, i, ext)
		if !exists(p) {
			return p
		}
	}
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return !errors.Is(err, fs.ErrNotExist)
}

// storeFileName turns a store name into a single file name element.
var storeFileName = strings.NewReplacer(":", "-", "/", "-", `\`, "-", " ", "_")

// BackupPath returns a free path for the backup file of b, named after its
// date, time and store: "2021-02-13T12-34_Some_Store.csv".
func BackupPath(output string, b Bill) string {
	clock := strings.ReplaceAll(b.Time, ":", "-")
	store := storeFileName.Replace(b.Store)
	base := filepath.Join(output, BackupFolder, b.Date+"T"+clock+"_"+store)
	return UniquePath(base, ".csv")
}

// ExportPath returns a free path for exporting bills, named after the range
// of their dates and their count: "2021-02-01_to_2021-02-13_5bills.csv".
func ExportPath(output string, bills []Bill, ext string) string {
	days := make([]date.Date, 0, len(bills))
	for _, b := range bills {
		if d, err := date.Parse(b.Date); err == nil {
			days = append(days, d)
		}
	}
	span := "undated"
	if len(days) > 0 {
		span = date.Span(days...).Identifier()
	}
	base := filepath.Join(output, ExportFolder, fmt.Sprintf("%s_%dbills", span, len(bills)))
	return UniquePath(base, ext)
}

// WriteBillFile writes rows to a new file at path.
func WriteBillFile(path string, rows [][]string, d CSVDialect) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return err
	}
	if err := d.WriteRows(f, rows); err != nil {
		f.Close()
		return fmt.Errorf("could not write %q: %w", path, err)
	}
	return f.Close()
}

// ReadBillFiles decodes every bill file of folder whose bills fall in r,
// in file name order.
func ReadBillFiles(folder string, r date.Range, d CSVDialect, table DiscountTable) ([]Bill, error) {
	paths, err := filepath.Glob(filepath.Join(folder, "*.csv"))
	if err != nil {
		return nil, err
	}
	var bills []Bill
	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		decoded, err := DecodeBills(f, d, table)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("could not read bill file %q: %w", path, err)
		}
		for _, b := range decoded {
			if day, err := date.Parse(b.Date); err == nil && !r.Contains(day) {
				continue
			}
			bills = append(bills, b)
		}
	}
	return bills, nil
}

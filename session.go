package kassabuch

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"go.uber.org/zap"
)

var (
	// ErrEmptyBill is returned when saving a bill without any product.
	ErrEmptyBill = errors.New("bill has no product")
	// ErrNoBill is returned when exporting nothing.
	ErrNoBill = errors.New("no bill to export")
)

// KeysWriter persists the Name→Identifier index of a catalog.
type KeysWriter interface {
	WriteKeys(keys map[string]int) error
}

// ReferenceWriter persists the stores and payment methods.
type ReferenceWriter interface {
	WriteStores(r *References) error
	WritePayments(r *References) error
}

// Session records bills into a catalog.
type Session struct {
	Catalog    *Catalog
	References *References
	Products   ProductStore    // nil keeps products in memory
	Refs       ReferenceWriter // nil keeps references in memory
	Output     string          // backups go under it, none when empty
	Format     FormatOptions
	Dialect    CSVDialect
	Mode       MatchMode
	// SaveHistory appends each bill line to the history of its product.
	SaveHistory bool
	Logger      *zap.Logger

	Bills []Bill // saved during this session
}

func (s *Session) log() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}

// ResolveTemplate searches the catalog with the session match mode.
func (s *Session) ResolveTemplate(query string) Resolution {
	return ResolveTemplate(query, s.Catalog, s.Mode)
}

// Line parses and computes a typed line against the session discount classes.
func (s *Session) Line(raw RawLine) LineItem {
	return raw.Item(s.References.DiscountClasses)
}

// SaveTemplate saves p as a template and updates the keys file.
func (s *Session) SaveTemplate(p Product, opts ...TemplateOption) (Product, error) {
	saved, err := SaveTemplate(s.Catalog, p, s.Products, opts...)
	if err != nil {
		return Product{}, err
	}
	return saved, s.writeKeys()
}

// SaveBill builds the bill of items and records it.
//
// New stores and payment methods are registered, each product is saved with
// the purchase as history (unless SaveHistory is off, then only unknown
// products are created), and the bill is backed up under Output.
func (s *Session) SaveBill(items []LineItem, meta BillMeta) (Bill, error) {
	b := BuildBill(items, meta)
	if b.IsEmpty() {
		return b, ErrEmptyBill
	}

	if err := s.register(meta); err != nil {
		return b, err
	}

	for _, p := range b.Products {
		if p.Name == "" {
			continue
		}
		if !s.SaveHistory {
			if s.Catalog.Has(p.Name) {
				continue
			}
			p.History = nil
		}
		saved, err := SaveProduct(s.Catalog, p, s.Products)
		if err != nil {
			return b, err
		}
		s.log().Debug("purchase recorded", zap.String("product", saved.Name), zap.Int("id", saved.Identifier))
	}
	if err := s.writeKeys(); err != nil {
		return b, err
	}

	if s.Output != "" {
		path := BackupPath(s.Output, b)
		if err := WriteBillFile(path, BillRows(b, s.Format), s.Dialect); err != nil {
			return b, fmt.Errorf("could not back up bill: %w", err)
		}
		s.log().Info("bill saved", zap.String("file", path), zap.Int("products", len(b.Products)), zap.String("total", b.Total.String()))
	}
	s.Bills = append(s.Bills, b)
	return b, nil
}

func (s *Session) register(meta BillMeta) error {
	newStore, newPayment := s.References.Register(meta.Store, meta.Payment)
	if newStore {
		s.log().Info("new store", zap.String("store", meta.Store))
		if s.Refs != nil {
			if err := s.Refs.WriteStores(s.References); err != nil {
				return err
			}
		}
	}
	if newPayment {
		s.log().Info("new payment method", zap.String("payment", meta.Payment))
		if s.Refs != nil {
			if err := s.Refs.WritePayments(s.References); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *Session) writeKeys() error {
	if kw, ok := s.Products.(KeysWriter); ok {
		return kw.WriteKeys(s.Catalog.Keys())
	}
	return nil
}

// ImportBills merges the purchase records of bills into the histories of
// their products and returns how many products were touched.
//
// Bills read back from bill files carry localized names: they are restored
// to the product, store and payment names they were written from. A record
// already held in the form a bill file keeps it is not added again.
func (s *Session) ImportBills(bills []Bill) (int, error) {
	touched := make(map[string]bool)
	for _, b := range bills {
		for _, p := range s.restoreNames(b).Products {
			if p.Name == "" {
				continue
			}
			if saved, ok := s.Catalog.Get(p.Name); ok {
				p.History = s.unseen(saved.History, p.History)
			}
			if _, err := SaveProduct(s.Catalog, p, s.Products); err != nil {
				return len(touched), err
			}
			touched[p.Name] = true
		}
	}
	return len(touched), s.writeKeys()
}

func (s *Session) restoreNames(b Bill) Bill {
	b.Store = s.Format.restore(b.Store, s.References.StoreNames())
	b.Payment = s.Format.restore(b.Payment, s.References.Payments)
	names := s.Catalog.Names()
	products := make([]Product, len(b.Products))
	for i, p := range b.Products {
		p.Name = s.Format.restore(p.Name, names)
		p.History = slices.Clone(p.History)
		for j := range p.History {
			p.History[j].Store = b.Store
			p.History[j].Payment = b.Payment
		}
		products[i] = p
	}
	b.Products = products
	return b
}

// unseen returns the records of incoming that existing does not hold once
// both are written to a bill file.
func (s *Session) unseen(existing, incoming []PurchaseRecord) []PurchaseRecord {
	table := s.References.DiscountClasses
	var out []PurchaseRecord
	for _, r := range incoming {
		w := r.written(s.Format, table)
		if slices.ContainsFunc(existing, func(e PurchaseRecord) bool { return e.written(s.Format, table).Equal(w) }) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// Export writes bills to a new export file under Output and returns its path.
// Format is "csv" or "xlsx".
func (s *Session) Export(bills []Bill, format string) (string, error) {
	if len(bills) == 0 {
		return "", ErrNoBill
	}
	rows := ExportRows(bills, s.Format)
	switch format {
	case "", "csv":
		path := ExportPath(s.Output, bills, ".csv")
		if err := WriteBillFile(path, rows, s.Dialect); err != nil {
			return "", err
		}
		return path, nil
	case "xlsx":
		path := ExportPath(s.Output, bills, ".xlsx")
		if err := writeXLSXFile(path, rows); err != nil {
			return "", err
		}
		return path, nil
	default:
		return "", fmt.Errorf("unknown export format %q", format)
	}
}

func writeXLSXFile(path string, rows [][]string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return err
	}
	if err := WriteXLSX(f, rows); err != nil {
		f.Close()
		return fmt.Errorf("could not write %q: %w", path, err)
	}
	return f.Close()
}

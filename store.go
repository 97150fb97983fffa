package kassabuch

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"regexp"
	"strconv"

	"go.uber.org/zap"
	"golang.org/x/text/encoding"
)

// productFileFormat names the file of a product from its identifier.
const productFileFormat = "product_%05d.json"

var productFileName = regexp.MustCompile(`^product_(\d+)\.json$`)

// ProductFileName returns the file name of the product with identifier id.
func ProductFileName(id int) string { return fmt.Sprintf(productFileFormat, id) }

// productKey is the value of a product in the keys file.
func productKey(id int) string { return fmt.Sprintf("product_%05d", id) }

// FolderStore keeps one JSON file per product in a folder.
type FolderStore struct {
	Folder   string
	KeysFile string            // Name→Identifier index file, skipped when empty
	Encoding encoding.Encoding // nil is UTF-8
	Logger   *zap.Logger       // nil logs nothing
}

func (s *FolderStore) log() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}

// LoadCatalog reads every product file under the folder.
//
// The identifier of a product comes from its file name. Two files with the
// same name inside, or the same identifier in different sub folders, are an
// error.
func (s *FolderStore) LoadCatalog() (*Catalog, error) {
	c := NewCatalog()
	count := 0
	err := filepath.WalkDir(s.Folder, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		m := productFileName.FindStringSubmatch(d.Name())
		if m == nil {
			return nil
		}
		id, err := strconv.Atoi(m[1])
		if err != nil {
			return fmt.Errorf("invalid product file name %q: %w", path, err)
		}
		p, err := s.readProduct(path)
		if err != nil {
			return err
		}
		p.Identifier = id
		if err := c.Add(p); err != nil {
			return fmt.Errorf("could not load %q: %w", path, err)
		}
		count++
		if count%500 == 0 {
			s.log().Info("reading product files", zap.Int("count", count))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log().Debug("catalog loaded", zap.String("folder", s.Folder), zap.Int("products", count))
	return c, nil
}

func (s *FolderStore) readProduct(path string) (Product, error) {
	data, err := readText(path, s.Encoding)
	if err != nil {
		return Product{}, err
	}
	p, err := DecodeProduct(bytes.NewReader(data))
	if err != nil {
		return Product{}, fmt.Errorf("could not read %q: %w", path, err)
	}
	return p, nil
}

// ProductPath returns the path of the file of the product with identifier id.
func (s *FolderStore) ProductPath(id int) string {
	return filepath.Join(s.Folder, ProductFileName(id))
}

// ReadProductText returns the content of the product file of id, as UTF-8.
func (s *FolderStore) ReadProductText(id int) ([]byte, error) {
	return readText(s.ProductPath(id), s.Encoding)
}

// WriteProduct writes the file of p, replacing any previous one.
func (s *FolderStore) WriteProduct(p Product) error {
	if p.Identifier < 0 {
		return fmt.Errorf("product %q has no identifier", p.Name)
	}
	data, err := marshalProduct(p)
	if err != nil {
		return err
	}
	path := s.ProductPath(p.Identifier)
	if err := writeText(path, data, s.Encoding); err != nil {
		return fmt.Errorf("could not write %q: %w", path, err)
	}
	s.log().Debug("product saved", zap.String("name", p.Name), zap.String("file", path), zap.Int("history", len(p.History)))
	return nil
}

// WriteKeys writes the Name→Identifier index as {"name": "product_00042"}.
func (s *FolderStore) WriteKeys(keys map[string]int) error {
	if s.KeysFile == "" {
		return nil
	}
	named := make(map[string]string, len(keys))
	for name, id := range keys {
		named[name] = productKey(id)
	}
	data, err := json.MarshalIndent(named, "", "  ")
	if err != nil {
		return err
	}
	if err := writeText(s.KeysFile, append(data, '\n'), s.Encoding); err != nil {
		return fmt.Errorf("could not write keys file %q: %w", s.KeysFile, err)
	}
	return nil
}

// OpenCatalog loads the catalog, an absent folder is an empty catalog.
func (s *FolderStore) OpenCatalog() (*Catalog, error) {
	c, err := s.LoadCatalog()
	if errors.Is(err, fs.ErrNotExist) {
		s.log().Warn("product folder does not exist, starting with an empty catalog", zap.String("folder", s.Folder))
		return NewCatalog(), nil
	}
	return c, err
}

var _ ProductStore = (*FolderStore)(nil)

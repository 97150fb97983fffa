package kassabuch

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/text/encoding/unicode"
)

func TestEncodeProduct(t *testing.T) {
	p := NewProduct("Milk")
	p.PriceSingle = A(1.09)
	p.Quantity = Q(1)
	p.ProductClass = "1"

	var buf bytes.Buffer
	if err := EncodeProduct(&buf, p); err != nil {
		t.Fatalf("EncodeProduct() unexpected error: %v", err)
	}
	want := `{
  "name": "Milk",
  "default_price_per_unit": 1.09,
  "default_quantity": 1,
  "product_class": "1",
  "unknown": "",
  "display": true,
  "notes": "",
  "history": []
}
`
	if got := buf.String(); got != want {
		t.Errorf("EncodeProduct() =\n%s\nwant\n%s", got, want)
	}
}

func TestDecodeLegacyProduct(t *testing.T) {
	// older files hold numbers as text and have no display flag
	legacy := `{"name": "Flour", "default_price_per_unit": "0,79", "default_quantity": "", "product_class": 3,
	"unknown": "", "notes": "", "history": [{"date_time": "2020-05-01T09:00", "store": "Mill", "payment": "",
	"price_single": "0,79", "quantity": "", "price_quantity": 0.79, "discount_class": "", "quantity_discount": 0,
	"sale": 0, "discount": 0, "price_final": 0.79, "price_final_per_unit": 0.79}]}`
	p, err := DecodeProduct(strings.NewReader(legacy))
	if err != nil {
		t.Fatalf("DecodeProduct() unexpected error: %v", err)
	}
	if !p.PriceSingle.Equal(A(0.79)) || p.ProductClass != "3" || !p.Display {
		t.Errorf("DecodeProduct() = %+v", p)
	}
	if len(p.History) != 1 || !p.History[0].PriceSingle.Equal(A(0.79)) || !p.History[0].Quantity.IsBlank() {
		t.Errorf("History = %+v", p.History)
	}
}

func TestFolderStore(t *testing.T) {
	dir := t.TempDir()
	store := &FolderStore{
		Folder:   filepath.Join(dir, "products"),
		KeysFile: filepath.Join(dir, "product_keys.json"),
		Encoding: unicode.UTF16(unicode.LittleEndian, unicode.UseBOM),
	}
	c := NewCatalog()
	for _, p := range testBill().Products {
		if _, err := SaveProduct(c, p, store); err != nil {
			t.Fatalf("SaveProduct(%q) unexpected error: %v", p.Name, err)
		}
	}
	if err := store.WriteKeys(c.Keys()); err != nil {
		t.Fatal(err)
	}

	raw, err := os.ReadFile(filepath.Join(dir, "products", "product_00001.json"))
	if err != nil {
		t.Fatalf("product file not written: %v", err)
	}
	if !bytes.HasPrefix(raw, []byte{0xff, 0xfe}) {
		t.Errorf("product file should start with a UTF-16 byte order mark")
	}

	loaded, err := store.LoadCatalog()
	if err != nil {
		t.Fatalf("LoadCatalog() unexpected error: %v", err)
	}
	eggs, ok := loaded.Get("Eggs")
	if !ok {
		t.Fatalf("Eggs not loaded, names = %v", loaded.Names())
	}
	if eggs.Identifier != 1 || len(eggs.History) != 1 {
		t.Errorf("Eggs = id %d with %d records, want id 1 with 1 record", eggs.Identifier, len(eggs.History))
	}
	if !eggs.History[0].Equal(testBill().Products[1].History[0]) {
		t.Errorf("record = %+v, want %+v", eggs.History[0], testBill().Products[1].History[0])
	}

	text, err := readText(store.KeysFile, store.Encoding)
	if err != nil {
		t.Fatal(err)
	}
	var keys map[string]string
	if err := json.Unmarshal(text, &keys); err != nil {
		t.Fatalf("keys file: %v", err)
	}
	if keys["Milk"] != "product_00000" || keys["Eggs"] != "product_00001" {
		t.Errorf("keys = %v", keys)
	}
}

func TestLoadCatalogDuplicateName(t *testing.T) {
	dir := t.TempDir()
	store := &FolderStore{Folder: dir}
	for _, id := range []int{0, 1} {
		p := NewProduct("Milk")
		p.Identifier = id
		if err := store.WriteProduct(p); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := store.LoadCatalog(); !errors.Is(err, ErrDuplicateName) {
		t.Errorf("LoadCatalog() error = %v, want ErrDuplicateName", err)
	}
}

func TestOpenCatalogMissingFolder(t *testing.T) {
	store := &FolderStore{Folder: filepath.Join(t.TempDir(), "nowhere")}
	c, err := store.OpenCatalog()
	if err != nil {
		t.Fatalf("OpenCatalog() unexpected error: %v", err)
	}
	if c.Len() != 0 {
		t.Errorf("Len() = %d, want 0", c.Len())
	}
}

func TestTextEncoding(t *testing.T) {
	for _, name := range []string{"utf-8", "UTF_16", "cp1252", "iso-8859-15"} {
		if _, err := TextEncoding(name); err != nil {
			t.Errorf("TextEncoding(%q) unexpected error: %v", name, err)
		}
	}
	if _, err := TextEncoding("klingon"); err == nil {
		t.Errorf("TextEncoding(klingon) should fail")
	}
}

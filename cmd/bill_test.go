package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/etnz/kassabuch"
	"github.com/google/go-cmp/cmp"
	"github.com/google/subcommands"
)

const billInput = `Milk;1,00

Eggs;0,25;6;10
`

func TestBill(t *testing.T) {
	dir := newBook(t)

	out, status := run(t, &billCmd{}, billInput, "-store", "Corner Shop", "-payment", "Cash", "-date", "13-02", "-time", "12-34")
	if status != subcommands.ExitSuccess {
		t.Fatalf("bill exited with %v", status)
	}
	for _, want := range []string{"# Corner Shop", "2021-02-13 12:34, paid by Cash", "**€2.35**"} {
		if !strings.Contains(out, want) {
			t.Errorf("bill output does not contain %q:\n%s", want, out)
		}
	}

	backup := filepath.Join(dir, "output", kassabuch.BackupFolder, "2021-02-13T12-34_Corner_Shop.csv")
	if _, err := os.Stat(backup); err != nil {
		t.Errorf("backup not written: %v", err)
	}
	for _, file := range []string{"product_00000.json", "product_00001.json"} {
		if _, err := os.Stat(filepath.Join(dir, "products", file)); err != nil {
			t.Errorf("%s not written: %v", file, err)
		}
	}

	// the store is known now, its payment is the default
	out, status = run(t, &storesCmd{}, "", "corner")
	if status != subcommands.ExitSuccess || out != "* Corner Shop\t\t\n" {
		t.Errorf("stores = %v %q", status, out)
	}
	out, _ = run(t, &paymentsCmd{}, "")
	if out != "Cash\n" {
		t.Errorf("payments = %q, want Cash", out)
	}
}

func TestBillFromTemplates(t *testing.T) {
	newBook(t)
	if _, status := run(t, &templateCmd{}, "", "-name", "Butter 250g", "-price", "2,19", "-class", "2"); status != subcommands.ExitSuccess {
		t.Fatalf("template exited with %v", status)
	}

	// only the name is typed, the rest comes from the template
	out, status := run(t, &billCmd{}, "butter\n", "-store", "Bakery", "-date", "2021-03-01")
	if status != subcommands.ExitSuccess {
		t.Fatalf("bill exited with %v", status)
	}
	if !strings.Contains(out, "| Butter 250g | €2.19 | 1 |  | 2 |") {
		t.Errorf("bill output:\n%s", out)
	}
}

func TestBillErrors(t *testing.T) {
	newBook(t)
	if _, status := run(t, &billCmd{}, billInput); status != subcommands.ExitUsageError {
		t.Errorf("bill without store = %v, want usage error", status)
	}
	if _, status := run(t, &billCmd{}, "\n;;\n", "-store", "Bakery"); status != subcommands.ExitUsageError {
		t.Errorf("empty bill = %v, want usage error", status)
	}
	if _, status := run(t, &billCmd{}, "a;1;2;3;4;5;6;7;x;9\n", "-store", "Bakery"); status != subcommands.ExitFailure {
		t.Errorf("too many fields = %v, want failure", status)
	}
}

func TestReadLines(t *testing.T) {
	got, err := readLines(strings.NewReader("Milk ;1,00\n\nEggs;0,25;6;A;-0,10;;3;x\n"))
	if err != nil {
		t.Fatalf("readLines() unexpected error: %v", err)
	}
	want := []kassabuch.RawLine{
		{Name: "Milk", PriceSingle: "1,00"},
		{Name: "Eggs", PriceSingle: "0,25", Quantity: "6", DiscountClass: "A", QuantityDiscount: "-0,10", ProductClass: "3", Unknown: "x"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("readLines() mismatch (-want +got):\n%s", diff)
	}

	got, err = readLines(strings.NewReader("Cheese;4,00;1;10;-1,00;-1,00;;;x\nHam;2,00;;;;;;;0\n"))
	if err != nil {
		t.Fatalf("readLines() unexpected error: %v", err)
	}
	if !got[0].MinusFirst || got[1].MinusFirst {
		t.Errorf("MinusFirst = %v, %v, want true, false", got[0].MinusFirst, got[1].MinusFirst)
	}
	if _, err := readLines(strings.NewReader("Ham;2,00;;;;;;;maybe\n")); err == nil {
		t.Errorf("readLines() with an invalid minus first, want an error")
	}
}

func TestBillMinusFirst(t *testing.T) {
	newBook(t)
	// 4,00 - 1,00 - 1,00 = 2,00, then 10% off: 1,80
	out, status := run(t, &billCmd{}, "Cheese;4,00;1;10;-1,00;-1,00;;;x\n", "-store", "Deli", "-date", "2021-03-01")
	if status != subcommands.ExitSuccess {
		t.Fatalf("bill exited with %v", status)
	}
	if !strings.Contains(out, "| **Total** | **€1.80** |") {
		t.Errorf("bill output:\n%s", out)
	}
}

func TestBillMeta(t *testing.T) {
	refs := kassabuch.NewReferences()
	refs.Stores["Bakery"] = kassabuch.Store{DefaultPayment: "Cash"}
	refs.Stores["Big Market"] = kassabuch.Store{DefaultPayment: "Card"}
	refs.Stores["Market"] = kassabuch.Store{DefaultPayment: "Voucher"}
	refs.Payments = []string{"Card", "Cash", "Voucher"}

	testCases := []struct {
		store, payment string
		want           kassabuch.BillMeta
		wantErr        bool
	}{
		{store: "bak", want: kassabuch.BillMeta{Store: "Bakery", Payment: "Cash"}},
		{store: "market", payment: "vou", want: kassabuch.BillMeta{Store: "Market", Payment: "Voucher"}},
		{store: "mark", wantErr: true},
		{store: "Deli", payment: "ca", want: kassabuch.BillMeta{Store: "Deli", Payment: "ca"}},
		{store: "Deli", payment: "cash", want: kassabuch.BillMeta{Store: "Deli", Payment: "Cash"}},
	}
	for _, tc := range testCases {
		c := &billCmd{date: "13-2", time: "9:5", store: tc.store, payment: tc.payment}
		got, err := c.meta(refs, 2021)
		if (err != nil) != tc.wantErr {
			t.Errorf("meta(%q) error = %v, wantErr %v", tc.store, err, tc.wantErr)
			continue
		}
		if tc.wantErr {
			continue
		}
		tc.want.Date, tc.want.Time = "2021-02-13", "09:05"
		if got != tc.want {
			t.Errorf("meta(%q, %q) = %+v, want %+v", tc.store, tc.payment, got, tc.want)
		}
	}
}

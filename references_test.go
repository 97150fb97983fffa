package kassabuch

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func testReferences() *References {
	r := NewReferences()
	r.Stores["Bakery"] = Store{DefaultPayment: "Cash", DefaultDiscountClass: "B"}
	r.Stores["Big Market"] = Store{DefaultPayment: "Card"}
	r.Stores["Market"] = Store{DefaultPayment: "Voucher"}
	r.Payments = []string{"Card", "Cash", "Voucher"}
	return r
}

func TestMatchStores(t *testing.T) {
	r := testReferences()
	testCases := []struct {
		query      string
		candidates []string
		store      string
		payment    string
	}{
		{"bak", []string{"Bakery"}, "Bakery", "Cash"},
		{"market", []string{"Big Market", "Market"}, "Market", "Voucher"},
		{"mark", []string{"Big Market", "Market"}, "", ""},
		{"zoo", nil, "", ""},
	}
	for _, tc := range testCases {
		m := r.MatchStores(tc.query)
		if diff := cmp.Diff(tc.candidates, m.Candidates); diff != "" {
			t.Errorf("MatchStores(%q) candidates mismatch (-want +got):\n%s", tc.query, diff)
		}
		if m.Store != tc.store || m.Payment != tc.payment {
			t.Errorf("MatchStores(%q) = %q, %q, want %q, %q", tc.query, m.Store, m.Payment, tc.store, tc.payment)
		}
	}
}

func TestMatchPayments(t *testing.T) {
	if diff := cmp.Diff([]string{"Card", "Cash"}, testReferences().MatchPayments("ca")); diff != "" {
		t.Errorf("MatchPayments() mismatch (-want +got):\n%s", diff)
	}
}

func TestDefaultDiscountClass(t *testing.T) {
	r := testReferences()
	if got := r.DefaultDiscountClass("Bakery"); got != "B" {
		t.Errorf("DefaultDiscountClass(Bakery) = %q, want B", got)
	}
	if got := r.DefaultDiscountClass("Nowhere"); got != "" {
		t.Errorf("DefaultDiscountClass(Nowhere) = %q, want empty", got)
	}
}

func TestRegister(t *testing.T) {
	r := testReferences()
	if s, p := r.Register("Bakery", "Cash"); s || p {
		t.Errorf("Register(known) = %v, %v, want false, false", s, p)
	}
	if s, p := r.Register("Deli", "Apple Pay"); !s || !p {
		t.Errorf("Register(new) = %v, %v, want true, true", s, p)
	}
	if diff := cmp.Diff([]string{"Apple Pay", "Card", "Cash", "Voucher"}, r.Payments); diff != "" {
		t.Errorf("Payments mismatch (-want +got):\n%s", diff)
	}
	if s, p := r.Register("", ""); s || p {
		t.Errorf("Register(empty) = %v, %v, want false, false", s, p)
	}
}

func TestReferenceFiles(t *testing.T) {
	dir := t.TempDir()
	files := ReferenceFiles{
		Stores:          filepath.Join(dir, "stores.json"),
		Payments:        filepath.Join(dir, "payments.json"),
		DiscountClasses: filepath.Join(dir, "discount_classes.json"),
	}
	discounts := `{"A": {"discount": 10, "description": "coupon", "store": "Bakery"}, "B": {"discount": "25", "description": "", "store": ""}}`
	if err := os.WriteFile(files.DiscountClasses, []byte(discounts), 0644); err != nil {
		t.Fatal(err)
	}
	r := testReferences()
	if err := files.WriteStores(r); err != nil {
		t.Fatal(err)
	}
	if err := files.WritePayments(r); err != nil {
		t.Fatal(err)
	}

	got, err := files.Load()
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	if diff := cmp.Diff(r.Stores, got.Stores); diff != "" {
		t.Errorf("Stores mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(r.Payments, got.Payments); diff != "" {
		t.Errorf("Payments mismatch (-want +got):\n%s", diff)
	}
	if got.DiscountClasses["B"].Discount.String() != "25" || got.DiscountClasses["A"].Store != "Bakery" {
		t.Errorf("DiscountClasses = %+v", got.DiscountClasses)
	}
}

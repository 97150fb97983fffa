package kassabuch

import "testing"

func record(dateTime string, price float64) PurchaseRecord {
	return PurchaseRecord{DateTime: dateTime, Store: "Corner Shop", PriceSingle: A(price), PriceFinal: A(price), PriceFinalPerUnit: A(price)}
}

func dates(records []PurchaseRecord) []string {
	var ds []string
	for _, r := range records {
		ds = append(ds, r.DateTime)
	}
	return ds
}

func TestMergeHistory(t *testing.T) {
	r1 := record("2021-02-01T10:00", 1)
	r2 := record("2021-02-02T10:00", 2)
	r3 := record("2021-02-03T10:00", 3)

	testCases := []struct {
		name     string
		existing []PurchaseRecord
		incoming []PurchaseRecord
		want     []string
	}{
		{"append new", []PurchaseRecord{r1, r2}, []PurchaseRecord{r2, r3}, []string{r1.DateTime, r2.DateTime, r3.DateTime}},
		{"nothing new", []PurchaseRecord{r1}, []PurchaseRecord{r1}, []string{r1.DateTime}},
		{"duplicates in existing are dropped", []PurchaseRecord{r2, r1, r2}, nil, []string{r2.DateTime, r1.DateTime}},
		{"duplicates in incoming are dropped", nil, []PurchaseRecord{r3, r3}, []string{r3.DateTime}},
		{"empty", nil, nil, nil},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := dates(MergeHistory(tc.existing, tc.incoming))
			if len(got) != len(tc.want) {
				t.Fatalf("MergeHistory() = %v, want %v", got, tc.want)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Errorf("MergeHistory()[%d] = %q, want %q", i, got[i], tc.want[i])
				}
			}
		})
	}
}

func TestMergeHistoryIdempotent(t *testing.T) {
	h := []PurchaseRecord{record("a", 1)}
	in := []PurchaseRecord{record("b", 2), record("a", 1)}
	once := MergeHistory(h, in)
	twice := MergeHistory(once, in)
	if len(once) != 2 || len(twice) != 2 {
		t.Errorf("len(once), len(twice) = %d, %d, want 2, 2", len(once), len(twice))
	}
}

func TestPurchaseRecordEqual(t *testing.T) {
	a := record("2021-02-01T10:00", 1.5)
	b := a
	b.PriceSingle = A(1.50) // same value, other representation
	if !a.Equal(b) {
		t.Errorf("records with equal values should be equal")
	}
	b.Quantity = Q(1)
	if a.Equal(b) {
		t.Errorf("a blank quantity is not a quantity of 1")
	}
}

package kassabuch

import (
	"errors"
	"math"
	"testing"
)

const priceFile = `{
  "name": "Butter",
  "history": [
    {"date_time": "2021-03-01T10:00", "store": "B", "price_final_per_unit": 2.4},
    {"date_time": "2021-01-01T10:00", "store": "A", "price_final_per_unit": 2.0},
    {"date_time": "2021-02-01T10:00", "store": "A", "price_final_per_unit": "2,10"}
  ]
}`

func TestPriceSeries(t *testing.T) {
	points, err := PriceSeries([]byte(priceFile))
	if err != nil {
		t.Fatalf("PriceSeries() unexpected error: %v", err)
	}
	if len(points) != 3 {
		t.Fatalf("len(points) = %d, want 3", len(points))
	}
	wantDates := []string{"2021-01-01T10:00", "2021-02-01T10:00", "2021-03-01T10:00"}
	for i, p := range points {
		if p.DateTime != wantDates[i] {
			t.Errorf("points[%d].DateTime = %q, want %q", i, p.DateTime, wantDates[i])
		}
	}
	if !points[1].PerUnit.Equal(A(2.1)) {
		t.Errorf("points[1].PerUnit = %v, want 2.1", points[1].PerUnit)
	}

	s, err := SummarizePrices(points)
	if err != nil {
		t.Fatalf("SummarizePrices() unexpected error: %v", err)
	}
	if s.Count != 3 || s.Min != 2.0 || s.Max != 2.4 || s.Median != 2.1 {
		t.Errorf("SummarizePrices() = %+v", s)
	}
	if math.Abs(s.Mean-2.1666) > 0.001 {
		t.Errorf("Mean = %v, want 2.1666", s.Mean)
	}
	if !s.Change.Equal(20) {
		t.Errorf("Change = %v, want 20%%", s.Change)
	}
}

func TestSummarizePricesEmpty(t *testing.T) {
	points, err := PriceSeries([]byte(`{"name": "New", "history": []}`))
	if err != nil {
		t.Fatalf("PriceSeries() unexpected error: %v", err)
	}
	if _, err := SummarizePrices(points); !errors.Is(err, ErrNoPrice) {
		t.Errorf("SummarizePrices() error = %v, want ErrNoPrice", err)
	}
}

func TestPercentSignedString(t *testing.T) {
	if got := Percent(0).SignedString(); got != "-" {
		t.Errorf("Percent(0).SignedString() = %q, want -", got)
	}
	if got := Percent(12.5).SignedString(); got != "+12.50%" {
		t.Errorf("Percent(12.5).SignedString() = %q", got)
	}
}

package kassabuch

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/PaesslerAG/jsonpath"
	"github.com/montanaflynn/stats"
)

// PricePoint is the unit price paid for a product on one purchase.
type PricePoint struct {
	DateTime string
	Store    string
	PerUnit  Amount
}

// ErrNoPrice is returned when summarizing an empty price series.
var ErrNoPrice = errors.New("no price recorded")

// PriceSeries extracts the unit prices from the history of a product file,
// ordered by date.
func PriceSeries(productFile []byte) ([]PricePoint, error) {
	var doc any
	if err := json.Unmarshal(productFile, &doc); err != nil {
		return nil, fmt.Errorf("invalid product file: %w", err)
	}
	dates, err := column("$.history[*].date_time", doc)
	if err != nil {
		return nil, err
	}
	stores, err := column("$.history[*].store", doc)
	if err != nil {
		return nil, err
	}
	prices, err := column("$.history[*].price_final_per_unit", doc)
	if err != nil {
		return nil, err
	}
	if len(dates) != len(prices) || len(stores) != len(prices) {
		return nil, fmt.Errorf("incomplete history: %d dates, %d stores, %d prices", len(dates), len(stores), len(prices))
	}

	points := make([]PricePoint, len(prices))
	for i := range prices {
		points[i] = PricePoint{
			DateTime: stringOf(dates[i]),
			Store:    stringOf(stores[i]),
			PerUnit:  ParseAmount(stringOf(prices[i])),
		}
	}
	sort.SliceStable(points, func(i, j int) bool { return points[i].DateTime < points[j].DateTime })
	return points, nil
}

// column evaluates a json path expected to return a list.
func column(path string, doc any) ([]any, error) {
	v, err := jsonpath.Get(path, doc)
	if err != nil {
		return nil, fmt.Errorf("could not read %s: %w", path, err)
	}
	if v == nil {
		return nil, nil
	}
	values, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("%s is not a list", path)
	}
	return values, nil
}

// PriceSummary describes a price series.
type PriceSummary struct {
	Count  int
	Min    float64
	Max    float64
	Mean   float64
	Median float64
	First  PricePoint
	Last   PricePoint
	Change Percent // from the first to the last price
}

// SummarizePrices computes the statistics of points, which must be ordered.
func SummarizePrices(points []PricePoint) (PriceSummary, error) {
	if len(points) == 0 {
		return PriceSummary{}, ErrNoPrice
	}
	data := make(stats.Float64Data, len(points))
	for i, p := range points {
		data[i] = p.PerUnit.InexactFloat64()
	}
	s := PriceSummary{Count: len(points), First: points[0], Last: points[len(points)-1]}
	var err error
	if s.Min, err = data.Min(); err != nil {
		return s, err
	}
	if s.Max, err = data.Max(); err != nil {
		return s, err
	}
	if s.Mean, err = data.Mean(); err != nil {
		return s, err
	}
	if s.Median, err = data.Median(); err != nil {
		return s, err
	}
	if first := s.First.PerUnit.InexactFloat64(); first != 0 {
		s.Change = Percent((s.Last.PerUnit.InexactFloat64() - first) / first * 100)
	}
	return s, nil
}

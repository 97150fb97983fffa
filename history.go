package kassabuch

import "slices"

// MergeHistory appends to existing the records of incoming it does not hold yet.
//
// Order is preserved, duplicates already present in existing are dropped,
// and merging the same records twice changes nothing.
func MergeHistory(existing, incoming []PurchaseRecord) []PurchaseRecord {
	merged := make([]PurchaseRecord, 0, len(existing)+len(incoming))
	for _, records := range [][]PurchaseRecord{existing, incoming} {
		for _, r := range records {
			if slices.ContainsFunc(merged, r.Equal) {
				continue
			}
			merged = append(merged, r)
		}
	}
	return merged
}

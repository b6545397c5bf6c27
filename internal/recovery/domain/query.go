package domain

import "strings"

// QueryOptions narrows and windows an enriched bill list. Zero-value fields
// are treated as "not set"; a non-positive limit returns everything past the
// offset.
type QueryOptions struct {
	PayerType string
	Status    BillStatus
	Search    string
	Limit     int
	Offset    int
}

// QueryResult carries one page of bills plus the post-filter total, which
// callers need for page-of-N displays.
type QueryResult struct {
	Data  []EnrichedBill `json:"data"`
	Count int            `json:"count"`
}

// Query applies the provided filters as a conjunction, then slices the
// offset/limit window. Count reflects the filtered set before pagination.
func Query(enriched []EnrichedBill, opts QueryOptions) QueryResult {
	search := strings.ToLower(strings.TrimSpace(opts.Search))

	filtered := make([]EnrichedBill, 0, len(enriched))
	for _, e := range enriched {
		if opts.PayerType != "" && e.PayerType != opts.PayerType {
			continue
		}
		if opts.Status != "" && e.Status != opts.Status {
			continue
		}
		if search != "" && !matchesSearch(e, search) {
			continue
		}
		filtered = append(filtered, e)
	}

	count := len(filtered)
	offset := opts.Offset
	if offset < 0 {
		offset = 0
	}
	if offset >= count {
		return QueryResult{Data: []EnrichedBill{}, Count: count}
	}

	end := count
	if opts.Limit > 0 && offset+opts.Limit < end {
		end = offset + opts.Limit
	}
	return QueryResult{Data: filtered[offset:end], Count: count}
}

func matchesSearch(e EnrichedBill, search string) bool {
	return strings.Contains(strings.ToLower(e.PatientName), search) ||
		strings.Contains(strings.ToLower(e.VisitID), search) ||
		strings.Contains(strings.ToLower(e.PayerType), search)
}

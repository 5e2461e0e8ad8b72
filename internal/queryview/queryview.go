// Package queryview implements the search/filter/sort/pagination projection
// the console applies over a section's resolved items. It operates on an
// in-memory snapshot and returns row indexes, so callers can reorder their
// concrete item slices without copying them.
package queryview

import (
	"sort"
	"strconv"
	"strings"

	"bizconsole_backend/internal/models"
)

// Row is the projection's view of one item: its identifier strings
// (productID, orderID, billingID) and its field values keyed by field id.
type Row struct {
	Identifiers []string
	Values      map[string]models.Value
}

// Filter is one conjunctive condition, typed per the field's declared type:
// exact match for select/checkbox/number, substring for text.
type Filter struct {
	FieldID string           `json:"fieldId"`
	Type    models.FieldType `json:"type"`
	Value   string           `json:"value"`
}

// Params drives one projection pass. PageSize <= 0 means "all".
type Params struct {
	Search   string
	Filters  []Filter
	SortField string
	SortDesc bool
	Page     int
	PageSize int
}

// Meta describes the projected result set.
type Meta struct {
	Total     int `json:"total"`
	Page      int `json:"page"`
	PageSize  int `json:"pageSize"`
	PageCount int `json:"pageCount"`
}

// Apply runs search, filters, sort and pagination over rows and returns the
// indexes of the selected rows in display order.
func Apply(rows []Row, p Params) ([]int, Meta) {
	selected := make([]int, 0, len(rows))
	for i := range rows {
		if matches(rows[i], p) {
			selected = append(selected, i)
		}
	}

	if p.SortField != "" {
		// Stable keeps the incoming newest-first order for ties.
		sort.SliceStable(selected, func(a, b int) bool {
			av := numericValue(rows[selected[a]], p.SortField)
			bv := numericValue(rows[selected[b]], p.SortField)
			if p.SortDesc {
				return av > bv
			}
			return av < bv
		})
	}

	total := len(selected)
	meta := Meta{Total: total, Page: 1, PageSize: p.PageSize, PageCount: 1}
	if p.PageSize <= 0 {
		meta.PageSize = total
		return selected, meta
	}

	meta.PageCount = (total + p.PageSize - 1) / p.PageSize
	if meta.PageCount == 0 {
		meta.PageCount = 1
	}
	page := p.Page
	if page < 1 {
		page = 1
	}
	if page > meta.PageCount {
		page = meta.PageCount
	}
	meta.Page = page

	start := (page - 1) * p.PageSize
	end := start + p.PageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}
	return selected[start:end], meta
}

func matches(row Row, p Params) bool {
	if p.Search != "" && !matchesSearch(row, p.Search) {
		return false
	}
	for _, f := range p.Filters {
		if !matchesFilter(row, f) {
			return false
		}
	}
	return true
}

func matchesSearch(row Row, search string) bool {
	needle := strings.ToLower(search)
	for _, id := range row.Identifiers {
		if strings.Contains(strings.ToLower(id), needle) {
			return true
		}
	}
	for _, v := range row.Values {
		if strings.Contains(strings.ToLower(v.String()), needle) {
			return true
		}
	}
	return false
}

func matchesFilter(row Row, f Filter) bool {
	v, ok := row.Values[f.FieldID]
	if !ok {
		v = models.Value{Kind: models.ValueKindNull}
	}

	switch f.Type {
	case models.FieldTypeNumber:
		want, err := strconv.ParseFloat(f.Value, 64)
		if err != nil {
			return false
		}
		// Missing or non-numeric values count as zero, keeping the row
		// comparable instead of dropping it.
		return coerceNumber(v) == want
	case models.FieldTypeCheckbox:
		want := f.Value == "true"
		if v.Kind == models.ValueKindBoolean {
			return v.Bool == want
		}
		return !want
	case models.FieldTypeSelect:
		if v.Kind == models.ValueKindList {
			for _, s := range v.List {
				if s == f.Value {
					return true
				}
			}
			return false
		}
		return v.String() == f.Value
	default:
		return strings.Contains(strings.ToLower(v.String()), strings.ToLower(f.Value))
	}
}

func numericValue(row Row, fieldID string) float64 {
	v, ok := row.Values[fieldID]
	if !ok {
		return 0
	}
	return coerceNumber(v)
}

func coerceNumber(v models.Value) float64 {
	switch v.Kind {
	case models.ValueKindNumber:
		return v.Number
	case models.ValueKindText:
		if n, err := strconv.ParseFloat(strings.TrimSpace(v.Text), 64); err == nil {
			return n
		}
		return 0
	case models.ValueKindBoolean:
		if v.Bool {
			return 1
		}
		return 0
	default:
		return 0
	}
}

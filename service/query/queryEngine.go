// Package query filters and orders in-memory listing collections. All
// functions are pure: inputs are never mutated, new slices come out.
package query

import (
	"sort"
	"strings"

	"github.com/samber/lo"

	"bookshare/model"
)

// Sort keys. Anything else falls back to SortNewest.
const (
	SortNewest    = "newest"
	SortPriceLow  = "price-low"
	SortPriceHigh = "price-high"
	SortRating    = "rating"
)

// Facets are the active filter dimensions. Zero values mean "pass":
// empty strings disable their facet, PriceMax <= 0 leaves the upper
// price bound open.
type Facets struct {
	Subject   string
	Condition string
	PriceMin  float64
	PriceMax  float64
	Location  string
}

// Filter keeps books matching the search text and every active facet.
func Filter(books []model.Book, search string, f Facets) []model.Book {
	q := strings.ToLower(strings.TrimSpace(search))
	return lo.Filter(books, func(b model.Book, _ int) bool {
		return matches(b, q, f)
	})
}

func matches(b model.Book, q string, f Facets) bool {
	if q != "" &&
		!strings.Contains(strings.ToLower(b.Title), q) &&
		!strings.Contains(strings.ToLower(b.Author), q) &&
		!strings.Contains(strings.ToLower(b.Subject), q) {
		return false
	}
	if f.Subject != "" && b.Subject != f.Subject {
		return false
	}
	if f.Condition != "" && string(b.Condition) != f.Condition {
		return false
	}
	if b.PricePerDay < f.PriceMin {
		return false
	}
	if f.PriceMax > 0 && b.PricePerDay > f.PriceMax {
		return false
	}
	if f.Location != "" &&
		!strings.Contains(strings.ToLower(b.Location), strings.ToLower(f.Location)) {
		return false
	}
	return true
}

// Sort orders a copy of books by key. The sort is stable: equal keys keep
// their relative input order.
func Sort(books []model.Book, key string) []model.Book {
	out := append([]model.Book(nil), books...)
	switch key {
	case SortPriceLow:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].PricePerDay < out[j].PricePerDay
		})
	case SortPriceHigh:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].PricePerDay > out[j].PricePerDay
		})
	case SortRating:
		sort.SliceStable(out, func(i, j int) bool {
			return ownerRating(out[i]) > ownerRating(out[j])
		})
	default: // SortNewest
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		})
	}
	return out
}

func ownerRating(b model.Book) float64 {
	if b.Owner == nil {
		return 0
	}
	return b.Owner.Rating
}

// Subjects enumerates the distinct non-empty subject values present in
// the collection, in first-seen order.
func Subjects(books []model.Book) []string {
	return lo.Uniq(lo.FilterMap(books, func(b model.Book, _ int) (string, bool) {
		return b.Subject, b.Subject != ""
	}))
}

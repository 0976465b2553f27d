package query_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"bookshare/model"
	"bookshare/service/query"
)

func fixture() []model.Book {
	t1 := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	t2 := t1.Add(24 * time.Hour)
	t3 := t2.Add(24 * time.Hour)
	return []model.Book{
		{
			ID: "b1", Title: "Algorithms", Author: "Cormen", Subject: "Computer Science",
			Condition: model.ConditionGood, PricePerDay: 5, Location: "North Campus",
			CreatedAt: t1, Owner: &model.User{Rating: 4.5},
		},
		{
			ID: "b2", Title: "Calculus", Author: "Stewart", Subject: "Mathematics",
			Condition: model.ConditionLikeNew, PricePerDay: 3, Location: "South Campus",
			CreatedAt: t2, Owner: &model.User{Rating: 3.0},
		},
		{
			ID: "b3", Title: "Linear Algebra", Author: "Strang", Subject: "Mathematics",
			Condition: model.ConditionFair, PricePerDay: 4, Location: "north campus",
			CreatedAt: t3, // no owner
		},
	}
}

func ids(books []model.Book) []string {
	out := make([]string, len(books))
	for i, b := range books {
		out[i] = b.ID
	}
	return out
}

func TestFilter_EmptyQueryMatchesAll(t *testing.T) {
	books := fixture()
	got := query.Filter(books, "", query.Facets{})
	require.Equal(t, ids(books), ids(got))
}

func TestFilter_SearchText(t *testing.T) {
	books := fixture()

	require.Equal(t, []string{"b2"}, ids(query.Filter(books, "alc", query.Facets{})))
	// matches author too
	require.Equal(t, []string{"b1"}, ids(query.Filter(books, "CORMEN", query.Facets{})))
	// matches subject
	require.Equal(t, []string{"b2", "b3"}, ids(query.Filter(books, "mathem", query.Facets{})))
	require.Empty(t, ids(query.Filter(books, "no such book", query.Facets{})))
}

func TestFilter_Facets(t *testing.T) {
	books := fixture()

	require.Equal(t, []string{"b2", "b3"},
		ids(query.Filter(books, "", query.Facets{Subject: "Mathematics"})))
	require.Equal(t, []string{"b2"},
		ids(query.Filter(books, "", query.Facets{Condition: "like_new"})))
	require.Equal(t, []string{"b2", "b3"},
		ids(query.Filter(books, "", query.Facets{PriceMax: 4})))
	require.Equal(t, []string{"b1", "b3"},
		ids(query.Filter(books, "", query.Facets{PriceMin: 4})))
	// location match is case-insensitive substring
	require.Equal(t, []string{"b1", "b3"},
		ids(query.Filter(books, "", query.Facets{Location: "NORTH"})))
	// all predicates AND together
	require.Equal(t, []string{"b3"},
		ids(query.Filter(books, "algebra", query.Facets{Subject: "Mathematics", PriceMax: 4})))
}

func TestFilter_Idempotent(t *testing.T) {
	books := fixture()
	f := query.Facets{Subject: "Mathematics", PriceMax: 4}
	once := query.Filter(books, "a", f)
	twice := query.Filter(once, "a", f)
	require.Equal(t, once, twice)
}

func TestFilter_DoesNotMutateInput(t *testing.T) {
	books := fixture()
	want := ids(books)
	_ = query.Filter(books, "calculus", query.Facets{})
	require.Equal(t, want, ids(books))
}

func TestSort_Newest_DefaultAndFallback(t *testing.T) {
	books := fixture()
	require.Equal(t, []string{"b3", "b2", "b1"}, ids(query.Sort(books, query.SortNewest)))
	// unrecognized keys fall back to newest
	require.Equal(t, []string{"b3", "b2", "b1"}, ids(query.Sort(books, "bogus")))
}

func TestSort_PriceLowIsReverseOfPriceHigh(t *testing.T) {
	books := fixture() // prices 5, 3, 4 — no ties
	low := ids(query.Sort(books, query.SortPriceLow))
	high := ids(query.Sort(books, query.SortPriceHigh))
	require.Equal(t, []string{"b2", "b3", "b1"}, low)
	for i := range low {
		require.Equal(t, low[i], high[len(high)-1-i])
	}
}

func TestSort_RatingMissingOwnerIsZero(t *testing.T) {
	books := fixture()
	require.Equal(t, []string{"b1", "b2", "b3"}, ids(query.Sort(books, query.SortRating)))
}

func TestSort_Stable(t *testing.T) {
	t0 := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	books := []model.Book{
		{ID: "x", PricePerDay: 2, CreatedAt: t0},
		{ID: "y", PricePerDay: 2, CreatedAt: t0},
		{ID: "z", PricePerDay: 1, CreatedAt: t0},
	}
	got := query.Sort(books, query.SortPriceLow)
	// x and y tie on price and keep their relative order
	require.Equal(t, []string{"z", "x", "y"}, ids(got))
}

func TestSort_DoesNotMutateInput(t *testing.T) {
	books := fixture()
	want := ids(books)
	_ = query.Sort(books, query.SortPriceHigh)
	require.Equal(t, want, ids(books))
}

func TestSubjects(t *testing.T) {
	books := fixture()
	books = append(books, model.Book{ID: "b4"}) // empty subject dropped
	require.Equal(t, []string{"Computer Science", "Mathematics"}, query.Subjects(books))
}

func TestEndToEnd_FilterThenSort(t *testing.T) {
	t1 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Hour)
	books := []model.Book{
		{ID: "1", Title: "Algo", PricePerDay: 5, CreatedAt: t1},
		{ID: "2", Title: "Calc", PricePerDay: 3, CreatedAt: t2},
	}
	got := query.Sort(query.Filter(books, "", query.Facets{}), query.SortPriceLow)
	require.Equal(t, []string{"2", "1"}, ids(got))
}

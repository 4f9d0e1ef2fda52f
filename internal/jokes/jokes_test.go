package jokes

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/norris/internal/icndb"
)

// memorySet is a minimal FavoriteSet keyed by content.
type memorySet struct {
	entries []Favorite
	saveErr error
}

func (s *memorySet) IsFavorite(text string) bool {
	key := ContentKey(text)
	for _, e := range s.entries {
		if ContentKey(e.Text) == key {
			return true
		}
	}
	return false
}

func (s *memorySet) Add(entry Favorite) error {
	if ContentKey(entry.Text) == "" {
		return ErrBlankJoke
	}
	if !s.IsFavorite(entry.Text) {
		s.entries = append(s.entries, entry)
	}
	return s.saveErr
}

func (s *memorySet) RemoveContent(text string) error {
	key := ContentKey(text)
	kept := s.entries[:0]
	for _, e := range s.entries {
		if ContentKey(e.Text) != key {
			kept = append(kept, e)
		}
	}
	s.entries = kept
	return s.saveErr
}

func TestContentKey(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		same bool
	}{
		{name: "identical", a: "Chuck Norris counted to infinity.", b: "Chuck Norris counted to infinity.", same: true},
		{name: "whitespace", a: "  Chuck   Norris\ncounted ", b: "Chuck Norris counted", same: true},
		{name: "entities", a: "Chuck &quot;the man&quot; Norris", b: `Chuck "the man" Norris`, same: true},
		{name: "markup", a: "Chuck<br/>Norris <b>wins</b>", b: "Chuck Norris wins", same: true},
		{name: "case matters", a: "chuck norris", b: "Chuck Norris", same: false},
		{name: "different text", a: "one", b: "two", same: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.same, SameContent(tt.a, tt.b), "keys %q and %q", ContentKey(tt.a), ContentKey(tt.b))
		})
	}
}

func TestContentKey_PlainTextWithAngleBracket(t *testing.T) {
	assert.Equal(t, "1 < 2 and 3 > 2", ContentKey("1 <  2 and 3 > 2"))
}

func TestReconcile_UsesContentNotID(t *testing.T) {
	set := &memorySet{entries: []Favorite{{ID: 10, Text: "A"}}}
	raw := []icndb.Joke{
		{ID: 99, Joke: "A", Categories: []string{"nerdy"}},
		{ID: 10, Joke: "B"},
	}

	list := Reconcile(raw, set)

	require.Len(t, list, 2)
	assert.True(t, list[0].Favorite, "content match with a new id is a favorite")
	assert.False(t, list[1].Favorite, "id match with other content is not a favorite")
	assert.Equal(t, []string{"nerdy"}, list[0].Categories)

	raw[0].Categories[0] = "changed"
	assert.Equal(t, "nerdy", list[0].Categories[0], "categories are copied")
}

func TestReconcile_NilRegistry(t *testing.T) {
	list := Reconcile([]icndb.Joke{{ID: 1, Joke: "x"}}, nil)
	require.Len(t, list, 1)
	assert.False(t, list[0].Favorite)
}

func TestToggle_AddThenRemove(t *testing.T) {
	set := &memorySet{}
	list := []Joke{{ID: 1, Text: "A"}, {ID: 2, Text: "B"}}

	next, err := Toggle(list, 0, set)
	require.NoError(t, err)
	assert.True(t, next[0].Favorite)
	assert.False(t, list[0].Favorite, "input list is not modified")
	assert.True(t, set.IsFavorite("A"))

	again, err := Toggle(next, 0, set)
	require.NoError(t, err)
	assert.False(t, again[0].Favorite)
	assert.False(t, set.IsFavorite("A"))
}

func TestToggle_RemovesByContentWhenIDDrifted(t *testing.T) {
	set := &memorySet{entries: []Favorite{{ID: 10, Text: "A"}}}
	list := Reconcile([]icndb.Joke{{ID: 99, Joke: "A"}}, set)
	require.True(t, list[0].Favorite)

	next, err := Toggle(list, 0, set)
	require.NoError(t, err)
	assert.False(t, next[0].Favorite)
	assert.False(t, set.IsFavorite("A"))
}

func TestToggle_StaleIDOfOtherFavoriteSurvives(t *testing.T) {
	set := &memorySet{entries: []Favorite{{ID: 10, Text: "A"}, {ID: 99, Text: "B"}}}
	list := Reconcile([]icndb.Joke{{ID: 99, Joke: "A"}, {ID: 7, Joke: "B"}}, set)
	require.True(t, list[0].Favorite)
	require.True(t, list[1].Favorite)

	next, err := Toggle(list, 0, set)
	require.NoError(t, err)
	assert.False(t, next[0].Favorite)
	assert.True(t, next[1].Favorite)
	assert.False(t, set.IsFavorite("A"))
	assert.True(t, set.IsFavorite("B"), "B was stored under the id A now carries")
	assert.Equal(t, []Favorite{{ID: 99, Text: "B"}}, set.entries)
}

func TestToggle_RowsWithSameID(t *testing.T) {
	set := &memorySet{}
	list := []Joke{{ID: 0, Text: "A"}, {ID: 0, Text: "B"}}

	next, err := Toggle(list, 1, set)
	require.NoError(t, err)
	assert.False(t, next[0].Favorite)
	assert.True(t, next[1].Favorite)
	assert.False(t, set.IsFavorite("A"))
	assert.True(t, set.IsFavorite("B"))
}

func TestToggle_BlankJokeIsNotFavorited(t *testing.T) {
	set := &memorySet{}
	list := []Joke{{ID: 1, Text: "<b> </b>"}}

	next, err := Toggle(list, 0, set)
	assert.ErrorIs(t, err, ErrBlankJoke)
	assert.False(t, next[0].Favorite)
	assert.Empty(t, set.entries)
}

func TestLocate(t *testing.T) {
	list := []Joke{{ID: 0, Text: "A"}, {ID: 0, Text: "B"}, {ID: 3, Text: "C"}}

	tests := []struct {
		name  string
		index int
		text  string
		want  int
	}{
		{name: "row still matches", index: 1, text: "B", want: 1},
		{name: "row moved", index: 0, text: "C", want: 2},
		{name: "index out of range", index: 9, text: "<i>A</i>", want: 0},
		{name: "content gone", index: 1, text: "D", want: -1},
		{name: "blank text", index: 5, text: " ", want: -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Locate(list, tt.index, tt.text))
		})
	}
}

func TestToggle_FlagsEveryCopyOfContent(t *testing.T) {
	set := &memorySet{}
	list := []Joke{{ID: 1, Text: "A"}, {ID: 2, Text: " A "}, {ID: 3, Text: "B"}}

	next, err := Toggle(list, 0, set)
	require.NoError(t, err)
	assert.True(t, next[0].Favorite)
	assert.True(t, next[1].Favorite)
	assert.False(t, next[2].Favorite)
	assert.Len(t, set.entries, 1)
}

func TestToggle_IndexOutOfRange(t *testing.T) {
	set := &memorySet{}
	list := []Joke{{ID: 1, Text: "A"}}

	next, err := Toggle(list, 5, set)
	assert.ErrorIs(t, err, ErrJokeNotFound)
	assert.Equal(t, list, next)
	assert.Empty(t, set.entries)
}

func TestToggle_PersistenceErrorKeepsInMemoryState(t *testing.T) {
	persistErr := errors.New("disk full")
	set := &memorySet{saveErr: persistErr}
	list := []Joke{{ID: 1, Text: "A"}}

	next, err := Toggle(list, 0, set)
	assert.ErrorIs(t, err, persistErr)
	assert.True(t, next[0].Favorite)
	assert.True(t, set.IsFavorite("A"))
}

func TestFilterFavorites(t *testing.T) {
	all := []Favorite{
		{ID: 1, Text: "A", Categories: []string{"nerdy"}},
		{ID: 2, Text: "B", Categories: []string{"nerdy", "explicit"}},
		{ID: 3, Text: "C", Categories: []string{"explicit"}},
		{ID: 4, Text: "D"},
	}

	texts := func(favs []Favorite) []string {
		out := make([]string, 0, len(favs))
		for _, f := range favs {
			out = append(out, f.Text)
		}
		return out
	}

	assert.Equal(t, []string{"A", "B", "C", "D"}, texts(FilterFavorites(all, false, false)))
	assert.Equal(t, []string{"A", "B"}, texts(FilterFavorites(all, true, false)))
	assert.Equal(t, []string{"B", "C"}, texts(FilterFavorites(all, false, true)))
	assert.Equal(t, []string{"A", "B", "C"}, texts(FilterFavorites(all, true, true)), "union without duplicates")
}

func TestBuild(t *testing.T) {
	tests := []struct {
		name     string
		criteria Criteria
		want     QueryParams
	}{
		{name: "empty", criteria: Criteria{}, want: QueryParams{Escape: "javascript"}},
		{name: "blank names omitted", criteria: Criteria{FirstName: "   ", LastName: ""}, want: QueryParams{Escape: "javascript"}},
		{name: "names trimmed", criteria: Criteria{FirstName: " John ", LastName: "Doe"}, want: QueryParams{FirstName: "John", LastName: "Doe", Escape: "javascript"}},
		{name: "both categories", criteria: Criteria{Nerdy: true, Explicit: true}, want: QueryParams{LimitTo: "[nerdy,explicit]", Escape: "javascript"}},
		{name: "nerdy only", criteria: Criteria{Nerdy: true}, want: QueryParams{LimitTo: "[nerdy,]", Escape: "javascript"}},
		{name: "explicit only", criteria: Criteria{Explicit: true}, want: QueryParams{LimitTo: "[,explicit]", Escape: "javascript"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Build(tt.criteria))
		})
	}
}

func TestQueryParamsValues_OmitsEmpty(t *testing.T) {
	values := Build(Criteria{LastName: "Doe"}).Values()
	assert.False(t, values.Has("firstName"))
	assert.False(t, values.Has("limitTo"))
	assert.Equal(t, "Doe", values.Get("lastName"))
	assert.Equal(t, "javascript", values.Get("escape"))
}

func TestParseQuantity(t *testing.T) {
	tests := map[string]int{
		"0":    DefaultQuantity,
		"1":    DefaultQuantity,
		"-3":   DefaultQuantity,
		"abc":  DefaultQuantity,
		"":     DefaultQuantity,
		"2":    2,
		"12":   12,
		" 7 ":  7,
		"5000": MaxQuantity,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseQuantity(in), "ParseQuantity(%q)", in)
	}
}

func TestEstimateExtent(t *testing.T) {
	assert.Equal(t, 120, EstimateExtent("hi"))
	assert.Equal(t, 120, EstimateExtent(""))
	assert.Equal(t, 200, EstimateExtent(strings.Repeat("x", 200)))
	assert.Equal(t, 150, EstimateExtent(strings.Repeat("é", 150)), "counts characters, not bytes")
}

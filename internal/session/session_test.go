package session

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/norris/internal/favorites"
	"github.com/five82/norris/internal/icndb"
	"github.com/five82/norris/internal/jokes"
)

type fakeFetcher struct {
	list      []icndb.Joke
	random    []icndb.Joke
	err       error
	panicWith any

	gotParams url.Values
	gotCount  int
}

func (f *fakeFetcher) ListJokes(_ context.Context, params url.Values) ([]icndb.Joke, error) {
	if f.panicWith != nil {
		panic(f.panicWith)
	}
	f.gotParams = params
	return f.list, f.err
}

func (f *fakeFetcher) RandomJokes(_ context.Context, n int, params url.Values) ([]icndb.Joke, error) {
	if f.panicWith != nil {
		panic(f.panicWith)
	}
	f.gotParams = params
	f.gotCount = n
	return f.random, f.err
}

func newTestSession(fetcher icndb.JokeFetcher) (*Session, *favorites.Registry) {
	reg := favorites.NewRegistry(context.Background(), nil)
	return New(fetcher, reg), reg
}

func TestSubmit_InitialRequests(t *testing.T) {
	s, _ := newTestSession(&fakeFetcher{})

	req, ok := s.Submit(ViewJokes, jokes.Criteria{})
	require.True(t, ok)
	assert.False(t, req.Random)
	assert.Equal(t, url.Values{"escape": {"javascript"}}, req.Params)
	assert.True(t, s.Loading(ViewJokes))

	req, ok = s.Submit(ViewRandom, jokes.Criteria{})
	require.True(t, ok)
	assert.True(t, req.Random)
	assert.Equal(t, jokes.DefaultQuantity, req.Count)

	_, ok = s.Submit(ViewFavorites, jokes.Criteria{Nerdy: true})
	assert.False(t, ok, "favorites are filtered locally")
	assert.False(t, s.Loading(ViewFavorites))
}

func TestRunAndApply_ReconcilesWithFavorites(t *testing.T) {
	fetcher := &fakeFetcher{list: []icndb.Joke{{ID: 5, Joke: "A"}, {ID: 6, Joke: "B"}}}
	s, reg := newTestSession(fetcher)
	require.NoError(t, reg.Add(jokes.Favorite{ID: 1, Text: "A"}))

	req, _ := s.Submit(ViewJokes, jokes.Criteria{FirstName: "John", Explicit: true})
	res := s.Run(context.Background(), req)
	require.NoError(t, res.Err)
	require.True(t, s.Apply(res))

	assert.Equal(t, "John", fetcher.gotParams.Get("firstName"))
	assert.Equal(t, "[,explicit]", fetcher.gotParams.Get("limitTo"))
	assert.False(t, s.Loading(ViewJokes))

	list := s.Display(ViewJokes)
	require.Len(t, list, 2)
	assert.True(t, list[0].Favorite)
	assert.False(t, list[1].Favorite)
}

func TestApply_DiscardsStaleResult(t *testing.T) {
	s, _ := newTestSession(&fakeFetcher{})

	first, _ := s.Submit(ViewJokes, jokes.Criteria{})
	second, _ := s.Submit(ViewJokes, jokes.Criteria{Nerdy: true})

	require.True(t, s.Apply(Result{View: ViewJokes, Seq: second.Seq, Jokes: []icndb.Joke{{ID: 2, Joke: "new"}}}))
	assert.False(t, s.Apply(Result{View: ViewJokes, Seq: first.Seq, Jokes: []icndb.Joke{{ID: 1, Joke: "old"}}}))

	list := s.Display(ViewJokes)
	require.Len(t, list, 1)
	assert.Equal(t, "new", list[0].Text)
}

func TestRun_FailureClearsLoadingAndKeepsList(t *testing.T) {
	fetcher := &fakeFetcher{list: []icndb.Joke{{ID: 1, Joke: "A"}}}
	s, _ := newTestSession(fetcher)

	req, _ := s.Submit(ViewJokes, jokes.Criteria{})
	s.Apply(s.Run(context.Background(), req))

	fetcher.err = errors.New("connection refused")
	req, _ = s.Submit(ViewJokes, jokes.Criteria{})
	res := s.Run(context.Background(), req)
	require.Error(t, res.Err)
	require.True(t, s.Apply(res))

	assert.False(t, s.Loading(ViewJokes))
	assert.Len(t, s.Display(ViewJokes), 1)
	assert.ErrorContains(t, s.Snapshot(ViewJokes).LastError, "connection refused")
}

func TestRun_PanicBecomesError(t *testing.T) {
	s, _ := newTestSession(&fakeFetcher{panicWith: "boom"})

	req, _ := s.Submit(ViewRandom, jokes.Criteria{Quantity: "3"})
	res := s.Run(context.Background(), req)

	require.Error(t, res.Err)
	assert.Contains(t, res.Err.Error(), "panic: boom")
	assert.Equal(t, req.Seq, res.Seq)
	require.True(t, s.Apply(res))
	assert.False(t, s.Loading(ViewRandom))
}

func TestRun_NilFetcher(t *testing.T) {
	s, _ := newTestSession(nil)
	req, _ := s.Submit(ViewJokes, jokes.Criteria{})
	res := s.Run(context.Background(), req)
	assert.ErrorIs(t, res.Err, ErrNoFetcher)
}

func TestRandomQuantity(t *testing.T) {
	fetcher := &fakeFetcher{}
	s, _ := newTestSession(fetcher)

	req, _ := s.Submit(ViewRandom, jokes.Criteria{Quantity: "12"})
	s.Run(context.Background(), req)
	assert.Equal(t, 12, fetcher.gotCount)

	req, _ = s.Submit(ViewRandom, jokes.Criteria{Quantity: "abc"})
	s.Run(context.Background(), req)
	assert.Equal(t, 5, fetcher.gotCount)
}

func TestToggleFavorite_SyncsViews(t *testing.T) {
	fetcher := &fakeFetcher{
		list:   []icndb.Joke{{ID: 1, Joke: "A", Categories: []string{"nerdy"}}},
		random: []icndb.Joke{{ID: 77, Joke: "A", Categories: []string{"nerdy"}}},
	}
	s, reg := newTestSession(fetcher)

	req, _ := s.Submit(ViewJokes, jokes.Criteria{})
	s.Apply(s.Run(context.Background(), req))
	req, _ = s.Submit(ViewRandom, jokes.Criteria{})
	s.Apply(s.Run(context.Background(), req))

	list, err := s.ToggleFavorite(ViewJokes, 0, "A")
	require.NoError(t, err)
	assert.True(t, list[0].Favorite)
	assert.True(t, s.Display(ViewRandom)[0].Favorite, "same content under another id")
	assert.Len(t, s.Display(ViewFavorites), 1)

	// Un-favorite from the random view where the id differs from the stored one.
	list, err = s.ToggleFavorite(ViewRandom, 0, "A")
	require.NoError(t, err)
	assert.False(t, list[0].Favorite)
	assert.False(t, reg.IsFavorite("A"))
	assert.Empty(t, s.Display(ViewFavorites))
	assert.False(t, s.Display(ViewJokes)[0].Favorite)
}

func TestToggleFavorite_FromFavoritesViewRemoves(t *testing.T) {
	s, reg := newTestSession(&fakeFetcher{})
	require.NoError(t, reg.Add(jokes.Favorite{ID: 3, Text: "C", Categories: []string{"explicit"}}))

	list, err := s.ToggleFavorite(ViewFavorites, 0, "C")
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.Equal(t, 0, reg.Len())
}

func TestToggleFavorite_UnknownRow(t *testing.T) {
	s, _ := newTestSession(&fakeFetcher{})
	_, err := s.ToggleFavorite(ViewJokes, 3, "missing")
	assert.ErrorIs(t, err, jokes.ErrJokeNotFound)
}

func TestToggleFavorite_StaleIDKeepsOtherFavorite(t *testing.T) {
	fetcher := &fakeFetcher{list: []icndb.Joke{{ID: 99, Joke: "A"}, {ID: 7, Joke: "B"}}}
	s, reg := newTestSession(fetcher)
	require.NoError(t, reg.Add(jokes.Favorite{ID: 10, Text: "A"}))
	require.NoError(t, reg.Add(jokes.Favorite{ID: 99, Text: "B"}))

	req, _ := s.Submit(ViewJokes, jokes.Criteria{})
	s.Apply(s.Run(context.Background(), req))

	list, err := s.ToggleFavorite(ViewJokes, 0, "A")
	require.NoError(t, err)
	assert.False(t, list[0].Favorite)
	assert.True(t, list[1].Favorite)
	assert.False(t, reg.IsFavorite("A"))
	assert.True(t, reg.IsFavorite("B"))
	require.Len(t, s.Display(ViewFavorites), 1)
	assert.Equal(t, "B", s.Display(ViewFavorites)[0].Text)
}

func TestToggleFavorite_RowsWithoutIDs(t *testing.T) {
	fetcher := &fakeFetcher{random: []icndb.Joke{{Joke: "A"}, {Joke: "B"}}}
	s, reg := newTestSession(fetcher)
	req, _ := s.Submit(ViewRandom, jokes.Criteria{})
	s.Apply(s.Run(context.Background(), req))

	list, err := s.ToggleFavorite(ViewRandom, 1, "B")
	require.NoError(t, err)
	assert.False(t, list[0].Favorite)
	assert.True(t, list[1].Favorite)
	assert.True(t, reg.IsFavorite("B"))
	assert.False(t, reg.IsFavorite("A"))
}

func TestToggleFavorite_FollowsMovedRow(t *testing.T) {
	s, reg := newTestSession(&fakeFetcher{})
	require.NoError(t, reg.Add(jokes.Favorite{ID: 1, Text: "A"}))
	require.NoError(t, reg.Add(jokes.Favorite{ID: 2, Text: "B"}))

	// "B" was at row 1 when selected, A has been removed since.
	require.NoError(t, reg.RemoveContent("A"))
	list, err := s.ToggleFavorite(ViewFavorites, 1, "B")
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.Equal(t, 0, reg.Len())
}

func TestToggleFavorite_BlankJoke(t *testing.T) {
	fetcher := &fakeFetcher{list: []icndb.Joke{{ID: 1, Joke: "  "}}}
	s, reg := newTestSession(fetcher)
	req, _ := s.Submit(ViewJokes, jokes.Criteria{})
	s.Apply(s.Run(context.Background(), req))

	list, err := s.ToggleFavorite(ViewJokes, 0, "  ")
	assert.ErrorIs(t, err, jokes.ErrBlankJoke)
	assert.False(t, list[0].Favorite)
	assert.Equal(t, 0, reg.Len())
}

func TestFavoritesFilter(t *testing.T) {
	s, reg := newTestSession(nil)
	require.NoError(t, reg.Add(jokes.Favorite{ID: 1, Text: "A", Categories: []string{"nerdy"}}))
	require.NoError(t, reg.Add(jokes.Favorite{ID: 2, Text: "B", Categories: []string{"explicit", "nerdy"}}))
	require.NoError(t, reg.Add(jokes.Favorite{ID: 3, Text: "C"}))

	assert.Len(t, s.Display(ViewFavorites), 3)

	s.Submit(ViewFavorites, jokes.Criteria{Explicit: true})
	list := s.Display(ViewFavorites)
	require.Len(t, list, 1)
	assert.Equal(t, "B", list[0].Text)
	assert.True(t, list[0].Favorite)

	s.Submit(ViewFavorites, jokes.Criteria{Nerdy: true, Explicit: true})
	assert.Len(t, s.Display(ViewFavorites), 2)
	assert.Len(t, s.Favorites(), 3)
}

func TestParseView(t *testing.T) {
	tests := []struct {
		in   string
		want View
		ok   bool
	}{
		{"", ViewJokes, true},
		{"dashboard", ViewJokes, true},
		{"Random", ViewRandom, true},
		{"favorites", ViewFavorites, true},
		{"nope", ViewJokes, false},
	}
	for _, tt := range tests {
		got, ok := ParseView(tt.in)
		assert.Equal(t, tt.want, got, "ParseView(%q)", tt.in)
		assert.Equal(t, tt.ok, ok, "ParseView(%q) ok", tt.in)
	}
}

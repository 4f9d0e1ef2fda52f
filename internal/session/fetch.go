package session

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/five82/norris/internal/icndb"
	"github.com/five82/norris/pkg/logger"
)

// ErrNoFetcher is reported when a remote view has no joke service configured.
var ErrNoFetcher = errors.New("no joke service configured")

// Request describes one fetch for a remote view.
type Request struct {
	View   View
	Seq    uint64
	Random bool
	Count  int
	Params url.Values
}

// Result is the outcome of a Request.
type Result struct {
	View    View
	Seq     uint64
	Jokes   []icndb.Joke
	Err     error
	Elapsed time.Duration
}

// Fetch runs req against fetcher. It always returns a Result carrying the
// request's view and sequence: transport errors and panics raised by the
// fetcher end up in Result.Err, so the caller can always clear its loading
// state. There are no retries.
func Fetch(ctx context.Context, fetcher icndb.JokeFetcher, req Request) (res Result) {
	res = Result{View: req.View, Seq: req.Seq}
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			res.Jokes = nil
			res.Err = fmt.Errorf("fetch %s: panic: %v", req.View, r)
		}
		res.Elapsed = time.Since(start)
		if res.Err != nil {
			logger.Warn("fetch failed",
				logger.String("view", req.View.String()),
				logger.Uint64("seq", req.Seq),
				logger.Duration("elapsed", res.Elapsed),
				logger.Err(res.Err),
			)
			return
		}
		logger.Debug("fetch done",
			logger.String("view", req.View.String()),
			logger.Uint64("seq", req.Seq),
			logger.Int("count", len(res.Jokes)),
			logger.Duration("elapsed", res.Elapsed),
		)
	}()

	if fetcher == nil {
		res.Err = ErrNoFetcher
		return res
	}

	var err error
	if req.Random {
		res.Jokes, err = fetcher.RandomJokes(ctx, req.Count, req.Params)
	} else {
		res.Jokes, err = fetcher.ListJokes(ctx, req.Params)
	}
	if err != nil {
		res.Jokes = nil
		res.Err = fmt.Errorf("fetch %s: %w", req.View, err)
	}
	return res
}

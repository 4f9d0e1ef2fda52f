package state

import (
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/five82/norris/internal/icndb"
)

// Snapshot represents the latest fetched collection of one view.
type Snapshot struct {
	Raw                 []icndb.Joke
	HasData             bool
	Loading             bool
	Seq                 uint64 // sequence of the applied fetch
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int
}

// IsOffline returns true when the service has failed several fetches in a row.
func (s Snapshot) IsOffline() bool {
	return s.ConsecutiveFailures >= 2
}

// Feed tracks the fetches of one view. Each fetch is tagged with a sequence
// number from Begin and only the newest one may complete, so a slow response
// can never overwrite a newer one.
type Feed struct {
	mu       sync.RWMutex
	issued   uint64
	snapshot Snapshot
}

// Begin starts a fetch and returns its sequence number.
func (f *Feed) Begin() uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.issued++
	f.snapshot.Loading = true
	return f.issued
}

// Complete applies the outcome of fetch seq and reports whether it was
// applied. Outcomes of superseded fetches are discarded. When err is non-nil
// the previous collection is kept but the error is recorded for visibility.
// Loading always clears once the latest fetch completes.
func (f *Feed) Complete(seq uint64, raw []icndb.Joke, err error) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if seq != f.issued {
		return false
	}

	f.snapshot.Loading = false
	f.snapshot.Seq = seq
	f.snapshot.LastUpdated = time.Now()
	if err != nil {
		f.snapshot.LastError = err
		f.snapshot.ConsecutiveFailures++
		return true
	}

	f.snapshot.Raw = slices.Clone(raw)
	f.snapshot.HasData = true
	f.snapshot.LastError = nil
	f.snapshot.ConsecutiveFailures = 0
	return true
}

// Latest returns the sequence number of the newest fetch.
func (f *Feed) Latest() uint64 {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.issued
}

// Snapshot returns a copy of the current snapshot.
func (f *Feed) Snapshot() Snapshot {
	f.mu.RLock()
	defer f.mu.RUnlock()

	snap := f.snapshot
	snap.Raw = slices.Clone(f.snapshot.Raw)
	if f.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", f.snapshot.LastError)
	}
	return snap
}

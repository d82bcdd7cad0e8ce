package search

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mux     sync.Mutex
	queries []string
	results []Result
	got     chan struct{}
}

func newRecorder() *recorder {
	return &recorder{got: make(chan struct{}, 16)}
}

func (r *recorder) run(ctx context.Context, q string) (interface{}, error) {
	r.mux.Lock()
	r.queries = append(r.queries, q)
	r.mux.Unlock()
	return "results for " + q, nil
}

func (r *recorder) deliver(res Result) {
	r.mux.Lock()
	r.results = append(r.results, res)
	r.mux.Unlock()
	r.got <- struct{}{}
}

func (r *recorder) wait(t *testing.T) {
	select {
	case <-r.got:
	case <-time.After(2 * time.Second):
		t.Fatal("no result delivered")
	}
}

func (r *recorder) snapshot() ([]string, []Result) {
	r.mux.Lock()
	defer r.mux.Unlock()
	return append([]string(nil), r.queries...), append([]Result(nil), r.results...)
}

func TestDebounceCollapsesKeystrokes(t *testing.T) {
	r := newRecorder()
	d := NewDebouncer(50*time.Millisecond, r.run, r.deliver)
	defer d.Stop()

	for _, q := range []string{"s", "su", "sum", "summ", "summer"} {
		d.Input(q)
	}
	r.wait(t)
	time.Sleep(100 * time.Millisecond)

	queries, results := r.snapshot()
	assert.Equal(t, []string{"summer"}, queries)
	require.Len(t, results, 1)
	assert.Equal(t, "summer", results[0].Query)
	assert.Equal(t, "results for summer", results[0].Value)
	assert.EqualValues(t, 5, d.Generation())
}

func TestDebounceLastRequestWins(t *testing.T) {
	started := make(chan string, 4)
	r := newRecorder()
	slow := func(ctx context.Context, q string) (interface{}, error) {
		started <- q
		if q == "old" {
			// the stale request outlives the new one
			<-ctx.Done()
			time.Sleep(50 * time.Millisecond)
			return "stale", ctx.Err()
		}
		return "fresh", nil
	}
	d := NewDebouncer(10*time.Millisecond, slow, r.deliver)
	defer d.Stop()

	d.Input("old")
	assert.Equal(t, "old", <-started)
	d.Input("new")
	assert.Equal(t, "new", <-started)

	r.wait(t)
	time.Sleep(100 * time.Millisecond)

	_, results := r.snapshot()
	require.Len(t, results, 1)
	assert.Equal(t, Result{Query: "new", Value: "fresh"}, results[0])
}

func TestDebounceStop(t *testing.T) {
	r := newRecorder()
	d := NewDebouncer(20*time.Millisecond, r.run, r.deliver)

	d.Input("summer")
	d.Stop()
	d.Input("winter")
	time.Sleep(80 * time.Millisecond)

	queries, results := r.snapshot()
	assert.Empty(t, queries)
	assert.Empty(t, results)
}

func TestDebounceDefaultDelay(t *testing.T) {
	d := NewDebouncer(0, nil, nil)
	assert.Equal(t, DefaultDelay, d.delay)
}

type campaign struct {
	ID   int
	Name string
}

func TestFilter(t *testing.T) {
	var cmps []campaign
	for i := 0; i < 48; i++ {
		cmps = append(cmps, campaign{i, fmt.Sprintf("Campaign %02d", i)})
	}
	cmps = append(cmps, campaign{48, "Summer Launch"}, campaign{49, "Winter Drop"})
	name := func(c campaign) string { return c.Name }

	got := Filter(cmps, "summer", name)
	require.Len(t, got, 1)
	assert.Equal(t, "Summer Launch", got[0].Name)

	assert.Len(t, Filter(cmps, "", name), 50)
	assert.Len(t, Filter(cmps, "  ", name), 50)
	assert.Empty(t, Filter(cmps, "autumn", name))

	got = Filter(cmps, "CAMPAIGN 0", name)
	require.Len(t, got, 10)
	for i, c := range got {
		assert.Equal(t, i, c.ID, "order is preserved")
	}
}

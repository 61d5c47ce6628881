package tui

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/handiism/storesearch/internal/config"
	"github.com/handiism/storesearch/internal/model"
	"github.com/handiism/storesearch/internal/testutil"
)

type recordingFetcher struct {
	mu      sync.Mutex
	queries []model.Query
	results []model.SearchResult
	err     error
}

func (f *recordingFetcher) Fetch(_ context.Context, q model.Query) ([]model.SearchResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, q)
	return f.results, f.err
}

func (f *recordingFetcher) Queries() []model.Query {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]model.Query(nil), f.queries...)
}

type pngGetter struct {
	data []byte
}

func (g pngGetter) Get(context.Context, string) ([]byte, error) {
	return g.data, nil
}

func makeResults(n int) []model.SearchResult {
	out := make([]model.SearchResult, n)
	for i := range out {
		out[i] = model.SearchResult{
			ID:              fmt.Sprint(i),
			Name:            fmt.Sprintf("Item %02d", i),
			ArtistName:      "Artist",
			Kind:            "song",
			ArtworkSmallURL: fmt.Sprintf("https://example.test/art/%d.png", i),
		}
	}
	return out
}

type harness struct {
	t    *testing.T
	m    Model
	msgs chan tea.Msg
}

func newHarness(t *testing.T, f *recordingFetcher) *harness {
	t.Helper()
	h := &harness{t: t, msgs: make(chan tea.Msg, 128)}
	getter := pngGetter{data: testutil.MakeTestPNG(t, 60, 60, color.RGBA{R: 200, A: 255})}
	h.m = NewModel(config.DefaultSettings(), Deps{Fetcher: f, Getter: getter})
	h.m.core.send = func(msg tea.Msg) { h.msgs <- msg }
	t.Cleanup(h.m.core.close)

	h.update(tea.WindowSizeMsg{Width: 80, Height: 40})
	return h
}

func (h *harness) update(msg tea.Msg) {
	next, _ := h.m.Update(msg)
	h.m = next.(Model)
}

func (h *harness) key(k tea.KeyType) {
	h.update(tea.KeyMsg{Type: k})
}

func (h *harness) typeText(s string) {
	h.update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

// pump feeds n messages sent by background work into the model.
func (h *harness) pump(n int) {
	h.t.Helper()
	for i := 0; i < n; i++ {
		select {
		case msg := <-h.msgs:
			h.update(msg)
		case <-time.After(time.Second):
			h.t.Fatalf("timed out waiting for message %d of %d", i+1, n)
		}
	}
}

func TestSubmitShowsLoadingThenSortedResults(t *testing.T) {
	f := &recordingFetcher{results: []model.SearchResult{
		{ID: "2", Name: "beta"},
		{ID: "1", Name: "Alpha"},
	}}
	h := newHarness(t, f)

	h.typeText("abba")
	h.key(tea.KeyEnter)
	assert.Equal(t, model.StateLoading, h.m.search.Kind)
	assert.Contains(t, h.m.View(), "Loading...")

	h.pump(1)
	require.Equal(t, model.StateResults, h.m.search.Kind)
	assert.Equal(t, "Alpha", h.m.search.Results[0].Name)
	assert.Equal(t, []model.Query{{Text: "abba", Category: model.CategoryAll}}, f.Queries())
}

func TestEmptySubmitDoesNothing(t *testing.T) {
	f := &recordingFetcher{}
	h := newHarness(t, f)

	h.typeText("   ")
	h.key(tea.KeyEnter)

	assert.Equal(t, model.StateNotSearched, h.m.search.Kind)
	assert.Empty(t, f.Queries())
}

func TestSearchFailureShowsNotice(t *testing.T) {
	f := &recordingFetcher{err: errors.New("offline")}
	h := newHarness(t, f)

	h.typeText("abba")
	h.key(tea.KeyEnter)
	h.pump(1)

	assert.Equal(t, model.StateNotSearched, h.m.search.Kind)
	assert.Equal(t, networkErrorText, h.m.notice)
	assert.Contains(t, h.m.View(), "Whoops")
}

func TestNoResultsView(t *testing.T) {
	h := newHarness(t, &recordingFetcher{})

	h.typeText("zzzz")
	h.key(tea.KeyEnter)
	h.pump(1)

	assert.Equal(t, model.StateNoResults, h.m.search.Kind)
	assert.Contains(t, h.m.View(), "Nothing Found")
}

func TestCategoryChangeResubmits(t *testing.T) {
	f := &recordingFetcher{results: makeResults(3)}
	h := newHarness(t, f)

	h.typeText("abba")
	h.key(tea.KeyEnter)
	h.pump(1)

	h.key(tea.KeyTab)
	assert.Equal(t, model.CategoryMusic, h.m.category)
	assert.Equal(t, model.StateLoading, h.m.search.Kind)
	h.pump(1)

	h.key(tea.KeyShiftTab)
	assert.Equal(t, model.CategoryAll, h.m.category)
	h.pump(1)

	queries := f.Queries()
	require.Len(t, queries, 3)
	assert.Equal(t, model.CategoryMusic, queries[1].Category)
	assert.Equal(t, model.CategoryAll, queries[2].Category)
}

func TestCursorMovesWithinResults(t *testing.T) {
	h := newHarness(t, &recordingFetcher{results: makeResults(3)})

	h.typeText("x")
	h.key(tea.KeyEnter)
	h.pump(1)

	h.key(tea.KeyUp)
	assert.Equal(t, 0, h.m.cursor)
	for range 5 {
		h.key(tea.KeyDown)
	}
	assert.Equal(t, 2, h.m.cursor)
}

func TestLandscapeLoadsVisiblePage(t *testing.T) {
	h := newHarness(t, &recordingFetcher{results: makeResults(30)})

	h.typeText("abba")
	h.key(tea.KeyEnter)
	h.pump(1)

	h.key(tea.KeyCtrlT)
	require.Equal(t, StateLandscape, h.m.state)

	// 80 cells at 8 points each falls in the 568 breakpoint: 6x3 per page.
	assert.Equal(t, 6, h.m.layout.Profile.ColumnsPerPage)
	assert.Equal(t, 2, h.m.layout.PageCount)

	h.pump(18)
	done, total := h.m.loadedOnPage()
	assert.Equal(t, 18, done)
	assert.Equal(t, 18, total)
	assert.Equal(t, uint8(200), h.m.tiles[0].color.R)

	h.key(tea.KeyRight)
	assert.Equal(t, 1, h.m.page)
	h.pump(12)
	done, total = h.m.loadedOnPage()
	assert.Equal(t, 12, done)
	assert.Equal(t, 12, total)

	h.key(tea.KeyRight)
	assert.Equal(t, 1, h.m.page, "page stays on the last page")

	view := h.m.View()
	assert.Contains(t, view, "Thumbnails: 12/12")
	assert.True(t, strings.Contains(view, "○ ●"))

	h.key(tea.KeyEsc)
	assert.Equal(t, StateList, h.m.state)
	assert.Empty(t, h.m.tiles)
}

func TestRingHandlerKeepsLastEntries(t *testing.T) {
	ring := &logRing{}
	logger := slog.New(newRingHandler(ring, slog.LevelInfo)).With("component", "test")

	logger.Debug("hidden")
	for i := range maxLogs + 3 {
		logger.Info("line", "n", i)
	}

	entries := ring.snapshot()
	require.Len(t, entries, maxLogs)
	assert.Equal(t, "line component=test n=3", entries[0].Message)
	assert.Equal(t, slog.LevelInfo, entries[0].Level)
}

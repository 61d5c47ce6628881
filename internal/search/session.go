package search

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/handiism/storesearch/internal/dispatch"
	"github.com/handiism/storesearch/internal/model"
)

// Fetcher performs one search request. It must honour ctx cancellation.
type Fetcher interface {
	Fetch(ctx context.Context, q model.Query) ([]model.SearchResult, error)
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc func(ctx context.Context, q model.Query) ([]model.SearchResult, error)

// Fetch calls f(ctx, q).
func (f FetcherFunc) Fetch(ctx context.Context, q model.Query) ([]model.SearchResult, error) {
	return f(ctx, q)
}

// Session owns the search state of one search screen.
//
// Session is a state machine:
//
//	NotSearched -> Loading -> Results | NoResults
//	Results | NoResults -> Loading (on the next Submit)
//
// Every Submit gets a sequence number. Only the completion carrying the
// latest number may change state; older completions are dropped without
// being reported. Completions are applied through the session's
// Dispatcher, so state changes and callbacks happen on the presentation
// context.
//
// Example usage:
//
//	s := search.New(fetcher,
//	    search.WithDispatcher(queue),
//	    search.OnChange(func(st model.SearchState) { redraw(st) }),
//	    search.OnError(func(err error) { showNetworkError() }),
//	)
//	defer s.Close()
//	s.Submit(model.Query{Text: "abba", Category: model.CategoryMusic})
type Session struct {
	fetcher    Fetcher
	dispatcher dispatch.Dispatcher
	logger     *slog.Logger
	onChange   func(model.SearchState)
	onError    func(error)

	baseCtx    context.Context
	baseCancel context.CancelFunc

	mu        sync.Mutex
	state     model.SearchState
	lastGood  model.SearchState
	lastQuery model.Query
	seq       uint64
	cancel    context.CancelFunc
	closed    bool

	wg sync.WaitGroup
}

// Option configures a Session.
type Option func(*Session)

// WithDispatcher sets where completions are applied. Defaults to
// dispatch.Inline.
func WithDispatcher(d dispatch.Dispatcher) Option {
	return func(s *Session) {
		if d != nil {
			s.dispatcher = d
		}
	}
}

// WithLogger sets the session logger. Defaults to discarding.
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithContext sets the parent context for every fetch.
func WithContext(ctx context.Context) Option {
	return func(s *Session) {
		if ctx != nil {
			s.baseCtx = ctx
		}
	}
}

// OnChange registers a callback invoked after every state change.
func OnChange(fn func(model.SearchState)) Option {
	return func(s *Session) { s.onChange = fn }
}

// OnError registers a callback invoked once per failed search. The error
// wraps model.ErrNetwork or model.ErrDecode.
func OnError(fn func(error)) Option {
	return func(s *Session) { s.onError = fn }
}

// New creates a Session in the NotSearched state.
func New(fetcher Fetcher, opts ...Option) *Session {
	s := &Session{
		fetcher:    fetcher,
		dispatcher: dispatch.Inline{},
		logger:     slog.New(slog.DiscardHandler),
		baseCtx:    context.Background(),
		state:      model.NotSearchedState(),
		lastGood:   model.NotSearchedState(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.baseCtx, s.baseCancel = context.WithCancel(s.baseCtx)
	return s
}

// Submit starts a search for q.
//
// A query with blank text is ignored: the state stays as it is and no
// fetch is issued. Otherwise the state becomes Loading before Submit
// returns and any in-flight fetch is cancelled and its result discarded.
func (s *Session) Submit(q model.Query) {
	if q.IsEmpty() {
		return
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	if s.cancel != nil {
		s.cancel()
	}
	s.seq++
	seq := s.seq
	ctx, cancel := context.WithCancel(s.baseCtx)
	s.cancel = cancel
	s.lastQuery = q
	s.state = model.LoadingState()
	s.wg.Add(1)
	s.mu.Unlock()

	s.logger.Debug("search submitted", "seq", seq, "term", q.Text, "category", q.Category.String())
	s.notifyChange(model.LoadingState())

	go s.run(ctx, seq, q)
}

func (s *Session) run(ctx context.Context, seq uint64, q model.Query) {
	results, err := s.fetcher.Fetch(ctx, q)
	// The fetch itself is the background work Close waits for; the
	// dispatch below may block on a busy presentation loop.
	s.wg.Done()
	s.dispatcher.Dispatch(func() {
		s.complete(seq, results, err)
	})
}

func (s *Session) complete(seq uint64, results []model.SearchResult, err error) {
	s.mu.Lock()
	if s.closed || seq != s.seq {
		s.mu.Unlock()
		s.logger.Debug("stale search response dropped", "seq", seq)
		return
	}
	s.cancel()
	s.cancel = nil

	if err != nil {
		s.state = s.lastGood.Clone()
		state := s.state.Clone()
		s.mu.Unlock()

		err = classify(err)
		s.logger.Warn("search failed", "seq", seq, "err", err)
		s.notifyChange(state)
		if s.onError != nil {
			s.onError(err)
		}
		return
	}

	sorted := slices.Clone(results)
	slices.SortFunc(sorted, model.Compare)
	s.state = model.ResultsState(sorted)
	s.lastGood = s.state.Clone()
	state := s.state.Clone()
	s.mu.Unlock()

	s.logger.Debug("search completed", "seq", seq, "state", state.Kind.String(), "results", state.Len())
	s.notifyChange(state)
}

// classify makes sure err wraps one of the user-facing error kinds.
// Anything that is not a decode failure, cancellation included, is
// reported as a network error.
func classify(err error) error {
	if errors.Is(err, model.ErrDecode) || errors.Is(err, model.ErrNetwork) {
		return err
	}
	return fmt.Errorf("%w: %w", model.ErrNetwork, err)
}

func (s *Session) notifyChange(state model.SearchState) {
	if s.onChange != nil {
		s.onChange(state)
	}
}

// CurrentState returns a snapshot of the session state.
func (s *Session) CurrentState() model.SearchState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// LastQuery returns the most recently submitted non-empty query.
func (s *Session) LastQuery() model.Query {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastQuery
}

// Result returns the i-th result of the current state, if any.
func (s *Session) Result(i int) (model.SearchResult, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i < 0 || i >= len(s.state.Results) {
		return model.SearchResult{}, false
	}
	return s.state.Results[i], true
}

// Close cancels any in-flight fetch and waits for it to return. No
// callbacks fire afterwards. Close is idempotent.
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.mu.Unlock()

	s.baseCancel()
	s.wg.Wait()
}

package thumbnail

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"sync"

	"golang.org/x/sync/semaphore"

	"github.com/handiism/storesearch/internal/dispatch"
	"github.com/handiism/storesearch/internal/http"
	"github.com/handiism/storesearch/internal/imaging"
	"github.com/handiism/storesearch/internal/model"
)

// Slot identifies one presentation unit (a button or cell). Each slot owns
// at most one in-flight request.
type Slot int

// Result is delivered to a request's callback.
type Result struct {
	Slot     Slot
	ResultID string
	State    model.ThumbnailState
	Image    image.Image
	Err      error
}

// Handle is the caller's reference to one thumbnail request.
type Handle struct {
	slot     Slot
	resultID string
	url      string
	cancel   context.CancelFunc

	mu    sync.Mutex
	state model.ThumbnailState
}

// Slot returns the slot that issued the request.
func (h *Handle) Slot() Slot { return h.slot }

// ResultID returns the search result the thumbnail belongs to.
func (h *Handle) ResultID() string { return h.resultID }

// State returns the current request state.
func (h *Handle) State() model.ThumbnailState {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state
}

// Cancel abandons the request. Once Cancel returns on the dispatch context,
// the callback will not run. Cancelling a finished request does nothing.
func (h *Handle) Cancel() {
	h.mu.Lock()
	if h.state == model.ThumbnailPending {
		h.state = model.ThumbnailCancelled
	}
	h.mu.Unlock()
	h.cancel()
}

// finish moves a pending handle to state and reports whether it did.
func (h *Handle) finish(state model.ThumbnailState) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.state != model.ThumbnailPending {
		return false
	}
	h.state = state
	return true
}

// Loader fetches result thumbnails for presentation slots.
//
// Loader provides:
//   - Non-blocking requests that complete through a Dispatcher
//   - One request per slot; a new request cancels the slot's previous one
//   - Decoding and scaling to the button size
//   - A cap on concurrent downloads
//   - Close, which cancels everything and waits for workers to exit
//
// There is no cache: every request downloads the artwork again.
//
// Example usage:
//
//	loader := thumbnail.NewLoader(client, queue, thumbnail.WithMaxConcurrent(4))
//	defer loader.Close()
//
//	h := loader.Request(slot, result.ID, result.ArtworkSmallURL, func(r thumbnail.Result) {
//	    if r.State == model.ThumbnailDone {
//	        button.SetImage(r.Image)
//	    }
//	})
//	// when the button scrolls away
//	loader.Release(slot)
type Loader struct {
	getter     http.Getter
	images     *imaging.ImageService
	dispatcher dispatch.Dispatcher
	logger     *slog.Logger
	sem        *semaphore.Weighted
	width      int
	height     int

	ctx    context.Context
	cancel context.CancelFunc

	mu     sync.Mutex
	slots  map[Slot]*Handle
	closed bool

	wg sync.WaitGroup
}

// DefaultMaxConcurrent is the download cap when WithMaxConcurrent is not used.
const DefaultMaxConcurrent = 6

const defaultSize = 82

// Option configures a Loader.
type Option func(*Loader)

// WithSize sets the bounds thumbnails are scaled to fit.
func WithSize(width, height int) Option {
	return func(l *Loader) {
		if width > 0 && height > 0 {
			l.width, l.height = width, height
		}
	}
}

// WithMaxConcurrent caps simultaneous downloads.
func WithMaxConcurrent(n int) Option {
	return func(l *Loader) {
		if n > 0 {
			l.sem = semaphore.NewWeighted(int64(n))
		}
	}
}

// WithLogger sets the loader logger. Defaults to discarding.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithImageService overrides the image decoder and scaler.
func WithImageService(svc *imaging.ImageService) Option {
	return func(l *Loader) {
		if svc != nil {
			l.images = svc
		}
	}
}

// NewLoader creates a Loader that downloads through getter and delivers
// results through dispatcher (dispatch.Inline when nil).
func NewLoader(getter http.Getter, dispatcher dispatch.Dispatcher, opts ...Option) *Loader {
	if dispatcher == nil {
		dispatcher = dispatch.Inline{}
	}
	l := &Loader{
		getter:     getter,
		images:     imaging.NewImageService(),
		dispatcher: dispatcher,
		logger:     slog.New(slog.DiscardHandler),
		sem:        semaphore.NewWeighted(DefaultMaxConcurrent),
		width:      defaultSize,
		height:     defaultSize,
		slots:      make(map[Slot]*Handle),
	}
	for _, opt := range opts {
		opt(l)
	}
	l.ctx, l.cancel = context.WithCancel(context.Background())
	return l
}

// Request starts fetching the thumbnail at url for slot and returns
// immediately. Any earlier request for the same slot is cancelled first.
//
// onDone runs on the dispatch context with State ThumbnailDone or
// ThumbnailFailed. It never runs for a cancelled request. After Close,
// Request returns an already cancelled handle.
func (l *Loader) Request(slot Slot, resultID, url string, onDone func(Result)) *Handle {
	l.mu.Lock()
	if prev := l.slots[slot]; prev != nil {
		prev.Cancel()
		delete(l.slots, slot)
	}

	ctx, cancel := context.WithCancel(l.ctx)
	h := &Handle{slot: slot, resultID: resultID, url: url, cancel: cancel}
	if l.closed {
		l.mu.Unlock()
		h.Cancel()
		return h
	}
	l.slots[slot] = h
	l.wg.Add(1)
	l.mu.Unlock()

	go l.fetch(ctx, h, onDone)
	return h
}

func (l *Loader) fetch(ctx context.Context, h *Handle, onDone func(Result)) {
	img, err := l.load(ctx, h.url)
	l.wg.Done()

	if h.State() == model.ThumbnailCancelled {
		return
	}
	l.dispatcher.Dispatch(func() {
		l.deliver(h, img, err, onDone)
	})
}

func (l *Loader) load(ctx context.Context, url string) (image.Image, error) {
	if url == "" {
		return nil, fmt.Errorf("%w: no artwork URL", model.ErrThumbnail)
	}
	if err := l.sem.Acquire(ctx, 1); err != nil {
		return nil, fmt.Errorf("%w: %w", model.ErrThumbnail, err)
	}
	defer l.sem.Release(1)

	data, err := l.getter.Get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", model.ErrThumbnail, err)
	}
	img, err := l.images.Thumbnail(ctx, data, l.width, l.height)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", model.ErrThumbnail, err)
	}
	return img, nil
}

func (l *Loader) deliver(h *Handle, img image.Image, err error, onDone func(Result)) {
	state := model.ThumbnailDone
	if err != nil {
		state = model.ThumbnailFailed
	}
	if !h.finish(state) {
		return
	}
	h.cancel()

	l.mu.Lock()
	if l.slots[h.slot] == h {
		delete(l.slots, h.slot)
	}
	l.mu.Unlock()

	if err != nil {
		if !errors.Is(err, context.Canceled) {
			l.logger.Debug("thumbnail failed", "result", h.resultID, "url", h.url, "err", err)
		}
		img = nil
	}
	if onDone != nil {
		onDone(Result{Slot: h.slot, ResultID: h.resultID, State: state, Image: img, Err: err})
	}
}

// Release cancels the request owned by slot, if any.
func (l *Loader) Release(slot Slot) {
	l.mu.Lock()
	h := l.slots[slot]
	delete(l.slots, slot)
	l.mu.Unlock()

	if h != nil {
		h.Cancel()
	}
}

// CancelAll cancels every outstanding request. The loader stays usable.
func (l *Loader) CancelAll() {
	l.mu.Lock()
	handles := make([]*Handle, 0, len(l.slots))
	for slot, h := range l.slots {
		handles = append(handles, h)
		delete(l.slots, slot)
	}
	l.mu.Unlock()

	for _, h := range handles {
		h.Cancel()
	}
}

// Pending returns the number of slots with an unresolved request.
func (l *Loader) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.slots)
}

// Close cancels every request and waits for download workers to return.
// No callback runs afterwards. Close is idempotent.
func (l *Loader) Close() {
	l.mu.Lock()
	l.closed = true
	l.mu.Unlock()

	l.CancelAll()
	l.cancel()
	l.wg.Wait()
}

package download

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/handiism/storesearch/internal/http"
	"github.com/handiism/storesearch/internal/imaging"
	ioutils "github.com/handiism/storesearch/internal/io"
	"github.com/handiism/storesearch/internal/model"
)

// ProgressLevel indicates the severity/type of a progress message.
type ProgressLevel int

const (
	LevelInfo ProgressLevel = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

// ProgressEvent represents an export progress update.
type ProgressEvent struct {
	Message string
	Level   ProgressLevel
}

// Config controls an artwork export.
type Config struct {
	Dir string

	// FileNameFormat accepts {name}, {artist}, {kind} and {id}.
	FileNameFormat string
	MaxConcurrent  int

	MaxRetries    int
	RetryCooldown float64 // seconds
	RetryExponent float64

	// Resize scales artwork to fit Width x Height and re-encodes it as JPEG.
	// Otherwise the original bytes are saved.
	Resize bool
	Width  int
	Height int
}

// DefaultConfig returns the export defaults for dir.
func DefaultConfig(dir string) Config {
	return Config{
		Dir:            dir,
		FileNameFormat: "{artist} - {name}",
		MaxConcurrent:  4,
		MaxRetries:     3,
		RetryCooldown:  0.2,
		RetryExponent:  4.0,
		Resize:         false,
		Width:          100,
		Height:         100,
	}
}

// Job is one planned artwork file.
type Job struct {
	Result model.SearchResult
	URL    string
	Path   string
}

// fileDownloader streams a URL straight to disk.
type fileDownloader interface {
	DownloadFile(ctx context.Context, url, destPath string) error
}

// Manager saves result artwork to a directory.
type Manager struct {
	cfg    Config
	getter http.Getter
	images *imaging.ImageService

	totalFiles atomic.Int32
	savedFiles atomic.Int32
	failed     atomic.Int32
	savedBytes atomic.Int64

	onProgress func(ProgressEvent)
}

// NewManager creates a new export Manager.
func NewManager(getter http.Getter, cfg Config, onProgress func(ProgressEvent)) *Manager {
	if cfg.MaxConcurrent <= 0 {
		cfg.MaxConcurrent = 1
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 1
	}
	if cfg.FileNameFormat == "" {
		cfg.FileNameFormat = DefaultConfig("").FileNameFormat
	}
	return &Manager{
		cfg:        cfg,
		getter:     getter,
		images:     imaging.NewImageService(),
		onProgress: onProgress,
	}
}

// Plan returns one job per result with artwork, in result order. Names
// that collide get the result ID appended.
func (m *Manager) Plan(results []model.SearchResult) []Job {
	used := make(map[string]bool, len(results))
	jobs := make([]Job, 0, len(results))

	for _, r := range results {
		artURL := r.ArtworkLargeURL
		if artURL == "" {
			artURL = r.ArtworkSmallURL
		}
		if artURL == "" {
			continue
		}

		name := ioutils.FormatFileName(m.cfg.FileNameFormat, map[string]string{
			"name":   r.Name,
			"artist": r.ArtistName,
			"kind":   r.KindForDisplay(),
			"id":     r.ID,
		})
		if name == "" {
			name = ioutils.SanitizeFileName(r.ID)
		}
		key := strings.ToLower(name)
		if used[key] {
			name = fmt.Sprintf("%s (%s)", name, ioutils.SanitizeFileName(r.ID))
			key = strings.ToLower(name)
		}
		used[key] = true

		jobs = append(jobs, Job{
			Result: r,
			URL:    artURL,
			Path:   filepath.Join(m.cfg.Dir, name+m.extension(artURL)),
		})
	}
	return jobs
}

func (m *Manager) extension(rawURL string) string {
	if m.cfg.Resize {
		return ".jpg"
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return ".jpg"
	}
	ext := strings.ToLower(path.Ext(u.Path))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".gif":
		return ext
	}
	return ".jpg"
}

// Export saves artwork for every result with an artwork URL. A failed file
// is reported and skipped; only cancellation or an unusable directory fails
// the whole export.
func (m *Manager) Export(ctx context.Context, results []model.SearchResult) error {
	if err := ioutils.EnsureDir(m.cfg.Dir); err != nil {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Error creating directory: %v", err), Level: LevelError})
		return err
	}

	jobs := m.Plan(results)
	if skipped := len(results) - len(jobs); skipped > 0 {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Skipping %d result(s) without artwork", skipped), Level: LevelVerbose})
	}
	m.totalFiles.Add(int32(len(jobs)))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(m.cfg.MaxConcurrent)

	for _, job := range jobs {
		g.Go(func() error {
			if err := m.exportOne(ctx, job); err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				m.failed.Add(1)
				m.progress(ProgressEvent{Message: fmt.Sprintf("Error saving artwork for %s: %v", job.Result.Name, err), Level: LevelError})
			}
			return nil // Continue with other files
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	if failed := m.failed.Load(); failed == 0 {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Saved %d artwork file(s) to %s", len(jobs), m.cfg.Dir), Level: LevelSuccess})
	} else {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Finished export, %d of %d file(s) failed", failed, len(jobs)), Level: LevelWarning})
	}
	return nil
}

func (m *Manager) exportOne(ctx context.Context, job Job) error {
	if d, ok := m.getter.(fileDownloader); ok && !m.cfg.Resize {
		err := m.withRetry(ctx, job.Result.Name, func() error {
			return d.DownloadFile(ctx, job.URL, job.Path)
		})
		if err != nil {
			return err
		}
		if info, err := os.Stat(job.Path); err == nil {
			m.savedBytes.Add(info.Size())
		}
		m.saved(job)
		return nil
	}

	var data []byte
	err := m.withRetry(ctx, job.Result.Name, func() error {
		var err error
		data, err = m.getter.Get(ctx, job.URL)
		return err
	})
	if err != nil {
		return err
	}

	if m.cfg.Resize {
		img, err := m.images.Thumbnail(ctx, data, m.cfg.Width, m.cfg.Height)
		if err != nil {
			return fmt.Errorf("%w: %w", model.ErrThumbnail, err)
		}
		if data, err = m.images.EncodeJPEG(img); err != nil {
			return err
		}
	}

	if err := ioutils.WriteFile(ctx, job.Path, data); err != nil {
		return err
	}
	m.savedBytes.Add(int64(len(data)))
	m.saved(job)
	return nil
}

func (m *Manager) saved(job Job) {
	m.savedFiles.Add(1)
	m.progress(ProgressEvent{Message: fmt.Sprintf("Saved: %s", filepath.Base(job.Path)), Level: LevelVerbose})
}

// withRetry runs fn until it succeeds, the context ends or MaxRetries is
// reached. 4xx responses are final.
func (m *Manager) withRetry(ctx context.Context, label string, fn func() error) error {
	var err error
	for tries := 0; tries < m.cfg.MaxRetries; tries++ {
		if err = fn(); err == nil {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		var statusErr *http.StatusError
		if errors.As(err, &statusErr) && statusErr.StatusCode < 500 {
			return err
		}
		if tries+1 < m.cfg.MaxRetries {
			m.progress(ProgressEvent{Message: fmt.Sprintf("Retry %d/%d for %s", tries+1, m.cfg.MaxRetries, label), Level: LevelWarning})
			m.waitForRetry(ctx, tries)
		}
	}
	return err
}

func (m *Manager) waitForRetry(ctx context.Context, tries int) {
	cooldown := m.cfg.RetryCooldown * math.Pow(m.cfg.RetryExponent, float64(tries))
	select {
	case <-ctx.Done():
	case <-time.After(time.Duration(cooldown * float64(time.Second))):
	}
}

// GetProgress returns current export progress.
func (m *Manager) GetProgress() (bytes int64, saved, failed, total int32) {
	return m.savedBytes.Load(), m.savedFiles.Load(), m.failed.Load(), m.totalFiles.Load()
}

func (m *Manager) progress(event ProgressEvent) {
	if m.onProgress != nil {
		m.onProgress(event)
	}
}

package tui

import (
	"image/color"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/handiism/storesearch/internal/config"
	"github.com/handiism/storesearch/internal/dispatch"
	"github.com/handiism/storesearch/internal/grid"
	"github.com/handiism/storesearch/internal/http"
	"github.com/handiism/storesearch/internal/imaging"
	"github.com/handiism/storesearch/internal/itunes"
	"github.com/handiism/storesearch/internal/model"
	"github.com/handiism/storesearch/internal/search"
	"github.com/handiism/storesearch/internal/thumbnail"
)

// networkErrorText is shown when the latest search fails.
const networkErrorText = "Whoops... There was an error reading from the iTunes Store. Please try again."

// State represents the current UI screen.
type State int

const (
	// StateList shows the query box and the sorted result list.
	StateList State = iota

	// StateLandscape shows the results as a paged grid of thumbnails.
	StateLandscape
)

// Message types
type (
	// CallbackMsg carries session and loader work onto the Update loop.
	CallbackMsg struct {
		fn func()
	}

	// StateMsg is sent when the search state changes.
	StateMsg struct {
		State model.SearchState
	}

	// SearchErrorMsg is sent when the latest search fails.
	SearchErrorMsg struct {
		Err error
	}

	// ThumbnailMsg is sent when a thumbnail request finishes.
	ThumbnailMsg struct {
		Result thumbnail.Result
	}
)

// tile is the landscape cell state for one result.
type tile struct {
	state model.ThumbnailState
	color color.RGBA
}

// core is shared by every Model copy Bubble Tea makes.
type core struct {
	session *search.Session
	loader  *thumbnail.Loader
	logger  *slog.Logger
	logs    *logRing

	// send delivers messages to the running program. It is set before the
	// program starts and never changes afterwards.
	send func(tea.Msg)

	// pending holds messages emitted by callbacks running on the Update
	// loop; Update drains it before returning.
	pending []tea.Msg
}

func (c *core) dispatch(fn func()) {
	if c.send != nil {
		c.send(CallbackMsg{fn: fn})
	}
}

func (c *core) emit(msg tea.Msg) {
	c.pending = append(c.pending, msg)
}

func (c *core) onThumbnail(r thumbnail.Result) {
	c.emit(ThumbnailMsg{Result: r})
}

func (c *core) close() {
	c.session.Close()
	c.loader.Close()
}

// Deps overrides the collaborators NewModel builds from settings.
type Deps struct {
	Fetcher search.Fetcher
	Getter  http.Getter
	Verbose bool
}

// Model is the Bubble Tea model for the TUI.
type Model struct {
	state     State
	textInput textinput.Model
	spinner   spinner.Model
	progress  progress.Model
	settings  *config.Settings
	core      *core

	category model.Category
	search   model.SearchState
	notice   string

	// List view
	cursor int
	offset int

	// Landscape view
	layout grid.Layout
	page   int
	tiles  map[int]tile

	width  int
	height int
}

// NewModel creates a new TUI model.
func NewModel(settings *config.Settings, deps Deps) Model {
	if settings == nil {
		settings = config.DefaultSettings()
	}

	ti := textinput.New()
	ti.Placeholder = "Search the iTunes Store"
	ti.Focus()
	ti.CharLimit = 200
	ti.Width = 60

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 50

	level := slog.LevelInfo
	if deps.Verbose {
		level = slog.LevelDebug
	}
	c := &core{logs: &logRing{}}
	c.logger = slog.New(newRingHandler(c.logs, level))

	var client *http.Client
	if deps.Fetcher == nil || deps.Getter == nil {
		client = http.NewClient(settings.ToClientOptions()...)
	}
	fetcher := deps.Fetcher
	if fetcher == nil {
		fetcher = itunes.NewFetcher(client, settings.ToFetcherOptions()...)
	}
	getter := deps.Getter
	if getter == nil {
		getter = client
	}

	d := dispatch.Func(c.dispatch)
	c.session = search.New(fetcher,
		search.WithDispatcher(d),
		search.WithLogger(c.logger),
		search.OnChange(func(s model.SearchState) { c.emit(StateMsg{State: s}) }),
		search.OnError(func(err error) { c.emit(SearchErrorMsg{Err: err}) }),
	)
	loaderOpts := append(settings.ToLoaderOptions(), thumbnail.WithLogger(c.logger))
	c.loader = thumbnail.NewLoader(getter, d, loaderOpts...)

	m := Model{
		state:     StateList,
		textInput: ti,
		spinner:   sp,
		progress:  prog,
		settings:  settings,
		core:      c,
		search:    model.NotSearchedState(),
		tiles:     make(map[int]tile),
	}
	m.relayout()
	return m
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m, cmd := m.update(msg)
	cmds := []tea.Cmd{cmd}

	for len(m.core.pending) > 0 {
		next := m.core.pending[0]
		m.core.pending = m.core.pending[1:]
		m, cmd = m.update(next)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = clamp(msg.Width-20, 20, 80)
		m.textInput.Width = clamp(msg.Width-10, 20, 80)
		m.relayout()
		if m.state == StateLandscape {
			m.requestVisible()
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.core.close()
			return m, tea.Quit
		}
		if m.state == StateLandscape {
			return m.updateLandscapeKeys(msg)
		}
		return m.updateListKeys(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case CallbackMsg:
		msg.fn()
		return m, nil

	case StateMsg:
		m.search = msg.State
		m.cursor, m.offset, m.page = 0, 0, 0
		m.resetThumbnails()
		m.relayout()
		if m.state == StateLandscape {
			m.requestVisible()
		}
		if msg.State.Kind == model.StateResults {
			m.core.logger.Info("results ready", "count", msg.State.Len())
		}
		return m, nil

	case SearchErrorMsg:
		m.notice = networkErrorText
		return m, nil

	case ThumbnailMsg:
		r := msg.Result
		t := tile{state: r.State}
		if r.State == model.ThumbnailDone && r.Image != nil {
			t.color = imaging.AverageColor(r.Image)
		}
		m.tiles[int(r.Slot)] = t
		return m, nil
	}

	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

func (m Model) updateListKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.core.close()
		return m, tea.Quit

	case "enter":
		m.submit()
		return m, m.spinner.Tick

	case "tab":
		m.category = m.category.Next()
		m.submit()
		return m, nil

	case "shift+tab":
		for range len(model.Categories) - 1 {
			m.category = m.category.Next()
		}
		m.submit()
		return m, nil

	case "up":
		if m.cursor > 0 {
			m.cursor--
		}
		m.scrollToCursor()
		return m, nil

	case "down":
		if m.cursor < m.search.Len()-1 {
			m.cursor++
		}
		m.scrollToCursor()
		return m, nil

	case "ctrl+t":
		m.state = StateLandscape
		m.page = 0
		m.relayout()
		m.requestVisible()
		return m, nil
	}

	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

func (m Model) updateLandscapeKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "ctrl+t":
		m.state = StateList
		m.resetThumbnails()
	case "q":
		m.core.close()
		return m, tea.Quit
	case "left", "h":
		if m.page > 0 {
			m.page--
			m.requestVisible()
		}
	case "right", "l":
		if m.page < m.layout.PageCount-1 {
			m.page++
			m.requestVisible()
		}
	}
	return m, nil
}

// submit starts a search for the current input and category.
func (m *Model) submit() {
	q := model.Query{Text: strings.TrimSpace(m.textInput.Value()), Category: m.category}
	if q.IsEmpty() {
		return
	}
	m.notice = ""
	m.core.logger.Info("searching", "term", q.Text, "category", q.Category.String())
	m.core.session.Submit(q)
}

func (m *Model) scrollToCursor() {
	rows := m.listRows()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+rows {
		m.offset = m.cursor - rows + 1
	}
}

// viewportWidth converts the terminal width to layout points.
func (m Model) viewportWidth() float64 {
	return float64(m.width) * m.settings.PointsPerCell
}

func (m *Model) relayout() {
	p := m.settings.MatchMode().Select(m.viewportWidth())
	m.layout = grid.ComputeLayoutWith(p, m.search.Len())
	if m.page >= m.layout.PageCount {
		m.page = m.layout.PageCount - 1
	}
}

// requestVisible asks for thumbnails of the current page and releases
// requests for slots that scrolled away.
func (m *Model) requestVisible() {
	visible := m.layout.ItemsOnPage(m.page)
	onPage := make(map[int]bool, len(visible))
	for _, idx := range visible {
		onPage[idx] = true
	}

	for idx, t := range m.tiles {
		if t.state == model.ThumbnailPending && !onPage[idx] {
			m.core.loader.Release(thumbnail.Slot(idx))
			delete(m.tiles, idx)
		}
	}

	for _, idx := range visible {
		if _, ok := m.tiles[idx]; ok {
			continue
		}
		r := m.search.Results[idx]
		m.tiles[idx] = tile{state: model.ThumbnailPending}
		m.core.loader.Request(thumbnail.Slot(idx), r.ID, r.ArtworkSmallURL, m.core.onThumbnail)
	}
}

func (m *Model) resetThumbnails() {
	m.core.loader.CancelAll()
	m.tiles = make(map[int]tile)
}

// loadedOnPage returns how many thumbnails of the current page finished.
func (m Model) loadedOnPage() (done, total int) {
	visible := m.layout.ItemsOnPage(m.page)
	for _, idx := range visible {
		if t, ok := m.tiles[idx]; ok && t.state.IsFinished() {
			done++
		}
	}
	return done, len(visible)
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}

// Run starts the TUI application.
func Run(settings *config.Settings, verbose bool) error {
	m := NewModel(settings, Deps{Verbose: verbose})
	p := tea.NewProgram(m, tea.WithAltScreen())
	m.core.send = p.Send
	defer m.core.close()

	_, err := p.Run()
	return err
}

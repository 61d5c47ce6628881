package tui

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/handiism/storesearch/internal/model"
)

// tileHeight is the number of terminal lines per landscape cell.
const tileHeight = 3

// View renders the UI.
func (m Model) View() string {
	var b strings.Builder

	// Header
	b.WriteString(titleStyle.Render("♫ StoreSearch"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Search the iTunes Store"))
	b.WriteString("\n\n")

	switch m.state {
	case StateList:
		b.WriteString(m.viewList())
	case StateLandscape:
		b.WriteString(m.viewLandscape())
	}

	if m.notice != "" {
		b.WriteString("\n")
		b.WriteString(boxStyle.Render(errorStyle.Render(m.notice)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.renderLogs())

	// Footer
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.getHelpText()))

	return b.String()
}

func (m Model) viewList() string {
	var b strings.Builder

	b.WriteString(m.renderTabs())
	b.WriteString("\n\n")
	b.WriteString(m.textInput.View())
	b.WriteString("\n\n")

	switch m.search.Kind {
	case model.StateNotSearched:
		b.WriteString(dimStyle.Render("Type a search term and press enter."))
		b.WriteString("\n")
	case model.StateLoading:
		b.WriteString(m.spinner.View())
		b.WriteString(" ")
		b.WriteString(subtitleStyle.Render("Loading..."))
		b.WriteString("\n")
	case model.StateNoResults:
		b.WriteString(warningStyle.Render("Nothing Found"))
		b.WriteString("\n")
	case model.StateResults:
		b.WriteString(m.renderResults())
	}

	return b.String()
}

func (m Model) renderTabs() string {
	tabs := make([]string, 0, len(model.Categories))
	for _, c := range model.Categories {
		if c == m.category {
			tabs = append(tabs, activeTabStyle.Render(c.String()))
		} else {
			tabs = append(tabs, tabStyle.Render(c.String()))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

// listRows is how many results fit on screen below the header.
func (m Model) listRows() int {
	return max(5, m.height-22)
}

func (m Model) renderResults() string {
	var b strings.Builder

	results := m.search.Results
	end := min(len(results), m.offset+m.listRows())
	for i := m.offset; i < end; i++ {
		r := results[i]
		artist := r.ArtistName
		if artist == "" {
			artist = "Unknown"
		}
		detail := dimStyle.Render(fmt.Sprintf("%s (%s)", artist, r.KindForDisplay()))
		if i == m.cursor {
			b.WriteString(selectedStyle.Render("› " + r.Name))
		} else {
			b.WriteString(nameStyle.Render("  " + r.Name))
		}
		b.WriteString("  ")
		b.WriteString(detail)
		b.WriteString("\n")
	}

	b.WriteString(infoStyle.Render(fmt.Sprintf("%d/%d", m.cursor+1, len(results))))
	b.WriteString("\n")
	return b.String()
}

func (m Model) viewLandscape() string {
	var b strings.Builder

	switch m.search.Kind {
	case model.StateLoading:
		b.WriteString(m.spinner.View())
		b.WriteString(" ")
		b.WriteString(subtitleStyle.Render("Loading..."))
		b.WriteString("\n")
		return b.String()
	case model.StateNoResults:
		b.WriteString(warningStyle.Render("Nothing Found"))
		b.WriteString("\n")
		return b.String()
	case model.StateNotSearched:
		b.WriteString(dimStyle.Render("No search yet."))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(m.renderGrid())
	b.WriteString("\n\n")
	b.WriteString(m.renderPageControl())
	b.WriteString("\n\n")

	done, total := m.loadedOnPage()
	var percent float64
	if total > 0 {
		percent = float64(done) / float64(total)
	}
	b.WriteString(m.progress.ViewAs(percent))
	b.WriteString("\n")
	status := infoStyle
	if total > 0 && done == total {
		status = successStyle
	}
	b.WriteString(status.Render(fmt.Sprintf(
		"Thumbnails: %d/%d | Layout: %s %dx%d",
		done, total,
		m.layout.Profile.Name,
		m.layout.Profile.ColumnsPerPage,
		m.layout.Profile.RowsPerPage,
	)))
	b.WriteString("\n")

	return b.String()
}

func (m Model) cellWidth() int {
	return max(6, m.width/m.layout.Profile.ColumnsPerPage-1)
}

func (m Model) renderGrid() string {
	p := m.layout.Profile
	w := m.cellWidth()
	blank := lipgloss.NewStyle().Width(w + 1).Height(tileHeight).Render("")

	cells := make([][]string, p.RowsPerPage)
	for r := range cells {
		cells[r] = make([]string, p.ColumnsPerPage)
		for c := range cells[r] {
			cells[r][c] = blank
		}
	}
	for _, idx := range m.layout.ItemsOnPage(m.page) {
		pl := m.layout.Items[idx].Placement
		cells[pl.Row][pl.Column] = m.renderTile(idx, w)
	}

	rows := make([]string, 0, len(cells))
	for _, row := range cells {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m Model) renderTile(idx, width int) string {
	r := m.search.Results[idx]

	var swatch string
	t, ok := m.tiles[idx]
	if ok && t.state == model.ThumbnailDone {
		hex := fmt.Sprintf("#%02X%02X%02X", t.color.R, t.color.G, t.color.B)
		swatch = lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).Render(strings.Repeat("█", width))
	} else {
		swatch = placeholderTileStyle.Render(strings.Repeat("·", width))
	}

	lines := []string{swatch, swatch, dimStyle.Render(truncate(r.Name, width))}
	return lipgloss.NewStyle().Width(width + 1).Render(strings.Join(lines, "\n"))
}

func (m Model) renderPageControl() string {
	if m.layout.PageCount > 20 {
		return infoStyle.Render(fmt.Sprintf("Page %d/%d", m.page+1, m.layout.PageCount))
	}
	dots := make([]string, m.layout.PageCount)
	for i := range dots {
		if i == m.page {
			dots[i] = "●"
		} else {
			dots[i] = "○"
		}
	}
	return infoStyle.Render(strings.Join(dots, " "))
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n <= 1 {
		return string(runes[:n])
	}
	return string(runes[:n-1]) + "…"
}

func (m Model) renderLogs() string {
	var b strings.Builder

	for _, log := range m.core.logs.snapshot() {
		var style lipgloss.Style
		prefix := "•"
		switch {
		case log.Level >= slog.LevelError:
			style = errorStyle
			prefix = "✗"
		case log.Level >= slog.LevelWarn:
			style = warningStyle
			prefix = "!"
		case log.Level >= slog.LevelInfo:
			style = infoStyle
			prefix = "›"
		default:
			style = dimStyle
		}
		b.WriteString(style.Render(prefix + " " + log.Message))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) getHelpText() string {
	switch m.state {
	case StateList:
		return "enter: search • tab: category • ↑/↓: select • ctrl+t: landscape • esc: quit"
	case StateLandscape:
		return "←/→: page • esc: back • q: quit"
	}
	return ""
}

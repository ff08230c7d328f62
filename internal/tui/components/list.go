package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/xtconsole/internal/filter"
	"github.com/mmcdole/xtconsole/internal/tui/styles"
)

const (
	// BorderHeight is the top+bottom border of a bordered panel
	BorderHeight = 2
	// BorderWidth is the left+right border of a bordered panel
	BorderWidth = 2
	// ScrollIndicatorLines reserves the "more" lines above and below the rows
	ScrollIndicatorLines = 2
)

// RowRenderer renders the source row idx at the given width
type RowRenderer func(idx int, selected bool, width int) string

// List is a scrollable, filterable cursor over a slice of rows.
// It knows only the row titles; the caller renders the rows.
type List struct {
	title  string
	empty  string
	titles []string

	cursor     int
	offset     int
	maxVisible int

	width   int
	height  int
	focused bool

	filterActive bool
	filterInput  textinput.Model
	filteredIdx  []int // indices into titles, nil when unfiltered
}

// NewList creates a list with a panel title and an empty-state placeholder
func NewList(title, empty string) List {
	ti := textinput.New()
	ti.Placeholder = "type to filter..."
	ti.Prompt = "/ "
	ti.PromptStyle = styles.FilterPromptStyle
	ti.TextStyle = styles.FilterStyle

	return List{
		title:       title,
		empty:       empty,
		filterInput: ti,
	}
}

// SetTitles replaces the rows. The filter is re-applied and the cursor clamped.
func (l *List) SetTitles(titles []string) {
	l.titles = titles
	if l.filterActive {
		l.applyFilter(false)
	}
	l.clamp()
}

// SetTitle changes the panel title
func (l *List) SetTitle(title string) {
	l.title = title
}

// SetSize sets the outer size of the panel
func (l *List) SetSize(width, height int) {
	l.width = width
	l.height = height
	l.recalcMaxVisible()
	l.ensureVisible()
}

// SetFocused marks the panel as the key target
func (l *List) SetFocused(focused bool) {
	l.focused = focused
}

// Len returns the number of visible rows
func (l List) Len() int {
	if l.filteredIdx != nil {
		return len(l.filteredIdx)
	}
	return len(l.titles)
}

// Selected returns the source index under the cursor, -1 when there is none
func (l List) Selected() int {
	if l.Len() == 0 {
		return -1
	}
	return l.mapIndex(l.cursor)
}

// StartFilter opens the filter input
func (l *List) StartFilter() {
	l.filterActive = true
	l.filterInput.Focus()
	l.recalcMaxVisible()
}

// IsFiltering reports whether a filter is applied
func (l List) IsFiltering() bool {
	return l.filterActive
}

// IsFilterTyping reports whether keystrokes go to the filter input
func (l List) IsFilterTyping() bool {
	return l.filterActive && l.filterInput.Focused()
}

// ClearFilter drops the filter and shows every row
func (l *List) ClearFilter() {
	l.filterActive = false
	l.filteredIdx = nil
	l.filterInput.SetValue("")
	l.filterInput.Blur()
	l.recalcMaxVisible()
	l.clamp()
}

// Update handles cursor movement and filter typing
func (l List) Update(msg tea.Msg) (List, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return l, nil
	}

	if l.IsFilterTyping() {
		switch keyMsg.String() {
		case "esc":
			l.ClearFilter()
			return l, nil
		case "enter":
			l.filterInput.Blur()
			return l, nil
		case "backspace":
			if l.filterInput.Value() == "" {
				l.ClearFilter()
				return l, nil
			}
		}

		var cmd tea.Cmd
		l.filterInput, cmd = l.filterInput.Update(msg)
		l.applyFilter(true)
		return l, cmd
	}

	count := l.Len()
	if count == 0 {
		return l, nil
	}

	switch keyMsg.String() {
	case "j", "down":
		if l.cursor < count-1 {
			l.cursor++
		}
	case "k", "up":
		if l.cursor > 0 {
			l.cursor--
		}
	case "g", "home":
		l.cursor = 0
	case "G", "end":
		l.cursor = count - 1
	case "ctrl+d", "pgdown":
		l.cursor += max(l.maxVisible/2, 1)
		if l.cursor >= count {
			l.cursor = count - 1
		}
	case "ctrl+u", "pgup":
		l.cursor -= max(l.maxVisible/2, 1)
		if l.cursor < 0 {
			l.cursor = 0
		}
	}
	l.ensureVisible()
	return l, nil
}

// View renders the bordered panel, calling render for each visible row
func (l List) View(render RowRenderer) string {
	style := styles.InactiveBorder
	if l.focused {
		style = styles.ActiveBorder
	}

	itemWidth := l.width - BorderWidth
	if itemWidth < 10 {
		itemWidth = 10
	}

	lines := []string{styles.AccentStyle.Render(l.title)}
	if l.filterActive {
		lines = append(lines, l.filterInput.View())
	}

	count := l.Len()
	if count == 0 {
		empty := l.empty
		if l.filterActive && l.filterInput.Value() != "" {
			empty = "No matches"
		}
		lines = append(lines, "", styles.DimStyle.Render(empty))
	} else {
		header := " "
		if l.offset > 0 {
			header = styles.DimStyle.Render("↑ more")
		}
		lines = append(lines, header)

		end := min(l.offset+l.maxVisible, count)
		for i := l.offset; i < end; i++ {
			lines = append(lines, render(l.mapIndex(i), i == l.cursor && l.focused, itemWidth))
		}

		footer := " "
		if end < count {
			footer = styles.DimStyle.Render("↓ more")
		}
		lines = append(lines, footer)
	}

	frameW, frameH := style.GetFrameSize()
	return style.
		Width(max(l.width-frameW, 1)).
		Height(max(l.height-frameH, 1)).
		Render(strings.Join(lines, "\n"))
}

func (l List) mapIndex(i int) int {
	if l.filteredIdx != nil {
		return l.filteredIdx[i]
	}
	return i
}

func (l *List) applyFilter(resetCursor bool) {
	l.filteredIdx = filter.Indexes(l.filterInput.Value(), l.titles)
	if resetCursor {
		l.cursor = 0
		l.offset = 0
	}
}

func (l *List) clamp() {
	count := l.Len()
	if l.cursor >= count {
		l.cursor = count - 1
	}
	if l.cursor < 0 {
		l.cursor = 0
	}
	l.ensureVisible()
}

func (l *List) recalcMaxVisible() {
	l.maxVisible = l.height - BorderHeight - ScrollIndicatorLines - 1
	if l.filterActive {
		l.maxVisible--
	}
	if l.maxVisible < 1 {
		l.maxVisible = 1
	}
}

func (l *List) ensureVisible() {
	if l.maxVisible <= 0 {
		return
	}
	if l.cursor < l.offset {
		l.offset = l.cursor
	}
	if l.cursor >= l.offset+l.maxVisible {
		l.offset = l.cursor - l.maxVisible + 1
	}
}

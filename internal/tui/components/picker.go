package components

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/xtconsole/internal/console"
	"github.com/mmcdole/xtconsole/internal/filter"
	"github.com/mmcdole/xtconsole/internal/tui/styles"
)

// PickerView is the cursor and type-to-narrow query over one category picker.
// The selection itself lives in the console.Picker it is given.
type PickerView struct {
	cursor int
	query  string
}

// Reset clears the cursor and query
func (v *PickerView) Reset() {
	v.cursor = 0
	v.query = ""
}

// Query returns the current narrowing query
func (v PickerView) Query() string {
	return v.query
}

func (v PickerView) visible(p *console.Picker) []console.Option {
	opts := p.Options()
	labels := make([]string, len(opts))
	for i, o := range opts {
		labels[i] = o.Label
	}
	idx := filter.Options(v.query, labels)
	out := make([]console.Option, len(idx))
	for i, j := range idx {
		out[i] = opts[j]
	}
	return out
}

// Update moves the cursor, toggles the option under it with space, and
// narrows options as the operator types.
func (v PickerView) Update(msg tea.Msg, p *console.Picker) PickerView {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return v
	}

	opts := v.visible(p)
	switch keyMsg.Type {
	case tea.KeyUp:
		if v.cursor > 0 {
			v.cursor--
		}
	case tea.KeyDown:
		if v.cursor < len(opts)-1 {
			v.cursor++
		}
	case tea.KeySpace:
		if v.cursor < len(opts) {
			p.Toggle(opts[v.cursor].ID)
		}
	case tea.KeyBackspace:
		if v.query != "" {
			r := []rune(v.query)
			v.query = string(r[:len(r)-1])
			v.cursor = 0
		}
	case tea.KeyRunes:
		v.query += string(keyMsg.Runes)
		v.cursor = 0
	}

	if n := len(v.visible(p)); v.cursor >= n {
		v.cursor = max(n-1, 0)
	}
	return v
}

// View renders the picker as a checkbox column of at most height options
func (v PickerView) View(p *console.Picker, focused bool, width, height int) string {
	titleStyle := styles.SubtitleStyle
	if focused {
		titleStyle = styles.AccentStyle
	}
	title := fmt.Sprintf("%s (%d)", p.Category, len(p.Selected()))
	lines := []string{titleStyle.Render(title)}
	if v.query != "" {
		lines = append(lines, styles.FilterPromptStyle.Render("/ ")+styles.FilterStyle.Render(v.query))
	}

	opts := v.visible(p)
	if len(p.Options()) == 0 {
		lines = append(lines, styles.DimStyle.Render("no "+string(p.Category.EligibleMode())+" playlists"))
	}

	start := 0
	if height > 0 && v.cursor >= height {
		start = v.cursor - height + 1
	}
	for i := start; i < len(opts) && (height <= 0 || i < start+height); i++ {
		o := opts[i]
		box := "[ ]"
		if p.IsSelected(o.ID) {
			box = styles.CheckedStyle.Render("[x]")
		}
		label := truncate(o.Label, width-4)
		line := box + " " + label
		if focused && i == v.cursor {
			line = box + " " + styles.SelectedItemStyle.Render(label)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func truncate(s string, width int) string {
	if width <= 1 {
		return s
	}
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width-1]) + "…"
}

package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/xtconsole/internal/tui/styles"
)

// FieldSpec describes one form field
type FieldSpec struct {
	Label       string
	Placeholder string
	Default     string
	Choices     []string // Non-empty makes the field a choice cycled with left/right/space
}

// TextField is a free-text field
func TextField(label, placeholder string) FieldSpec {
	return FieldSpec{Label: label, Placeholder: placeholder}
}

// ChoiceField is a field restricted to choices, the first being the default
func ChoiceField(label string, choices ...string) FieldSpec {
	return FieldSpec{Label: label, Choices: choices}
}

type field struct {
	spec   FieldSpec
	input  textinput.Model
	choice int
}

// Form is a vertical stack of labelled inputs with one focused field
type Form struct {
	fields  []field
	focus   int
	focused bool
}

// NewForm builds a form from field specs
func NewForm(specs ...FieldSpec) Form {
	fields := make([]field, len(specs))
	for i, spec := range specs {
		ti := textinput.New()
		ti.Prompt = ""
		ti.Placeholder = spec.Placeholder
		ti.CharLimit = 1024
		ti.Width = 48
		ti.TextStyle = lipgloss.NewStyle().Foreground(styles.White)
		ti.PlaceholderStyle = styles.DimStyle
		ti.SetValue(spec.Default)
		fields[i] = field{spec: spec, input: ti}
	}
	return Form{fields: fields}
}

// Len returns the number of fields
func (f Form) Len() int {
	return len(f.fields)
}

// Value returns field i. Choice fields return the selected choice.
func (f Form) Value(i int) string {
	fd := f.fields[i]
	if len(fd.spec.Choices) > 0 {
		return fd.spec.Choices[fd.choice]
	}
	return fd.input.Value()
}

// SetValue sets field i. For a choice field an unknown value selects the first choice.
func (f *Form) SetValue(i int, v string) {
	fd := &f.fields[i]
	if len(fd.spec.Choices) > 0 {
		fd.choice = 0
		for j, c := range fd.spec.Choices {
			if c == v {
				fd.choice = j
			}
		}
		return
	}
	fd.input.SetValue(v)
	fd.input.CursorEnd()
}

// Reset restores every field to its default
func (f *Form) Reset() {
	for i := range f.fields {
		f.fields[i].choice = 0
		f.fields[i].input.SetValue(f.fields[i].spec.Default)
	}
}

// Focus gives keyboard focus to the form, on the current field
func (f *Form) Focus() {
	f.focused = true
	f.syncFocus()
}

// FocusField focuses the form on field i
func (f *Form) FocusField(i int) {
	if i >= 0 && i < len(f.fields) {
		f.focus = i
	}
	f.Focus()
}

// Blur removes keyboard focus
func (f *Form) Blur() {
	f.focused = false
	f.syncFocus()
}

// Focused reports whether the form has keyboard focus
func (f Form) Focused() bool {
	return f.focused
}

// FocusIndex returns the focused field
func (f Form) FocusIndex() int {
	return f.focus
}

// Next moves focus down; it reports false when already on the last field
func (f *Form) Next() bool {
	if f.focus >= len(f.fields)-1 {
		return false
	}
	f.focus++
	f.syncFocus()
	return true
}

// Prev moves focus up; it reports false when already on the first field
func (f *Form) Prev() bool {
	if f.focus == 0 {
		return false
	}
	f.focus--
	f.syncFocus()
	return true
}

func (f *Form) syncFocus() {
	for i := range f.fields {
		if f.focused && i == f.focus {
			f.fields[i].input.Focus()
		} else {
			f.fields[i].input.Blur()
		}
	}
}

// Update routes a key to the focused field. Navigation between fields is
// left to the caller so forms can be chained with other widgets.
func (f Form) Update(msg tea.Msg) (Form, tea.Cmd) {
	if !f.focused || len(f.fields) == 0 {
		return f, nil
	}

	fd := &f.fields[f.focus]
	if choices := fd.spec.Choices; len(choices) > 0 {
		if keyMsg, ok := msg.(tea.KeyMsg); ok {
			switch keyMsg.String() {
			case "left", "h":
				fd.choice = (fd.choice + len(choices) - 1) % len(choices)
			case "right", "l", " ":
				fd.choice = (fd.choice + 1) % len(choices)
			}
		}
		return f, nil
	}

	var cmd tea.Cmd
	fd.input, cmd = fd.input.Update(msg)
	return f, cmd
}

// View renders the fields one per line
func (f Form) View() string {
	lines := make([]string, len(f.fields))
	for i, fd := range f.fields {
		label := styles.LabelStyle.Render(fd.spec.Label)
		if f.focused && i == f.focus {
			label = styles.FocusedLabelStyle.Render(fd.spec.Label)
		}
		lines[i] = label + " " + fd.render(f.focused && i == f.focus)
	}
	return strings.Join(lines, "\n")
}

func (fd field) render(focused bool) string {
	if len(fd.spec.Choices) == 0 {
		return fd.input.View()
	}
	parts := make([]string, len(fd.spec.Choices))
	for i, c := range fd.spec.Choices {
		switch {
		case i == fd.choice && focused:
			parts[i] = styles.ActiveTabStyle.Render(c)
		case i == fd.choice:
			parts[i] = styles.AccentStyle.Render("[" + c + "]")
		default:
			parts[i] = styles.DimStyle.Render(" " + c + " ")
		}
	}
	return strings.Join(parts, " ")
}

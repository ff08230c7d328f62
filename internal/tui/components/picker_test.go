package components

import (
	"testing"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/xtconsole/internal/console"
	"github.com/mmcdole/xtconsole/internal/domain"
	"github.com/stretchr/testify/require"
)

func TestPickerBackspaceRemovesWholeRune(t *testing.T) {
	p := console.NewPickers().Get(domain.CategoryMovies)
	p.SetOptions([]console.Option{{ID: "1", Label: "Novità"}, {ID: "2", Label: "Film"}})

	var v PickerView
	v = v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("novità")}, p)
	require.Equal(t, "novità", v.Query())

	v = v.Update(tea.KeyMsg{Type: tea.KeyBackspace}, p)
	require.Equal(t, "novit", v.Query())
	require.True(t, utf8.ValidString(v.Query()))

	for i := 0; i < 10; i++ {
		v = v.Update(tea.KeyMsg{Type: tea.KeyBackspace}, p)
	}
	require.Empty(t, v.Query())
}

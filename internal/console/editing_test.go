package console

import (
	"testing"

	"github.com/mmcdole/xtconsole/internal/domain"
	"github.com/stretchr/testify/require"
)

func editorWithLists() *Editor {
	e := NewEditor()
	e.Pickers().Sync([]*domain.Playlist{
		pl("1", "News", domain.ModeTV),
		pl("2", "Films", domain.ModeVideo),
		pl("3", "Docs", domain.ModeVideo),
	})
	return e
}

func TestEditorStartsCreating(t *testing.T) {
	e := NewEditor()
	require.True(t, e.Target().IsCreating())
	require.Equal(t, "Create", e.SubmitLabel())
	require.Equal(t, "12", e.Form.Interval)
}

func TestEditSwitchesTargetWithoutResidue(t *testing.T) {
	e := editorWithLists()

	a := &domain.XtreamAccount{
		ID: "a", Name: "Alpha", Username: "ua", Password: "pa", RefreshIntervalHours: 6,
		Categories: domain.CategorySelection{Live: []string{"1"}, Movies: []string{"2", "3"}},
	}
	b := &domain.XtreamAccount{
		ID: "b", Name: "Beta", Username: "ub", Password: "pb", RefreshIntervalHours: 24,
		Categories: domain.CategorySelection{Series: []string{"3"}},
	}

	e.Edit(a)
	require.Equal(t, Editing("a"), e.Target())
	require.Equal(t, "Update", e.SubmitLabel())

	e.Edit(b)
	require.Equal(t, Editing("b"), e.Target())
	require.Equal(t, AccountForm{Name: "Beta", Username: "ub", Password: "pb", Interval: "24"}, e.Form)

	sel := e.Pickers().Selection()
	require.Empty(t, sel.Live)
	require.Empty(t, sel.Movies)
	require.Equal(t, []string{"3"}, sel.Series)
	require.Empty(t, sel.Mixed)
}

func TestResetClearsEverything(t *testing.T) {
	e := editorWithLists()
	e.Edit(&domain.XtreamAccount{
		ID: "a", Name: "Alpha", Username: "u", Password: "p", RefreshIntervalHours: 3,
		Categories: domain.CategorySelection{Live: []string{"1"}},
	})

	e.Reset()

	require.True(t, e.Target().IsCreating())
	require.Equal(t, AccountForm{Interval: "12"}, e.Form)
	require.Empty(t, e.Pickers().Selection().Live)
}

func TestDraftRequiresCredentials(t *testing.T) {
	e := NewEditor()
	e.Form.Name = "acc"

	_, err := e.Draft()
	require.Error(t, err)

	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	require.Equal(t, []string{"username", "password"}, ve.Fields)
}

func TestDraftReadsFormAndPickers(t *testing.T) {
	e := editorWithLists()
	e.Form = AccountForm{Name: " acc ", Username: "user", Password: " p ", Interval: "abc"}
	e.Pickers().Get(domain.CategoryLive).Toggle("1")
	e.Pickers().Get(domain.CategoryMixed).Toggle("3")

	d, err := e.Draft()
	require.NoError(t, err)
	require.Equal(t, "acc", d.Name)
	require.Equal(t, " p ", d.Password)
	require.Equal(t, 12, d.EveryHours)
	require.Equal(t, []string{"1"}, d.Categories.Live)
	require.Equal(t, []string{"3"}, d.Categories.Mixed)
}

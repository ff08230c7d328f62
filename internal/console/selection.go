package console

import (
	"github.com/mmcdole/xtconsole/internal/domain"
)

// Option is one selectable playlist in a category picker
type Option struct {
	ID    string
	Label string
}

// OptionsFor returns the playlists eligible for a category, in collection order
func OptionsFor(c domain.Category, playlists []*domain.Playlist) []Option {
	mode := c.EligibleMode()
	opts := make([]Option, 0, len(playlists))
	for _, p := range playlists {
		if p.Mode != mode {
			continue
		}
		label := p.Name
		if label == "" {
			label = p.ID
		}
		opts = append(opts, Option{ID: p.ID, Label: label})
	}
	return opts
}

// OptionSets derives the four category option sets from a playlist collection.
// Live gets tv playlists; Movies, Series and Mixed share the video playlists.
func OptionSets(playlists []*domain.Playlist) map[domain.Category][]Option {
	sets := make(map[domain.Category][]Option, 4)
	for _, c := range domain.Categories() {
		sets[c] = OptionsFor(c, playlists)
	}
	return sets
}

// Picker is a multi-select over a category's option set
type Picker struct {
	Category domain.Category
	options  []Option
	selected map[string]bool
}

func newPicker(c domain.Category) *Picker {
	return &Picker{Category: c, selected: make(map[string]bool)}
}

// Options returns the offered options
func (p *Picker) Options() []Option {
	return p.options
}

// SetOptions installs a new option set. Selections still offered survive;
// the rest are dropped.
func (p *Picker) SetOptions(opts []Option) {
	offered := make(map[string]bool, len(opts))
	for _, o := range opts {
		offered[o.ID] = true
	}
	for id := range p.selected {
		if !offered[id] {
			delete(p.selected, id)
		}
	}
	p.options = opts
}

// Offers reports whether id is one of the options
func (p *Picker) Offers(id string) bool {
	for _, o := range p.options {
		if o.ID == id {
			return true
		}
	}
	return false
}

// IsSelected reports whether id is selected
func (p *Picker) IsSelected(id string) bool {
	return p.selected[id]
}

// Toggle flips the selection of an offered id
func (p *Picker) Toggle(id string) {
	if !p.Offers(id) {
		return
	}
	if p.selected[id] {
		delete(p.selected, id)
	} else {
		p.selected[id] = true
	}
}

// Select marks ids as selected. Ids that are not offered are ignored.
func (p *Picker) Select(ids []string) {
	for _, id := range ids {
		if p.Offers(id) {
			p.selected[id] = true
		}
	}
}

// Clear deselects everything
func (p *Picker) Clear() {
	p.selected = make(map[string]bool)
}

// Selected returns the selected ids in option order
func (p *Picker) Selected() []string {
	ids := make([]string, 0, len(p.selected))
	for _, o := range p.options {
		if p.selected[o.ID] {
			ids = append(ids, o.ID)
		}
	}
	return ids
}

// Pickers holds one picker per category
type Pickers struct {
	byCategory map[domain.Category]*Picker
}

// NewPickers creates empty pickers for every category
func NewPickers() *Pickers {
	ps := &Pickers{byCategory: make(map[domain.Category]*Picker, 4)}
	for _, c := range domain.Categories() {
		ps.byCategory[c] = newPicker(c)
	}
	return ps
}

// Get returns the picker of a category
func (ps *Pickers) Get(c domain.Category) *Picker {
	return ps.byCategory[c]
}

// Sync recomputes every option set from the playlist collection, keeping
// selections whose playlist is still eligible.
func (ps *Pickers) Sync(playlists []*domain.Playlist) {
	for c, opts := range OptionSets(playlists) {
		ps.byCategory[c].SetOptions(opts)
	}
}

// Load replaces every picker's selection with the account's references
func (ps *Pickers) Load(sel domain.CategorySelection) {
	for _, c := range domain.Categories() {
		p := ps.byCategory[c]
		p.Clear()
		p.Select(sel.Get(c))
	}
}

// Clear deselects every picker
func (ps *Pickers) Clear() {
	for _, p := range ps.byCategory {
		p.Clear()
	}
}

// Selection reads the pickers as a CategorySelection
func (ps *Pickers) Selection() domain.CategorySelection {
	var sel domain.CategorySelection
	for _, c := range domain.Categories() {
		sel.Set(c, ps.byCategory[c].Selected())
	}
	return sel
}

package console

import (
	"strconv"
	"strings"

	"github.com/mmcdole/xtconsole/internal/domain"
)

// EditingTarget is the account form's state: Creating, or Editing one account.
// The zero value is Creating.
type EditingTarget struct {
	id string
}

// Creating returns the create-mode target
func Creating() EditingTarget {
	return EditingTarget{}
}

// Editing returns the target for updating account id
func Editing(id string) EditingTarget {
	return EditingTarget{id: id}
}

// IsCreating reports whether the form creates a new account
func (t EditingTarget) IsCreating() bool {
	return t.id == ""
}

// ID returns the account being edited, "" when creating
func (t EditingTarget) ID() string {
	return t.id
}

func (t EditingTarget) String() string {
	if t.IsCreating() {
		return "creating"
	}
	return "editing(" + t.id + ")"
}

// AccountForm is the text content of the account form
type AccountForm struct {
	Name     string
	Username string
	Password string
	Interval string
}

func blankForm() AccountForm {
	return AccountForm{Interval: strconv.Itoa(domain.DefaultRefreshHours)}
}

// Editor owns the account form: the editing target, the text fields and
// the four category pickers. Only one account can be edited at a time.
type Editor struct {
	target  EditingTarget
	Form    AccountForm
	pickers *Pickers
}

// NewEditor returns an editor in Creating state
func NewEditor() *Editor {
	return &Editor{
		Form:    blankForm(),
		pickers: NewPickers(),
	}
}

// Target returns the current editing target
func (e *Editor) Target() EditingTarget {
	return e.target
}

// Pickers returns the category pickers
func (e *Editor) Pickers() *Pickers {
	return e.pickers
}

// Edit switches to Editing(account) and repopulates every field from it
func (e *Editor) Edit(account *domain.XtreamAccount) {
	e.target = Editing(account.ID)
	e.Form = AccountForm{
		Name:     account.Name,
		Username: account.Username,
		Password: account.Password,
		Interval: strconv.Itoa(account.RefreshIntervalHours),
	}
	e.pickers.Load(account.Categories)
}

// Reset returns to Creating with every field at its default
func (e *Editor) Reset() {
	e.target = Creating()
	e.Form = blankForm()
	e.pickers.Clear()
}

// SubmitLabel is the form's submit button text
func (e *Editor) SubmitLabel() string {
	if e.target.IsCreating() {
		return "Create"
	}
	return "Update"
}

// Draft validates the form and builds the account payload.
// Name, username and password are required.
func (e *Editor) Draft() (domain.XtreamDraft, error) {
	name := strings.TrimSpace(e.Form.Name)
	username := strings.TrimSpace(e.Form.Username)
	password := e.Form.Password

	var missing []string
	if name == "" {
		missing = append(missing, "name")
	}
	if username == "" {
		missing = append(missing, "username")
	}
	if password == "" {
		missing = append(missing, "password")
	}
	if len(missing) > 0 {
		return domain.XtreamDraft{}, &domain.ValidationError{
			Fields:  missing,
			Message: "name, username and password are required",
		}
	}

	return domain.XtreamDraft{
		Name:       name,
		Username:   username,
		Password:   password,
		EveryHours: ParseInterval(e.Form.Interval),
		Categories: e.pickers.Selection(),
	}, nil
}

package application

import "github.com/bnema/ppl/internal/domain"

// FocusState tracks whether a field has ever been focused and left.
// NoLongerFocused is terminal: once a field could show an error it keeps
// being eligible to show one.
type FocusState int

const (
	NeverFocused FocusState = iota
	Focused
	NoLongerFocused
)

func (s FocusState) String() string {
	switch s {
	case NeverFocused:
		return "never_focused"
	case Focused:
		return "focused"
	case NoLongerFocused:
		return "no_longer_focused"
	default:
		return "unknown"
	}
}

type Field struct {
	value    string
	state    FocusState
	validate func(string) bool
}

func NewField(validate func(string) bool) Field {
	return Field{validate: validate}
}

func (f *Field) SetValue(value string) {
	f.value = value
}

func (f *Field) FocusChanged(focused bool) {
	switch {
	case focused && f.state == NeverFocused:
		f.state = Focused
	case !focused && f.state == Focused:
		f.state = NoLongerFocused
	}
}

func (f Field) Value() string {
	return f.value
}

func (f Field) State() FocusState {
	return f.state
}

func (f Field) Valid() bool {
	return f.validate != nil && f.validate(f.value)
}

// ShowError is recomputed from the focus state and the current value on
// every call.
func (f Field) ShowError() bool {
	return f.state == NoLongerFocused && !f.Valid()
}

type LoginForm struct {
	Email    Field
	Password Field
}

func NewLoginForm() *LoginForm {
	return &LoginForm{
		Email:    NewField(domain.IsValidEmail),
		Password: NewField(domain.IsValidPassword),
	}
}

func (f *LoginForm) LoginEnabled() bool {
	return !f.Email.ShowError() && !f.Password.ShowError()
}

// Submit reveals errors on both fields and reports whether the credentials
// pass validation.
func (f *LoginForm) Submit() (email, password string, ok bool) {
	f.Email.state = NoLongerFocused
	f.Password.state = NoLongerFocused

	if !f.Email.Valid() || !f.Password.Valid() {
		return "", "", false
	}

	return f.Email.value, f.Password.value, true
}

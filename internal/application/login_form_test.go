package application

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldFocusTransitions(t *testing.T) {
	field := NewField(func(v string) bool { return v == "ok" })
	require.Equal(t, NeverFocused, field.State())

	field.FocusChanged(false)
	assert.Equal(t, NeverFocused, field.State())

	field.FocusChanged(true)
	assert.Equal(t, Focused, field.State())

	field.FocusChanged(true)
	assert.Equal(t, Focused, field.State())

	field.FocusChanged(false)
	assert.Equal(t, NoLongerFocused, field.State())

	field.FocusChanged(true)
	assert.Equal(t, NoLongerFocused, field.State())
}

func TestFieldShowsErrorOnlyAfterLeavingWithInvalidValue(t *testing.T) {
	form := NewLoginForm()

	form.Email.SetValue("not-an-email")
	assert.False(t, form.Email.ShowError())

	form.Email.FocusChanged(true)
	assert.False(t, form.Email.ShowError())

	form.Email.FocusChanged(false)
	assert.True(t, form.Email.ShowError())
	assert.False(t, form.LoginEnabled())

	form.Email.FocusChanged(true)
	form.Email.SetValue("a@b.co")
	form.Email.FocusChanged(false)
	assert.False(t, form.Email.ShowError())
	assert.True(t, form.LoginEnabled())

	form.Email.SetValue("a@b")
	assert.True(t, form.Email.ShowError())
}

func TestLoginFormSubmitRevealsErrors(t *testing.T) {
	form := NewLoginForm()

	_, _, ok := form.Submit()
	require.False(t, ok)
	assert.Equal(t, NoLongerFocused, form.Email.State())
	assert.Equal(t, NoLongerFocused, form.Password.State())
	assert.True(t, form.Email.ShowError())
	assert.True(t, form.Password.ShowError())
	assert.False(t, form.LoginEnabled())
}

func TestLoginFormSubmitRejectsShortPassword(t *testing.T) {
	form := NewLoginForm()
	form.Email.SetValue("a@b.co")
	form.Password.SetValue("12345")

	_, _, ok := form.Submit()
	require.False(t, ok)
	assert.False(t, form.Email.ShowError())
	assert.True(t, form.Password.ShowError())
}

func TestLoginFormSubmitReturnsValidCredentials(t *testing.T) {
	form := NewLoginForm()
	form.Email.SetValue("~@ViliusSutkus89.com")
	form.Password.SetValue("123456")

	email, password, ok := form.Submit()
	require.True(t, ok)
	assert.Equal(t, "~@ViliusSutkus89.com", email)
	assert.Equal(t, "123456", password)
	assert.True(t, form.LoginEnabled())
}

func TestFieldWithoutValidatorIsNeverValid(t *testing.T) {
	var field Field
	field.SetValue("anything")

	assert.False(t, field.Valid())
}

func TestFocusStateString(t *testing.T) {
	assert.Equal(t, "never_focused", NeverFocused.String())
	assert.Equal(t, "focused", Focused.String())
	assert.Equal(t, "no_longer_focused", NoLongerFocused.String())
	assert.Equal(t, "unknown", FocusState(7).String())
}

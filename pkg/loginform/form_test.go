package loginform

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const usernamePage = `<html><body>
	<form id="other" action="/search"><input name="q" value=""></form>
	<form id="gaia_loginform" action="/signin/v1/lookup" method="post">
		<input type="hidden" name="GALX" value="csrf-token-1">
		<input type="hidden" name="continue" value="https://www.google.com/voice/m?initialauth">
		<input type="email" name="Email" value="">
		<input type="submit" value="Next">
		<input type="submit" name="signIn" value="Next">
	</form>
</body></html>`

func mustURL(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return u
}

func TestExtract(t *testing.T) {
	base := mustURL(t, "https://accounts.example.com/ServiceLogin?service=grandcentral")

	t.Run("default selector", func(t *testing.T) {
		form, err := Extract([]byte(usernamePage), base, "")
		require.NoError(t, err)
		assert.Equal(t, "https://accounts.example.com/signin/v1/lookup", form.Action)
		assert.Equal(t, "POST", form.Method)
		require.Len(t, form.Fields, 4)
		assert.Equal(t, Field{Name: "GALX", Value: "csrf-token-1", Type: "hidden"}, form.Fields[0])
	})

	t.Run("preserves document order", func(t *testing.T) {
		form, err := Extract([]byte(usernamePage), base, DefaultSelector)
		require.NoError(t, err)
		names := make([]string, 0, len(form.Fields))
		for _, f := range form.Fields {
			names = append(names, f.Name)
		}
		assert.Equal(t, []string{"GALX", "continue", "Email", "signIn"}, names)
	})

	t.Run("xpath selector", func(t *testing.T) {
		form, err := Extract([]byte(usernamePage), base, `//form[@id="gaia_loginform"]`)
		require.NoError(t, err)
		assert.Equal(t, "https://accounts.example.com/signin/v1/lookup", form.Action)
		assert.Len(t, form.Fields, 4)
	})

	t.Run("selector matching a non-form element", func(t *testing.T) {
		_, err := Extract([]byte(`<div id="gaia_loginform"><input name="Email"></div>`), base, "#gaia_loginform")
		assert.ErrorIs(t, err, ErrFormNotFound)
	})

	t.Run("form not found", func(t *testing.T) {
		_, err := Extract([]byte(`<html><body><p>Service unavailable</p></body></html>`), base, "")
		assert.ErrorIs(t, err, ErrFormNotFound)
	})

	t.Run("form with no named inputs", func(t *testing.T) {
		body := `<form id="gaia_loginform" action="/x"><input type="submit" value="Go"></form>`
		_, err := Extract([]byte(body), base, "")
		assert.ErrorIs(t, err, ErrNoInputFields)
	})

	t.Run("empty action posts back to page", func(t *testing.T) {
		body := `<form id="gaia_loginform"><input name="Email"></form>`
		form, err := Extract([]byte(body), base, "")
		require.NoError(t, err)
		assert.Equal(t, base.String(), form.Action)
	})

	t.Run("absolute action kept", func(t *testing.T) {
		body := `<form id="gaia_loginform" action="https://other.example.com/login"><input name="Email"></form>`
		form, err := Extract([]byte(body), base, "")
		require.NoError(t, err)
		assert.Equal(t, "https://other.example.com/login", form.Action)
	})

	t.Run("nil base leaves action untouched", func(t *testing.T) {
		form, err := Extract([]byte(usernamePage), nil, "")
		require.NoError(t, err)
		assert.Equal(t, "/signin/v1/lookup", form.Action)
	})

	t.Run("invalid css selector", func(t *testing.T) {
		_, err := Extract([]byte(usernamePage), base, "form[[")
		assert.ErrorIs(t, err, ErrInvalidSelector)
	})

	t.Run("invalid xpath selector", func(t *testing.T) {
		_, err := Extract([]byte(usernamePage), base, "//form[@id=")
		assert.ErrorIs(t, err, ErrInvalidSelector)
	})
}

func TestDetectMode(t *testing.T) {
	assert.Equal(t, ModeCSS, DetectMode("form#gaia_loginform"))
	assert.Equal(t, ModeXPath, DetectMode("//form"))
	assert.Equal(t, ModeXPath, DetectMode("(//form)[1]"))
	assert.Equal(t, ModeXPath, DetectMode("  /html/body/form"))
}

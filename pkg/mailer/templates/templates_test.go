package templates

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_Welcome(t *testing.T) {
	subj, text, html, err := Render("welcome", map[string]any{
		"Name":    "Test name",
		"Email":   "test@gmail.com",
		"AppName": "Recipes",
	})
	require.NoError(t, err)

	assert.Equal(t, "Welcome to Recipes", subj)
	assert.Contains(t, text, "Hi Test name")
	assert.Contains(t, html, "<b>test@gmail.com</b>")
}

func TestRender_WelcomeFallbacks(t *testing.T) {
	subj, text, _, err := Render("WELCOME", map[string]any{"Email": "test@gmail.com"})
	require.NoError(t, err)

	assert.Equal(t, "Welcome to Recipe App", subj)
	assert.Contains(t, text, "Hi test@gmail.com")
}

func TestRender_UnknownTemplate(t *testing.T) {
	_, _, _, err := Render("nope", nil)
	assert.Error(t, err)
}

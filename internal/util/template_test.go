package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderTemplatePlainTextFastPath(t *testing.T) {
	out, err := RenderTemplate("no markers here", nil)
	require.NoError(t, err)
	assert.Equal(t, "no markers here", out)
}

func TestRenderTemplateVariables(t *testing.T) {
	out, err := RenderTemplate("You teach {{.Subject}}.", map[string]any{"Subject": "Physics"})
	require.NoError(t, err)
	assert.Equal(t, "You teach Physics.", out)
}

func TestRenderTemplateBullets(t *testing.T) {
	out, err := RenderTemplate("{{bullets .Items}}", map[string]any{"Items": []string{"a", "b"}})
	require.NoError(t, err)
	assert.Equal(t, "- a\n- b", out)
}

func TestRenderTemplateInvalid(t *testing.T) {
	_, err := RenderTemplate("{{.Broken", nil)
	assert.Error(t, err)
}

package textutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderer_ToHTML(t *testing.T) {
	r := NewRenderer()

	out, err := r.ToHTML("**Moto** 0km\n\n<script>alert(1)</script>")
	require.NoError(t, err)
	assert.Contains(t, out, "<strong>Moto</strong>")
	assert.NotContains(t, out, "<script>")
}

func TestRenderer_SanitizePlain(t *testing.T) {
	r := NewRenderer()

	assert.Equal(t, "referencia duplicada", r.SanitizePlain("  <b>referencia duplicada</b> "))
	assert.Equal(t, "", r.SanitizePlain("<img src=x onerror=alert(1)>"))
}

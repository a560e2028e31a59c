package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_Stdin(t *testing.T) {
	cmd := rootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetIn(strings.NewReader("# Hi\n\nVisit www.example.com <script>x()</script>"))
	cmd.SetArgs([]string{"render"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "<h1>Hi</h1>")
	assert.Contains(t, out.String(), `<a href="http://www.example.com" rel="nofollow">www.example.com</a>`)
	assert.NotContains(t, out.String(), "<script>")
}

func TestRender_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "desc.md")
	require.NoError(t, os.WriteFile(path, []byte("**bold**"), 0o600))

	cmd := rootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"render", path})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "<p><strong>bold</strong></p>\n", out.String())
}

func TestRender_MissingFile(t *testing.T) {
	cmd := rootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"render", filepath.Join(t.TempDir(), "nope.md")})

	assert.Error(t, cmd.Execute())
}

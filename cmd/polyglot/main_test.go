package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd := rootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func contentDir(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	for _, id := range []string{"en/index.md", "uk/index.md", "uk/lessons/intro.md", "de/index.md"} {
		p := filepath.Join(dir, filepath.FromSlash(id))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte("# page"), 0o600))
	}
	return dir
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	require.Equal(t, "polyglot version 0.1.0 (build: dev)\n", out)
}

func TestResolve(t *testing.T) {
	t.Setenv("CONTENT_DIR", contentDir(t))
	t.Setenv("SUPPORTED_LANGUAGES", "en,es,uk")

	out, err := execute(t, "resolve", "de-DE,uk;q=0.8,en;q=0.5")
	require.NoError(t, err)
	require.Equal(t, "uk (header)\n", out)

	out, err = execute(t, "resolve", "--hint", "es-MX", "--hint", "uk-UA")
	require.NoError(t, err)
	require.Equal(t, "uk (hint)\n", out)

	out, err = execute(t, "resolve", "fr")
	require.NoError(t, err)
	require.Equal(t, "en (default)\n", out)
}

func TestLanguages(t *testing.T) {
	t.Setenv("CONTENT_DIR", contentDir(t))
	t.Setenv("SUPPORTED_LANGUAGES", "en,es,uk")

	out, err := execute(t, "languages", "/lessons/intro")
	require.NoError(t, err)
	require.Contains(t, out, "/en/lessons/intro")
	require.Contains(t, out, "/uk/lessons/intro")
	require.Contains(t, out, "default")
	require.NotContains(t, out, "/es/")
	require.NotContains(t, out, "/de/")
}

func TestConfigFileAndFlags(t *testing.T) {
	dir := contentDir(t)
	path := filepath.Join(t.TempDir(), "polyglot.yaml")
	require.NoError(t, os.WriteFile(path, []byte("i18n:\n  supported_languages: [en, de]\n  default_language: de\ncontent:\n  dir: "+dir+"\n"), 0o600))

	out, err := execute(t, "--config", path, "resolve", "fr")
	require.NoError(t, err)
	require.Equal(t, "de (default)\n", out)

	_, err = execute(t, "--config", path, "--log-level", "loud", "resolve")
	require.Error(t, err)
}

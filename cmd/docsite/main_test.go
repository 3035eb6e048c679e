package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vango-dev/docsite/internal/build"
	"github.com/vango-dev/docsite/internal/errors"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	a := &app{out: &out, errOut: &errOut}
	cmd := newRootCmd(a)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func initProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	_, err := run(t, "init", dir, "--title", "Support Tools")
	require.NoError(t, err)
	return dir
}

func TestInit(t *testing.T) {
	dir := initProject(t)

	assert.FileExists(t, filepath.Join(dir, "docsite.json"))
	assert.FileExists(t, filepath.Join(dir, "docs", "intro.md"))
	assert.DirExists(t, filepath.Join(dir, "static"))

	data, err := os.ReadFile(filepath.Join(dir, "docsite.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"title": "Support Tools"`)

	_, err = run(t, "init", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, err = run(t, "init", dir, "--force")
	require.NoError(t, err)
}

func TestInit_Handbook(t *testing.T) {
	dir := t.TempDir()
	_, err := run(t, "init", dir, "--template", "handbook")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "docsite.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "/css/custom.css")

	out, err := run(t, "--dir", dir, "build")
	require.NoError(t, err)
	assert.Contains(t, out, "Built 3 pages and 2 static files")

	html, err := os.ReadFile(filepath.Join(dir, "build", "docs", "guides", "install", "index.html"))
	require.NoError(t, err)
	assert.Contains(t, string(html), `<link href="/css/custom.css" rel="stylesheet">`)
}

func TestInit_UnknownTemplate(t *testing.T) {
	_, err := run(t, "init", t.TempDir(), "--template", "blog")
	assert.Equal(t, "E145", errors.Code(err))
}

func TestBuild(t *testing.T) {
	dir := initProject(t)

	out, err := run(t, "--dir", dir, "build", "-j", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "Built 1 pages")

	m, err := build.ReadManifest(filepath.Join(dir, "build"))
	require.NoError(t, err)
	require.Len(t, m.Pages, 1)
	assert.Equal(t, "intro", m.Pages[0].ID)

	html, err := os.ReadFile(filepath.Join(dir, "build", "docs", "intro", "index.html"))
	require.NoError(t, err)
	assert.Contains(t, string(html), "<title>Introduction | Support Tools</title>")
}

func TestBuild_NoProject(t *testing.T) {
	_, err := run(t, "--dir", t.TempDir(), "build")
	assert.Equal(t, "E141", errors.Code(err))
}

func TestShow(t *testing.T) {
	dir := initProject(t)

	out, err := run(t, "--dir", dir, "show", "--list")
	require.NoError(t, err)
	assert.Contains(t, out, "intro")
	assert.Contains(t, out, "/docs/intro")

	out, err = run(t, "--dir", dir, "show", "intro", "--json")
	require.NoError(t, err)
	var page map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &page))
	assert.Equal(t, "Introduction", page["title"])
	assert.Equal(t, "/docs/intro", page["permalink"])

	out, err = run(t, "--dir", dir, "show", "intro", "--style", "notty")
	require.NoError(t, err)
	assert.Contains(t, out, "Welcome to your new docs site.")

	_, err = run(t, "--dir", dir, "show", "missing")
	assert.Equal(t, "E203", errors.Code(err))
}

func TestPublish_DryRun(t *testing.T) {
	dir := initProject(t)

	out, err := run(t, "--dir", dir, "publish", "--dry-run", "--bucket", "docs", "--prefix", "v2")
	require.NoError(t, err)
	assert.Contains(t, out, "Would upload 4 objects")
	assert.Contains(t, out, "s3://docs/v2/")
}

func TestPublish_NoBucket(t *testing.T) {
	dir := initProject(t)
	t.Setenv("DOCSITE_PUBLISH_BUCKET", "")

	_, err := run(t, "--dir", dir, "publish", "--dry-run")
	assert.Equal(t, "E302", errors.Code(err))
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version", "--short")
	require.NoError(t, err)
	assert.Equal(t, "dev\n", out)

	out, err = run(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.Contains(out, "Go version:"))
}

func TestFormatBytes(t *testing.T) {
	assert.Equal(t, "512 B", formatBytes(512))
	assert.Equal(t, "1.5 KB", formatBytes(1536))
	assert.Equal(t, "2.0 MB", formatBytes(2<<20))
}

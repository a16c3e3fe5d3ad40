package filestorage

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fileHeader(t *testing.T, name string, content []byte) *multipart.FileHeader {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	part, err := w.CreateFormFile("file", name)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/media", body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))
	return req.MultipartForm.File["file"][0]
}

func TestSaveAndDelete(t *testing.T) {
	dir := t.TempDir()
	ls, err := NewLocalStorage(dir, "https://api.example.jp/", VideoExtensions)
	require.NoError(t, err)

	url, err := ls.Save(fileHeader(t, "reel.MP4", []byte("video-bytes")), "reels/../reels")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "https://api.example.jp/uploads/reels/"))
	assert.True(t, strings.HasSuffix(url, ".mp4"))

	rel := strings.TrimPrefix(url, "https://api.example.jp/uploads/")
	data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(rel)))
	require.NoError(t, err)
	assert.Equal(t, "video-bytes", string(data))

	require.NoError(t, ls.Delete(url))
	_, err = os.Stat(filepath.Join(dir, filepath.FromSlash(rel)))
	assert.True(t, os.IsNotExist(err))

	// Deleting again is a no-op
	assert.NoError(t, ls.Delete(url))
}

func TestSaveRejectsUnsupportedExtension(t *testing.T) {
	ls, err := NewLocalStorage(t.TempDir(), "", VideoExtensions)
	require.NoError(t, err)

	_, err = ls.Save(fileHeader(t, "script.sh", []byte("#!/bin/sh")), "reels")
	assert.ErrorIs(t, err, ErrUnsupportedType)
}

func TestDeleteIgnoresForeignURLs(t *testing.T) {
	dir := t.TempDir()
	ls, err := NewLocalStorage(dir, "", nil)
	require.NoError(t, err)

	outside := filepath.Join(filepath.Dir(dir), "keep.txt")
	require.NoError(t, os.WriteFile(outside, []byte("x"), 0o644))
	t.Cleanup(func() { _ = os.Remove(outside) })

	assert.NoError(t, ls.Delete("https://www.youtube.com/embed/abc"))
	assert.NoError(t, ls.Delete("/uploads/../keep.txt"))
	_, err = os.Stat(outside)
	assert.NoError(t, err)
}

func TestRelativeURLWithoutBase(t *testing.T) {
	ls, err := NewLocalStorage(t.TempDir(), "", nil)
	require.NoError(t, err)

	url, err := ls.Save(fileHeader(t, "clip.webm", []byte("v")), "")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "/uploads/"))
}

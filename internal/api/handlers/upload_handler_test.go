package handlers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Smallest valid PNG header; enough for content sniffing.
var pngBytes = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 13, 'I', 'H', 'D', 'R'}

func multipartBody(t *testing.T, field string, files map[string][]byte) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for name, content := range files {
		part, err := writer.CreateFormFile(field, name)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	return &buf, writer.FormDataContentType()
}

func TestUploadSingle(t *testing.T) {
	dir := t.TempDir()
	h := NewUploadHandler(dir)

	body, contentType := multipartBody(t, "file", map[string][]byte{"photo.PNG": pngBytes})
	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	h.Single(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Success      bool   `json:"success"`
		Filename     string `json:"filename"`
		OriginalName string `json:"originalName"`
		FilePath     string `json:"filePath"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "photo.PNG", resp.OriginalName)
	assert.NotEqual(t, "photo.PNG", resp.Filename, "stored name is randomized")
	assert.Equal(t, ".png", filepath.Ext(resp.Filename), "extension is kept, lowercased")
	assert.Equal(t, "/uploads/"+resp.Filename, resp.FilePath)

	written, err := os.ReadFile(filepath.Join(dir, resp.Filename))
	require.NoError(t, err)
	assert.Equal(t, pngBytes, written)
}

func TestUploadRejectsNonImage(t *testing.T) {
	h := NewUploadHandler(t.TempDir())

	body, contentType := multipartBody(t, "file", map[string][]byte{"notes.txt": []byte("plain text, not an image")})
	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	h.Single(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"success":false,"message":"Invalid file type. Only images are allowed."}`, rec.Body.String())
}

func TestUploadRejectsMissingFile(t *testing.T) {
	h := NewUploadHandler(t.TempDir())

	body, contentType := multipartBody(t, "unrelated", map[string][]byte{"photo.png": pngBytes})
	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	h.Single(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"success":false,"message":"No file uploaded"}`, rec.Body.String())
}

func TestUploadMultiple(t *testing.T) {
	dir := t.TempDir()
	h := NewUploadHandler(dir)

	body, contentType := multipartBody(t, "files", map[string][]byte{
		"a.png": pngBytes,
		"b.png": pngBytes,
	})
	req := httptest.NewRequest(http.MethodPost, "/api/upload/multiple", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	h.Multiple(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestUploadMultipleRejectsOneBadFile(t *testing.T) {
	dir := t.TempDir()
	h := NewUploadHandler(dir)

	body, contentType := multipartBody(t, "files", map[string][]byte{
		"good.png": pngBytes,
		"bad.txt":  []byte("not an image"),
	})
	req := httptest.NewRequest(http.MethodPost, "/api/upload/multiple", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	h.Multiple(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"success":false,"message":"Invalid file type. Only images are allowed."}`, rec.Body.String())
}

package handlers

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	maxUploadSize  = 5 * 1024 * 1024 // per file
	maxUploadFiles = 10
)

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// UploadHandler stores admin image uploads under the configured directory.
// Files are renamed to a uuid, keeping only the original extension.
type UploadHandler struct {
	uploadPath string
}

// NewUploadHandler creates a new UploadHandler.
func NewUploadHandler(uploadPath string) *UploadHandler {
	return &UploadHandler{uploadPath: uploadPath}
}

type uploadedFile struct {
	Filename     string `json:"filename"`
	OriginalName string `json:"originalName"`
	Size         int64  `json:"size"`
	URL          string `json:"url"`
}

// Single stores one file posted under the "file" field.
func (h *UploadHandler) Single(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize + 1024); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid multipart request")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respondError(w, http.StatusBadRequest, "No file uploaded")
		return
	}
	defer file.Close()

	stored, status, msg := h.store(file, header)
	if msg != "" {
		respondError(w, status, msg)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":      true,
		"filePath":     stored.URL,
		"filename":     stored.Filename,
		"originalName": stored.OriginalName,
		"size":         stored.Size,
		"message":      "File uploaded successfully",
	})
}

// Multiple stores up to maxUploadFiles files posted under the "files" field.
func (h *UploadHandler) Multiple(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadFiles * maxUploadSize); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid multipart request")
		return
	}

	headers := r.MultipartForm.File["files"]
	if len(headers) == 0 {
		respondError(w, http.StatusBadRequest, "No files uploaded")
		return
	}
	if len(headers) > maxUploadFiles {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("At most %d files per upload", maxUploadFiles))
		return
	}

	var stored []uploadedFile
	for _, header := range headers {
		file, err := header.Open()
		if err != nil {
			respondError(w, http.StatusBadRequest, "Unreadable file in upload")
			return
		}
		uf, status, msg := h.store(file, header)
		file.Close()
		if msg != "" {
			respondError(w, status, msg)
			return
		}
		stored = append(stored, uf)
	}

	respondDataMessage(w, http.StatusOK, stored, "Files uploaded successfully")
}

// store validates and writes a single uploaded file. On failure it returns a
// status code and user-facing message.
func (h *UploadHandler) store(file multipart.File, header *multipart.FileHeader) (uploadedFile, int, string) {
	if header.Size > maxUploadSize {
		return uploadedFile{}, http.StatusBadRequest, "File too large. Maximum size is 5MB."
	}

	// Sniff the content type rather than trusting the client header.
	buf := make([]byte, 512)
	n, err := file.Read(buf)
	if err != nil && err != io.EOF {
		return uploadedFile{}, http.StatusBadRequest, "Unreadable file in upload"
	}
	if !allowedImageTypes[http.DetectContentType(buf[:n])] {
		return uploadedFile{}, http.StatusBadRequest, "Invalid file type. Only images are allowed."
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return uploadedFile{}, http.StatusInternalServerError, "Upload failed"
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	filename := uuid.New().String() + ext
	dst, err := os.Create(filepath.Join(h.uploadPath, filename))
	if err != nil {
		log.Error().Err(err).Msg("Failed to create upload file")
		return uploadedFile{}, http.StatusInternalServerError, "Upload failed"
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		log.Error().Err(err).Msg("Failed to write upload file")
		return uploadedFile{}, http.StatusInternalServerError, "Upload failed"
	}

	return uploadedFile{
		Filename:     filename,
		OriginalName: header.Filename,
		Size:         header.Size,
		URL:          "/uploads/" + filename,
	}, 0, ""
}

package handlers

import (
	"net/http"
	"strings"

	"github.com/squareonerentals/squareone/internal/auth"
	"github.com/squareonerentals/squareone/internal/services"
	pkghttp "github.com/squareonerentals/squareone/pkg/http"
)

// maxUploadSize caps multipart image uploads at 10 MiB.
const maxUploadSize = 10 << 20

// UploadHandler handles image upload HTTP requests
type UploadHandler struct {
	service services.UploadService
}

// NewUploadHandler creates a new UploadHandler
func NewUploadHandler(service services.UploadService) *UploadHandler {
	return &UploadHandler{service: service}
}

// Upload handles POST /upload with a multipart "file" part.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	claims := auth.GetUserFromContext(r)
	if claims == nil {
		pkghttp.WriteUnauthorized(w, "Authentication required")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		pkghttp.WriteBadRequest(w, "No file provided")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		pkghttp.WriteBadRequest(w, "Only image uploads are accepted")
		return
	}

	result, err := h.service.Upload(r.Context(), file, header.Filename)
	if err != nil {
		pkghttp.WriteInternalError(w, "Upload failed")
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, result)
}

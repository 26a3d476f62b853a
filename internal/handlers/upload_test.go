package handlers

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/squareonerentals/squareone/internal/services"
)

func newMultipartRequest(t *testing.T, fieldName, filename, contentType string, content []byte) *http.Request {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="`+fieldName+`"; filename="`+filename+`"`)
	header.Set("Content-Type", contentType)

	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/upload", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestUploadHandler_Success(t *testing.T) {
	handler := NewUploadHandler(&services.MockUploadService{
		UploadFunc: func(ctx context.Context, file io.Reader, filename string) (*services.UploadResult, error) {
			assert.Equal(t, "photo.jpg", filename)
			return &services.UploadResult{URL: "https://res.example.com/listings/photo.jpg", PublicID: "listings/photo"}, nil
		},
	})

	req := WithAuthContext(newMultipartRequest(t, "file", "photo.jpg", "image/jpeg", []byte("jpeg-bytes")), "user123", "user@example.com")
	w := httptest.NewRecorder()

	handler.Upload(w, req)

	var resp map[string]string
	AssertJSONResponse(t, w, http.StatusOK, &resp)
	assert.Equal(t, "https://res.example.com/listings/photo.jpg", resp["secure_url"])
}

func TestUploadHandler_MissingFile(t *testing.T) {
	handler := NewUploadHandler(&services.MockUploadService{})

	req := WithAuthContext(newMultipartRequest(t, "attachment", "photo.jpg", "image/jpeg", []byte("jpeg-bytes")), "user123", "user@example.com")
	w := httptest.NewRecorder()

	handler.Upload(w, req)

	AssertErrorResponse(t, w, http.StatusBadRequest)
}

func TestUploadHandler_RejectsNonImage(t *testing.T) {
	handler := NewUploadHandler(&services.MockUploadService{})

	req := WithAuthContext(newMultipartRequest(t, "file", "script.sh", "application/x-sh", []byte("#!/bin/sh")), "user123", "user@example.com")
	w := httptest.NewRecorder()

	handler.Upload(w, req)

	AssertErrorResponse(t, w, http.StatusBadRequest)
}

func TestUploadHandler_RequiresAuth(t *testing.T) {
	handler := NewUploadHandler(&services.MockUploadService{})

	req := newMultipartRequest(t, "file", "photo.jpg", "image/jpeg", []byte("jpeg-bytes"))
	w := httptest.NewRecorder()

	handler.Upload(w, req)

	AssertErrorResponse(t, w, http.StatusUnauthorized)
}

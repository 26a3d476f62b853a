package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// UploadResult is the stored location of an uploaded image
type UploadResult struct {
	URL      string `json:"secure_url"`
	PublicID string `json:"public_id"`
}

// UploadService defines the interface for image uploads
type UploadService interface {
	Upload(ctx context.Context, file io.Reader, filename string) (*UploadResult, error)
}

// CloudinaryUploadService stores images in Cloudinary
type CloudinaryUploadService struct {
	client *cloudinary.Cloudinary
	folder string
	logger *slog.Logger
}

// NewCloudinaryUploadService creates a Cloudinary-backed upload service
// from a cloudinary:// credential URL.
func NewCloudinaryUploadService(cloudinaryURL, folder string, logger *slog.Logger) (*CloudinaryUploadService, error) {
	client, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return nil, fmt.Errorf("failed to init cloudinary client: %w", err)
	}

	return &CloudinaryUploadService{
		client: client,
		folder: folder,
		logger: logger,
	}, nil
}

// Upload stores the file and returns its public HTTPS URL.
func (s *CloudinaryUploadService) Upload(ctx context.Context, file io.Reader, filename string) (*UploadResult, error) {
	resp, err := s.client.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder:           s.folder,
		FilenameOverride: filename,
		UniqueFilename:   api.Bool(true),
	})
	if err != nil {
		s.logger.Error("cloudinary upload failed", slog.Any("error", err))
		return nil, fmt.Errorf("failed to upload image: %w", err)
	}

	s.logger.Info("image uploaded",
		slog.String("public_id", resp.PublicID),
		slog.Int("bytes", resp.Bytes))

	return &UploadResult{
		URL:      resp.SecureURL,
		PublicID: resp.PublicID,
	}, nil
}

package services

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"
	"time"

	"dispatch/storage"
	"dispatch/utils"
)

const defaultImageMimeType = "image/jpeg"

// ImageService pushes vehicle photos through the sheet endpoint's
// uploadFile action into the configured Drive folder.
type ImageService struct {
	client   storage.SheetClient
	folderID string
	now      func() time.Time
}

func NewImageService(client storage.SheetClient, folderID string) *ImageService {
	return &ImageService{client: client, folderID: folderID, now: time.Now}
}

// UploadVehicleImage uploads raw image bytes and returns the stored file URL.
func (s *ImageService) UploadVehicleImage(ctx context.Context, data []byte, mimeType string) (string, error) {
	if len(data) == 0 {
		return "", validationError("image is empty")
	}
	if mimeType == "" {
		mimeType = http.DetectContentType(data)
	}
	if !strings.HasPrefix(mimeType, "image/") {
		return "", validationError("unsupported image type %q", mimeType)
	}
	dataURL := fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(data))
	return s.upload(ctx, dataURL, mimeType)
}

// UploadDataURL uploads an image already encoded as a data URL.
func (s *ImageService) UploadDataURL(ctx context.Context, dataURL string) (string, error) {
	mimeType, err := dataURLMimeType(dataURL)
	if err != nil {
		return "", err
	}
	return s.upload(ctx, dataURL, mimeType)
}

func (s *ImageService) upload(ctx context.Context, dataURL, mimeType string) (string, error) {
	ctx, cancel := utils.GetUploadContext(ctx)
	defer cancel()
	return s.client.UploadFile(ctx, storage.UploadRequest{
		DataURL:  dataURL,
		FileName: fmt.Sprintf("vehicle_%d.jpg", s.now().UnixMilli()),
		MimeType: mimeType,
		FolderID: s.folderID,
	})
}

// IsDataURL reports whether v is an inline base64 image.
func IsDataURL(v string) bool {
	return strings.HasPrefix(strings.TrimSpace(v), "data:")
}

func dataURLMimeType(dataURL string) (string, error) {
	if !IsDataURL(dataURL) {
		return "", validationError("image must be a data URL")
	}
	header, payload, ok := strings.Cut(strings.TrimPrefix(strings.TrimSpace(dataURL), "data:"), ",")
	if !ok || payload == "" || !strings.HasSuffix(header, ";base64") {
		return "", validationError("malformed image data URL")
	}
	mimeType := strings.TrimSuffix(header, ";base64")
	if mimeType == "" {
		mimeType = defaultImageMimeType
	}
	if !strings.HasPrefix(mimeType, "image/") {
		return "", validationError("unsupported image type %q", mimeType)
	}
	return mimeType, nil
}

package service

import (
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/pinboard-dev/pinboard/internal/domain"
	"github.com/pinboard-dev/pinboard/internal/errors"
)

type PinService interface {
	Upload(fileHeader *multipart.FileHeader) (domain.Pin, error)
}

// MediaStorage is the disk collaborator for pin images.
type MediaStorage interface {
	Save(fileData io.Reader, filename string) (string, error)
}

type Pin struct {
	storage MediaStorage
}

func NewPin(storage MediaStorage) *Pin {
	return &Pin{storage: storage}
}

// Upload validates that the file is an image and stores it under a
// uuid-derived name so concurrent uploads of files with the same name
// cannot clobber each other.
func (p *Pin) Upload(fileHeader *multipart.FileHeader) (domain.Pin, error) {
	mimeType, err := detectMimeType(fileHeader)
	if err != nil {
		return domain.Pin{}, &errors.ErrorWithStatusCode{Message: err.Error(), StatusCode: http.StatusBadRequest}
	}
	if !strings.HasPrefix(mimeType, "image/") {
		return domain.Pin{}, &errors.ErrorWithStatusCode{Message: "Only image uploads are allowed", StatusCode: http.StatusBadRequest}
	}

	file, err := fileHeader.Open()
	if err != nil {
		return domain.Pin{}, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	storedName := uuid.NewString() + ext

	relativePath, err := p.storage.Save(file, storedName)
	if err != nil {
		return domain.Pin{}, err
	}

	return domain.Pin{
		Name:      storedName,
		Path:      "/" + filepath.ToSlash(relativePath),
		SizeBytes: fileHeader.Size,
		MimeType:  mimeType,
	}, nil
}

// detectMimeType uses the multipart Content-Type header, falling back to
// the filename extension when the header is absent or generic.
func detectMimeType(fileHeader *multipart.FileHeader) (string, error) {
	mimeType := fileHeader.Header.Get("Content-Type")

	if mimeType == "" || mimeType == "application/octet-stream" {
		ext := filepath.Ext(fileHeader.Filename)
		if detectedType := mime.TypeByExtension(ext); detectedType != "" {
			mimeType = detectedType
		}
	}

	if mimeType == "" {
		return "", fmt.Errorf("could not detect MIME type for file: %s", fileHeader.Filename)
	}

	return mimeType, nil
}

package utils

import (
	"errors"
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var AllowedImageExt = map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".webp": true}

var (
	ErrFileType = errors.New("only jpg, jpeg, png and webp images are allowed")
	ErrFileSize = errors.New("file exceeds the maximum upload size")
)

// ValidateImage checks extension and size of an uploaded image.
func ValidateImage(fh *multipart.FileHeader, maxSize int64) error {
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !AllowedImageExt[ext] {
		return ErrFileType
	}
	if maxSize > 0 && fh.Size > maxSize {
		return ErrFileSize
	}
	return nil
}

// SaveUpload stores fh under dir/sub with a random name and returns its public path.
func SaveUpload(c *gin.Context, fh *multipart.FileHeader, dir, sub string) (string, error) {
	folder := filepath.Join(dir, sub)
	if err := os.MkdirAll(folder, 0755); err != nil {
		return "", err
	}
	name := uuid.NewString() + strings.ToLower(filepath.Ext(fh.Filename))
	if err := c.SaveUploadedFile(fh, filepath.Join(folder, name)); err != nil {
		return "", err
	}
	return fmt.Sprintf("/uploads/%s/%s", sub, name), nil
}

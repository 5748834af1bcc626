package utils

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// MaxImageUploadSize is the ceiling for menu item image uploads (5 MB).
const MaxImageUploadSize = 5 * 1024 * 1024

var allowedImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// SaveUploadedImage stores a multipart image from the named form field under
// uploadDir with a generated unique filename and returns the public path
// (/uploads/menu/<name>). It returns ("", nil) when no file was attached so
// callers can fall back to a path supplied in the request body.
func SaveUploadedImage(c *gin.Context, field, uploadDir string) (string, error) {
	file, err := c.FormFile(field)
	if err != nil {
		// No file attached is not an error for optional image fields.
		return "", nil
	}

	if file.Size > MaxImageUploadSize {
		return "", fmt.Errorf("image exceeds maximum size of %d bytes", MaxImageUploadSize)
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedImageExtensions[ext] {
		return "", fmt.Errorf("only image files (jpg, png, gif, webp) are allowed")
	}
	contentType := file.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return "", fmt.Errorf("only image files (jpg, png, gif, webp) are allowed")
	}

	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to prepare upload directory: %w", err)
	}

	uniqueName := fmt.Sprintf("menu-%d-%d%s", time.Now().UnixMilli(), rand.Intn(1_000_000_000), ext)
	if err := c.SaveUploadedFile(file, filepath.Join(uploadDir, uniqueName)); err != nil {
		return "", fmt.Errorf("failed to store uploaded image: %w", err)
	}

	return "/uploads/menu/" + uniqueName, nil
}

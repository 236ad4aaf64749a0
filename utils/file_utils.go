// utils/file_utils.go
package utils

import (
	"bytes"
	"fmt"
	"image/jpeg"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

const (
	// Base directory for storing uploaded files
	uploadBaseDir = "uploads"
	// Base URL for serving files
	baseURL = "/uploads"
	// Maximum file size (5MB)
	maxFileSize = 5 * 1024 * 1024
)

// cleanFilename removes any potentially dangerous characters from the filename
func cleanFilename(filename string) string {
	filename = filepath.Base(filename)
	reg := regexp.MustCompile(`[^a-zA-Z0-9.-]`)
	return reg.ReplaceAllString(filename, "")
}

// InitializeStorage creates necessary directories for file storage
func InitializeStorage() error {
	dirs := []string{
		uploadBaseDir,
		filepath.Join(uploadBaseDir, "products"),
		filepath.Join(uploadBaseDir, "thumbnails"),
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %v", dir, err)
		}
	}

	return nil
}

// SaveProductImage stores a product image and a 320px thumbnail,
// returning the URLs of both.
func SaveProductImage(fileData []byte, filename string) (imageURL, thumbnailURL string, err error) {
	if len(fileData) > maxFileSize {
		return "", "", fmt.Errorf("file too large. Maximum size is %d bytes", maxFileSize)
	}

	cleanName := cleanFilename(filename)
	if err := ValidateImageFile(cleanName, int64(len(fileData))); err != nil {
		return "", "", err
	}

	if err := InitializeStorage(); err != nil {
		return "", "", err
	}

	// Prefix with a UUID so repeated uploads never collide
	storedName := fmt.Sprintf("%s-%s", uuid.New().String(), cleanName)
	fullPath := filepath.Join(uploadBaseDir, "products", storedName)

	if err := os.WriteFile(fullPath, fileData, 0644); err != nil {
		return "", "", fmt.Errorf("failed to save file: %v", err)
	}

	img, err := imaging.Decode(bytes.NewReader(fileData))
	if err != nil {
		return "", "", fmt.Errorf("failed to decode image: %v", err)
	}

	// Resize to max width of 320px while maintaining aspect ratio
	resized := imaging.Resize(img, 320, 0, imaging.Lanczos)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, resized, &jpeg.Options{Quality: 85}); err != nil {
		return "", "", fmt.Errorf("failed to encode thumbnail: %v", err)
	}

	thumbName := fmt.Sprintf("%s.jpg", strings.TrimSuffix(storedName, filepath.Ext(storedName)))
	thumbPath := filepath.Join(uploadBaseDir, "thumbnails", thumbName)
	if err := os.WriteFile(thumbPath, buf.Bytes(), 0644); err != nil {
		return "", "", fmt.Errorf("failed to save thumbnail: %v", err)
	}

	imageURL = fmt.Sprintf("%s/products/%s", baseURL, storedName)
	thumbnailURL = fmt.Sprintf("%s/thumbnails/%s", baseURL, thumbName)
	return imageURL, thumbnailURL, nil
}

// DeleteUploadedFile removes a stored file given its public URL
func DeleteUploadedFile(fileURL string) error {
	if !strings.HasPrefix(fileURL, baseURL+"/") {
		return fmt.Errorf("not an uploaded file: %s", fileURL)
	}
	rel := strings.TrimPrefix(fileURL, baseURL+"/")
	return os.Remove(filepath.Join(uploadBaseDir, filepath.Clean(rel)))
}

package services

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ImageStore persists post attachments under a local media root. Stored
// paths are relative to that root so the Post record stays portable.
type ImageStore struct {
	Root string
}

func NewImageStore() *ImageStore {
	root := os.Getenv("MEDIA_ROOT")
	if root == "" {
		root = "./media"
	}
	return &ImageStore{Root: root}
}

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// Save writes an uploaded image to <root>/posts/<uuid><ext> and returns
// the relative path to store on the post.
func (s *ImageStore) Save(header *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedExtensions[ext] {
		return "", fmt.Errorf("unsupported image type %q", ext)
	}

	file, err := header.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer file.Close()

	relPath := filepath.Join("posts", uuid.New().String()+ext)
	fullPath := filepath.Join(s.Root, relPath)

	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return "", fmt.Errorf("create media dir: %w", err)
	}

	dst, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("create media file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		os.Remove(fullPath)
		return "", fmt.Errorf("write media file: %w", err)
	}

	return filepath.ToSlash(relPath), nil
}

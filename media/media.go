// Copyright (c) 2025 Golden Age Infotech.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package media

import (
	"context"
	"errors"
	"io"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// MaxImageSize is the largest image accepted by the admin upload.
const MaxImageSize = 5 << 20

var ErrUnsupportedType = errors.New("unsupported file type")

// Object describes a stored blob.
type Object struct {
	Key         string
	URL         string
	ContentType string
	Size        int64
}

// BlobStore stores uploads and returns their public URL.
type BlobStore interface {
	Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) (Object, error)
	Delete(ctx context.Context, key string) error
}

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// ImageKey returns a fresh key under images/ with the extension for
// contentType.
func ImageKey(contentType string) string {
	return path.Join("images", uuid.New().String()+imageExt(contentType))
}

// ResumeKey returns a fresh key under resumes/ that keeps a cleaned-up
// version of the uploaded file name.
func ResumeKey(filename string) string {
	base := filepath.Base(strings.ReplaceAll(filename, "\\", "/"))
	base = strings.Trim(unsafeChars.ReplaceAllString(base, "-"), "-.")
	if base == "" {
		base = "resume"
	}
	return path.Join("resumes", uuid.New().String()+"-"+base)
}

func imageExt(contentType string) string {
	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	}
	return ""
}

// Copyright (c) 2025 Golden Age Infotech.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package media

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"
)

// SupportedImageTypes maps decoder format names to content types.
var SupportedImageTypes = map[string]string{
	"jpeg": "image/jpeg",
	"png":  "image/png",
	"gif":  "image/gif",
	"webp": "image/webp",
}

// ImageInfo is what InspectImage learns from the header.
type ImageInfo struct {
	ContentType string
	Width       int
	Height      int
}

// InspectImage decodes only the image header, so the declared content type
// of an upload is never trusted.
func InspectImage(data []byte) (ImageInfo, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return ImageInfo{}, fmt.Errorf("%w: %v", ErrUnsupportedType, err)
	}
	ct, ok := SupportedImageTypes[format]
	if !ok {
		return ImageInfo{}, fmt.Errorf("%w: %s", ErrUnsupportedType, format)
	}
	return ImageInfo{ContentType: ct, Width: cfg.Width, Height: cfg.Height}, nil
}

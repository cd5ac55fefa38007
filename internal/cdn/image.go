// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cdn

import (
	"bytes"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"net/http"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/rwcarlsen/goexif/exif"
	_ "golang.org/x/image/webp" // WebP decoder
)

// Upload bounds enforced before sending anything to the CDN.
const (
	MaxUploadBytes = 5 << 20 // 5MB per image
	MaxFitWidth    = 1200
	MaxFitHeight   = 630
	jpegQuality    = 90
)

// PrepareImage validates, auto-orients and downscales an uploaded image.
// The result fits within MaxFitWidth x MaxFitHeight and carries no EXIF
// metadata (the pure Go encoders drop it).
func PrepareImage(data []byte) ([]byte, string, error) {
	if len(data) > MaxUploadBytes {
		return nil, "", fmt.Errorf("image exceeds %d bytes", MaxUploadBytes)
	}

	format := detectFormat(data)
	if format == "" {
		return nil, "", fmt.Errorf("unsupported image format; allowed: jpeg, png, gif, webp")
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("decoding image: %w", err)
	}

	img = applyOrientation(img, readExifOrientation(bytes.NewReader(data)))

	bounds := img.Bounds()
	if bounds.Dx() > MaxFitWidth || bounds.Dy() > MaxFitHeight {
		img = imaging.Fit(img, MaxFitWidth, MaxFitHeight, imaging.Lanczos)
	}

	encoded, err := encodeImage(img, format)
	if err != nil {
		return nil, "", fmt.Errorf("encoding image: %w", err)
	}

	return encoded, format, nil
}

// detectFormat detects the image format from raw bytes.
func detectFormat(data []byte) string {
	contentType := http.DetectContentType(data)
	// Explicitly reject TIFF (CVE-2023-36308 in disintegration/imaging)
	if strings.Contains(contentType, "tiff") {
		return ""
	}
	switch {
	case strings.Contains(contentType, "jpeg"):
		return "jpeg"
	case strings.Contains(contentType, "png"):
		return "png"
	case strings.Contains(contentType, "gif"):
		return "gif"
	case strings.Contains(contentType, "webp"):
		return "webp"
	default:
		return ""
	}
}

// readExifOrientation reads the EXIF orientation tag from image data.
// Returns 1 (normal) if orientation cannot be determined.
func readExifOrientation(r io.Reader) int {
	x, err := exif.Decode(r)
	if err != nil {
		return 1
	}

	tag, err := x.Get(exif.Orientation)
	if err != nil {
		return 1
	}

	orientation, err := tag.Int(0)
	if err != nil {
		return 1
	}

	return orientation
}

// applyOrientation applies EXIF orientation transformation to an image.
func applyOrientation(img image.Image, orientation int) image.Image {
	switch orientation {
	case 2:
		return imaging.FlipH(img)
	case 3:
		return imaging.Rotate180(img)
	case 4:
		return imaging.FlipV(img)
	case 5:
		return imaging.FlipH(imaging.Rotate270(img))
	case 6:
		return imaging.Rotate270(img)
	case 7:
		return imaging.FlipH(imaging.Rotate90(img))
	case 8:
		return imaging.Rotate90(img)
	default:
		return img
	}
}

// encodeImage encodes an image with the given format. WebP input is encoded
// as JPEG since pure Go has no WebP encoder.
func encodeImage(img image.Image, format string) ([]byte, error) {
	var buf bytes.Buffer

	switch format {
	case "png":
		if err := png.Encode(&buf, img); err != nil {
			return nil, err
		}
	case "gif":
		if err := gif.Encode(&buf, img, nil); err != nil {
			return nil, err
		}
	default:
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
			return nil, err
		}
	}

	return buf.Bytes(), nil
}

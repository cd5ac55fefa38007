// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cdn

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/jpeg"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func jpegBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h)), nil); err != nil {
		t.Fatalf("encoding test jpeg: %v", err)
	}
	return buf.Bytes()
}

func TestPrepareImageDownscales(t *testing.T) {
	data := jpegBytes(t, 2400, 1260)

	prepared, format, err := PrepareImage(data)
	if err != nil {
		t.Fatalf("PrepareImage: %v", err)
	}
	if format != "jpeg" {
		t.Errorf("format = %q, want jpeg", format)
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(prepared))
	if err != nil {
		t.Fatalf("decoding prepared image: %v", err)
	}
	if cfg.Width > MaxFitWidth || cfg.Height > MaxFitHeight {
		t.Errorf("prepared size = %dx%d, want within %dx%d", cfg.Width, cfg.Height, MaxFitWidth, MaxFitHeight)
	}
}

func TestPrepareImageKeepsSmall(t *testing.T) {
	data := jpegBytes(t, 100, 50)

	prepared, _, err := PrepareImage(data)
	if err != nil {
		t.Fatalf("PrepareImage: %v", err)
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(prepared))
	if err != nil {
		t.Fatalf("decoding prepared image: %v", err)
	}
	if cfg.Width != 100 || cfg.Height != 50 {
		t.Errorf("size = %dx%d, want 100x50 unchanged", cfg.Width, cfg.Height)
	}
}

func TestPrepareImagePNG(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 10, 10))); err != nil {
		t.Fatalf("encoding test png: %v", err)
	}

	_, format, err := PrepareImage(buf.Bytes())
	if err != nil {
		t.Fatalf("PrepareImage: %v", err)
	}
	if format != "png" {
		t.Errorf("format = %q, want png", format)
	}
}

func TestPrepareImageRejectsGarbage(t *testing.T) {
	if _, _, err := PrepareImage([]byte("definitely not an image")); err == nil {
		t.Error("PrepareImage should reject non-image data")
	}
}

func TestPrepareImageRejectsOversized(t *testing.T) {
	big := make([]byte, MaxUploadBytes+1)
	if _, _, err := PrepareImage(big); err == nil {
		t.Error("PrepareImage should reject oversized data")
	}
}

func TestSign(t *testing.T) {
	c := NewClient("demo", "key", "secret")

	// SHA1("folder=portfolio/blog&public_id=abc&timestamp=1700000000secret")
	got := c.sign(map[string]string{
		"timestamp": "1700000000",
		"public_id": "abc",
		"folder":    "portfolio/blog",
	})
	want := "5693e9e411e91ebf43b1226b3345b799770c493b"
	if got != want {
		t.Errorf("sign = %q, want %q", got, want)
	}
}

func TestUploadImageNotConfigured(t *testing.T) {
	c := NewClient("", "", "")
	if c.Configured() {
		t.Error("Configured() = true, want false")
	}
	_, err := c.UploadImage(context.Background(), jpegBytes(t, 10, 10))
	if !errors.Is(err, ErrNotConfigured) {
		t.Errorf("err = %v, want ErrNotConfigured", err)
	}
	if err := c.DeleteImage(context.Background(), "x"); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("DeleteImage err = %v, want ErrNotConfigured", err)
	}
}

func TestUploadImage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/demo/image/upload") {
			t.Errorf("path = %q", r.URL.Path)
		}
		if err := r.ParseMultipartForm(MaxUploadBytes); err != nil {
			t.Fatalf("parsing multipart: %v", err)
		}
		for _, field := range []string{"api_key", "timestamp", "signature", "folder", "public_id"} {
			if r.FormValue(field) == "" {
				t.Errorf("missing form field %q", field)
			}
		}
		if r.FormValue("folder") != UploadFolder {
			t.Errorf("folder = %q, want %q", r.FormValue("folder"), UploadFolder)
		}
		if _, _, err := r.FormFile("file"); err != nil {
			t.Errorf("missing file part: %v", err)
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"public_id": "portfolio/blog/xyz", "url": "http://res.cloudinary.com/x.jpg", "secure_url": "https://res.cloudinary.com/x.jpg", "width": 100, "height": 50, "format": "jpg", "bytes": 1234}`))
	}))
	defer srv.Close()

	c := NewClient("demo", "key", "secret")
	c.baseURL = srv.URL

	result, err := c.UploadImage(context.Background(), jpegBytes(t, 100, 50))
	if err != nil {
		t.Fatalf("UploadImage: %v", err)
	}
	if result.PublicID != "portfolio/blog/xyz" {
		t.Errorf("PublicID = %q", result.PublicID)
	}
	if result.SecureURL == "" {
		t.Error("SecureURL empty")
	}
}

func TestDeleteImage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/demo/image/destroy") {
			t.Errorf("path = %q", r.URL.Path)
		}
		if err := r.ParseForm(); err != nil {
			t.Fatalf("parsing form: %v", err)
		}
		if r.FormValue("public_id") != "portfolio/blog/xyz" {
			t.Errorf("public_id = %q", r.FormValue("public_id"))
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"result": "ok"}`))
	}))
	defer srv.Close()

	c := NewClient("demo", "key", "secret")
	c.baseURL = srv.URL

	if err := c.DeleteImage(context.Background(), "portfolio/blog/xyz"); err != nil {
		t.Fatalf("DeleteImage: %v", err)
	}
}

func TestDeleteImageUnexpectedResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"result": "error"}`))
	}))
	defer srv.Close()

	c := NewClient("demo", "key", "secret")
	c.baseURL = srv.URL

	if err := c.DeleteImage(context.Background(), "x"); err == nil {
		t.Error("DeleteImage should fail on unexpected result")
	}
}

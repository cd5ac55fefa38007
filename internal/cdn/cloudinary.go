// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package cdn uploads images to Cloudinary through its signed REST API,
// preparing them locally first.
package cdn

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrNotConfigured is returned when Cloudinary credentials are missing.
var ErrNotConfigured = errors.New("cdn: Cloudinary not configured; set FOLIO_CLOUDINARY_* variables")

// UploadFolder is the Cloudinary folder for blog images.
const UploadFolder = "portfolio/blog"

const apiBase = "https://api.cloudinary.com/v1_1"

// Client talks to the Cloudinary upload API.
type Client struct {
	cloudName  string
	apiKey     string
	apiSecret  string
	baseURL    string
	httpClient *http.Client
	now        func() time.Time
}

// UploadResult is the subset of the Cloudinary response served to clients.
type UploadResult struct {
	PublicID  string `json:"public_id"`
	URL       string `json:"url"`
	SecureURL string `json:"secure_url"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Format    string `json:"format"`
	Bytes     int64  `json:"bytes"`
}

// NewClient creates a Cloudinary client. Missing credentials yield an
// unconfigured client whose calls fail fast with ErrNotConfigured.
func NewClient(cloudName, apiKey, apiSecret string) *Client {
	return &Client{
		cloudName:  cloudName,
		apiKey:     apiKey,
		apiSecret:  apiSecret,
		baseURL:    apiBase,
		httpClient: &http.Client{Timeout: 60 * time.Second},
		now:        time.Now,
	}
}

// Configured reports whether all credentials are set.
func (c *Client) Configured() bool {
	return c.cloudName != "" && c.apiKey != "" && c.apiSecret != ""
}

// UploadImage prepares the image and uploads it to the blog folder.
func (c *Client) UploadImage(ctx context.Context, data []byte) (*UploadResult, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}

	prepared, _, err := PrepareImage(data)
	if err != nil {
		return nil, err
	}

	publicID := uuid.NewString()
	timestamp := strconv.FormatInt(c.now().Unix(), 10)
	params := map[string]string{
		"folder":    UploadFolder,
		"public_id": publicID,
		"timestamp": timestamp,
	}
	params["signature"] = c.sign(map[string]string{
		"folder":    UploadFolder,
		"public_id": publicID,
		"timestamp": timestamp,
	})
	params["api_key"] = c.apiKey

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	for k, v := range params {
		if err := writer.WriteField(k, v); err != nil {
			return nil, fmt.Errorf("writing form field %s: %w", k, err)
		}
	}
	part, err := writer.CreateFormFile("file", publicID)
	if err != nil {
		return nil, fmt.Errorf("creating file part: %w", err)
	}
	if _, err := part.Write(prepared); err != nil {
		return nil, fmt.Errorf("writing file part: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("closing multipart writer: %w", err)
	}

	url := fmt.Sprintf("%s/%s/image/upload", c.baseURL, c.cloudName)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &body)
	if err != nil {
		return nil, fmt.Errorf("creating upload request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	var result UploadResult
	if err := c.do(req, &result); err != nil {
		return nil, fmt.Errorf("uploading image: %w", err)
	}
	return &result, nil
}

// DeleteImage destroys an uploaded image by its public ID.
func (c *Client) DeleteImage(ctx context.Context, publicID string) error {
	if !c.Configured() {
		return ErrNotConfigured
	}

	timestamp := strconv.FormatInt(c.now().Unix(), 10)
	signature := c.sign(map[string]string{
		"public_id": publicID,
		"timestamp": timestamp,
	})

	form := fmt.Sprintf("public_id=%s&timestamp=%s&api_key=%s&signature=%s",
		publicID, timestamp, c.apiKey, signature)

	url := fmt.Sprintf("%s/%s/image/destroy", c.baseURL, c.cloudName)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, strings.NewReader(form))
	if err != nil {
		return fmt.Errorf("creating destroy request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var result struct {
		Result string `json:"result"`
	}
	if err := c.do(req, &result); err != nil {
		return fmt.Errorf("destroying image: %w", err)
	}
	if result.Result != "ok" && result.Result != "not found" {
		return fmt.Errorf("destroying image: unexpected result %q", result.Result)
	}
	return nil
}

// sign computes the Cloudinary request signature: the SHA-1 hex digest of
// the alphabetically sorted parameters joined with '&', followed by the
// API secret.
func (c *Client) sign(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+params[k])
	}

	sum := sha1.Sum([]byte(strings.Join(pairs, "&") + c.apiSecret))
	return hex.EncodeToString(sum[:])
}

// do executes a request and decodes the JSON response into out.
func (c *Client) do(req *http.Request, out interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("cloudinary returned %d: %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

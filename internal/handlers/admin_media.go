// Copyright (c) 2026 Heritage Iron Restorations LLC <shop@heritageiron.example>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png" // register PNG decoder
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // register WebP decoder

	"heritageiron/internal/storage"
)

const (
	// maxUploadSize is the maximum allowed upload size (20 MB). Shop
	// photos come straight off phones, so this leaves plenty of room.
	maxUploadSize = 20 << 20

	// thumbMaxWidth is the maximum thumbnail width in pixels.
	thumbMaxWidth = 400

	// thumbQuality is the JPEG quality for generated thumbnails.
	thumbQuality = 80

	// maxImagePixels caps decoded image size to prevent memory bombs.
	maxImagePixels = 100_000_000
)

// allowedImageTypes are the MIME types accepted for gallery and post
// image uploads.
var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// Media handles image uploads for project galleries and post featured
// images. Files land in S3-compatible storage; the returned URLs are
// what gets stored on the post or project record. There is no media
// table: the object key is recoverable from the URL when a delete is
// requested.
type Media struct {
	storage *storage.Client
}

// NewMedia creates the media handler group. storage may be nil when
// object storage is not configured; uploads then return 503.
func NewMedia(storageClient *storage.Client) *Media {
	return &Media{storage: storageClient}
}

// Upload accepts one multipart image, stores the original plus a JPEG
// thumbnail, and returns both URLs.
func (m *Media) Upload(w http.ResponseWriter, r *http.Request) {
	if m.storage == nil {
		writeError(w, http.StatusServiceUnavailable, "object storage is not configured")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize+1024)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, "file too large, maximum size is 20 MB")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "no file provided")
		return
	}
	defer file.Close()

	if header.Size > maxUploadSize {
		writeError(w, http.StatusRequestEntityTooLarge, "file too large, maximum size is 20 MB")
		return
	}

	// Sniff the real content type; the client-supplied header is not
	// trusted.
	sniffBuf := make([]byte, 512)
	n, err := file.Read(sniffBuf)
	if err != nil && err != io.EOF {
		writeError(w, http.StatusInternalServerError, "failed to read file")
		return
	}
	contentType := http.DetectContentType(sniffBuf[:n])
	if !allowedImageTypes[contentType] {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("file type %q is not allowed", contentType))
		return
	}

	if _, err := file.Seek(0, io.SeekStart); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to process file")
		return
	}

	fileBytes, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to read file")
		return
	}

	now := time.Now()
	ext := filepath.Ext(header.Filename)
	if ext == "" {
		ext = extensionFromType(contentType)
	}
	fileID := uuid.New().String()
	key := fmt.Sprintf("media/%d/%02d/%s%s", now.Year(), now.Month(), fileID, ext)

	ctx := r.Context()
	if err := m.storage.Upload(ctx, key, contentType, bytes.NewReader(fileBytes), int64(len(fileBytes))); err != nil {
		slog.Error("s3 upload failed", "error", err, "key", key)
		writeError(w, http.StatusInternalServerError, "failed to upload file")
		return
	}

	// Thumbnail failures are logged, not fatal: the original is already
	// stored and usable.
	var thumbURL string
	thumbData, err := generateThumbnail(bytes.NewReader(fileBytes), thumbMaxWidth)
	if err != nil {
		slog.Warn("thumbnail generation failed", "error", err, "key", key)
	} else if thumbData != nil {
		thumbKey := fmt.Sprintf("media/%d/%02d/%s_thumb.jpg", now.Year(), now.Month(), fileID)
		if err := m.storage.Upload(ctx, thumbKey, "image/jpeg", bytes.NewReader(thumbData), int64(len(thumbData))); err != nil {
			slog.Warn("thumbnail upload failed", "error", err, "key", thumbKey)
		} else {
			thumbURL = m.storage.FileURL(thumbKey)
		}
	}

	slog.Info("media uploaded", "key", key, "size", len(fileBytes), "type", contentType)
	writeJSON(w, http.StatusCreated, map[string]any{
		"url":       m.storage.FileURL(key),
		"thumb_url": thumbURL,
		"filename":  header.Filename,
		"size":      int64(len(fileBytes)),
		"type":      contentType,
	})
}

type mediaDeleteRequest struct {
	URL string `json:"url"`
}

// Delete removes an uploaded file by its public URL. Only URLs that
// belong to the configured storage are accepted.
func (m *Media) Delete(w http.ResponseWriter, r *http.Request) {
	if m.storage == nil {
		writeError(w, http.StatusServiceUnavailable, "object storage is not configured")
		return
	}

	var req mediaDeleteRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	key, ok := m.storage.ExtractKey(req.URL)
	if !ok {
		writeError(w, http.StatusBadRequest, "url does not belong to this storage")
		return
	}

	if err := m.storage.Delete(r.Context(), key); err != nil {
		slog.Error("s3 delete failed", "error", err, "key", key)
		writeError(w, http.StatusInternalServerError, "failed to delete file")
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

// generateThumbnail creates a JPEG thumbnail constrained to maxWidth
// while preserving aspect ratio. Returns nil if the image is already
// narrower than maxWidth.
func generateThumbnail(src io.Reader, maxWidth int) ([]byte, error) {
	imgCfg, _, err := image.DecodeConfig(src)
	if err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if int64(imgCfg.Width)*int64(imgCfg.Height) > maxImagePixels {
		return nil, fmt.Errorf("image too large: %dx%d exceeds %d pixels", imgCfg.Width, imgCfg.Height, maxImagePixels)
	}

	if imgCfg.Width <= maxWidth {
		return nil, nil
	}

	seeker, ok := src.(io.Seeker)
	if !ok {
		return nil, fmt.Errorf("source does not support seeking")
	}
	if _, err := seeker.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seek: %w", err)
	}

	img, _, err := image.Decode(src)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	bounds := img.Bounds()
	ratio := float64(maxWidth) / float64(bounds.Dx())
	newHeight := int(float64(bounds.Dy()) * ratio)

	dst := image.NewRGBA(image.Rect(0, 0, maxWidth, newHeight))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: thumbQuality}); err != nil {
		return nil, fmt.Errorf("encode thumbnail: %w", err)
	}
	return buf.Bytes(), nil
}

// extensionFromType returns a file extension for the accepted MIME types.
func extensionFromType(contentType string) string {
	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	default:
		return ""
	}
}

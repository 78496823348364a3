// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package imaging

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif" // register decoder
	"image/jpeg"
	_ "image/png" // register decoder
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

const (
	// DefaultQuality is the JPEG quality used for uploads.
	DefaultQuality = 80

	// MaxInputSize caps how much of an image file is read.
	MaxInputSize = 32 * 1024 * 1024
)

var (
	// ErrPermissionDenied means the image exists but cannot be read.
	// The user can fix permissions and try again.
	ErrPermissionDenied = errors.New("permission denied reading image")

	// ErrEmptyRef is returned for a blank image reference.
	ErrEmptyRef = errors.New("empty image reference")

	// ErrTooLarge is returned when the file exceeds MaxInputSize.
	ErrTooLarge = errors.New("image too large")
)

// Encoder reads, re-encodes and base64-encodes images.
type Encoder struct {
	Quality int
}

// NewEncoder returns an Encoder using DefaultQuality.
func NewEncoder() *Encoder {
	return &Encoder{Quality: DefaultQuality}
}

// EncodeBase64 loads the image at ref (a path or file:// URI), decodes
// it, re-encodes it as JPEG and returns standard base64 without line
// breaks.
func (e *Encoder) EncodeBase64(ctx context.Context, ref string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	path, err := ResolvePath(ref)
	if err != nil {
		return "", err
	}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrPermission) {
			return "", fmt.Errorf("%w: %s", ErrPermissionDenied, path)
		}
		return "", fmt.Errorf("open image: %w", err)
	}
	defer f.Close()

	raw, err := io.ReadAll(io.LimitReader(f, MaxInputSize+1))
	if err != nil {
		return "", fmt.Errorf("read image: %w", err)
	}
	if len(raw) > MaxInputSize {
		return "", fmt.Errorf("%w: %s", ErrTooLarge, path)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	out, err := e.Compress(raw)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(out), nil
}

// Compress decodes any registered format and re-encodes it as JPEG.
func (e *Encoder) Compress(raw []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	quality := e.Quality
	if quality <= 0 || quality > 100 {
		quality = DefaultQuality
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}

// ResolvePath converts an image reference into a local file path,
// expanding a leading "~/".
func ResolvePath(ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", ErrEmptyRef
	}
	if strings.HasPrefix(ref, "file://") {
		u, err := url.Parse(ref)
		if err != nil {
			return "", fmt.Errorf("invalid image uri %q: %w", ref, err)
		}
		ref = u.Path
	}
	if strings.HasPrefix(ref, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			ref = filepath.Join(home, ref[2:])
		}
	}
	return filepath.Clean(ref), nil
}

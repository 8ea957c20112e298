// utils/images.go
package utils

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

const maxImageBytes = 5 * 1024 * 1024

// SaveBase64Image decodes b64 and writes it under root, keyed
// {purpose}/{storeID}/{uuid}.png. Returns the public URL path.
func SaveBase64Image(b64, root, purpose string, storeID uint) (string, error) {
	data, err := base64.StdEncoding.DecodeString(strip(b64))
	if err != nil {
		return "", err
	}
	if len(data) > maxImageBytes {
		return "", errors.New("image size exceeds 5MB limit")
	}

	folder := filepath.Join(root, purpose, fmt.Sprintf("%d", storeID))
	if err := os.MkdirAll(folder, 0755); err != nil {
		return "", err
	}
	filename := uuid.NewString() + ".png"
	if err := os.WriteFile(filepath.Join(folder, filename), data, 0644); err != nil {
		return "", err
	}
	return fmt.Sprintf("/uploads/%s/%d/%s", purpose, storeID, filename), nil
}

// SaveBase64ImageWithThumb also writes a 320px-wide thumbnail next to the
// original (suffix _thumb). Thumbnailing failure is not fatal; callers get an
// empty thumb URL back.
func SaveBase64ImageWithThumb(b64, root, purpose string, storeID uint) (url, thumbURL string, err error) {
	data, err := base64.StdEncoding.DecodeString(strip(b64))
	if err != nil {
		return "", "", err
	}
	if len(data) > maxImageBytes {
		return "", "", errors.New("image size exceeds 5MB limit")
	}

	folder := filepath.Join(root, purpose, fmt.Sprintf("%d", storeID))
	if err := os.MkdirAll(folder, 0755); err != nil {
		return "", "", err
	}
	name := uuid.NewString()
	if err := os.WriteFile(filepath.Join(folder, name+".png"), data, 0644); err != nil {
		return "", "", err
	}
	url = fmt.Sprintf("/uploads/%s/%d/%s.png", purpose, storeID, name)

	img, derr := imaging.Decode(bytes.NewReader(data))
	if derr != nil {
		return url, "", nil
	}
	thumb := imaging.Resize(img, 320, 0, imaging.Lanczos)
	if werr := imaging.Save(thumb, filepath.Join(folder, name+"_thumb.png")); werr != nil {
		return url, "", nil
	}
	thumbURL = fmt.Sprintf("/uploads/%s/%d/%s_thumb.png", purpose, storeID, name)
	return url, thumbURL, nil
}

// strip drops an optional data-URL prefix ("data:image/png;base64,...").
func strip(b64 string) string {
	if i := strings.Index(b64, ","); i >= 0 && strings.HasPrefix(b64, "data:") {
		return b64[i+1:]
	}
	return b64
}

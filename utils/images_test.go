package utils

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func pngBase64(t *testing.T, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes())
}

func TestSaveBase64Image(t *testing.T) {
	root := t.TempDir()

	url, err := SaveBase64Image("data:image/png;base64,"+pngBase64(t, 4, 4), root, "banners", 7)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if !strings.HasPrefix(url, "/uploads/banners/7/") {
		t.Fatalf("url = %q", url)
	}

	// the file is on disk under root
	rel := strings.TrimPrefix(url, "/uploads/")
	if _, err := os.Stat(filepath.Join(root, filepath.FromSlash(rel))); err != nil {
		t.Fatalf("stat saved file: %v", err)
	}

	if _, err := SaveBase64Image("%%not-base64%%", root, "banners", 7); err == nil {
		t.Fatal("garbage input accepted")
	}
}

func TestSaveBase64ImageWithThumb(t *testing.T) {
	root := t.TempDir()

	url, thumb, err := SaveBase64ImageWithThumb(pngBase64(t, 640, 480), root, "meals", 3)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if url == "" || thumb == "" {
		t.Fatalf("url=%q thumb=%q", url, thumb)
	}
	if !strings.HasSuffix(thumb, "_thumb.png") {
		t.Fatalf("thumb url = %q", thumb)
	}

	rel := strings.TrimPrefix(thumb, "/uploads/")
	if _, err := os.Stat(filepath.Join(root, filepath.FromSlash(rel))); err != nil {
		t.Fatalf("stat thumb: %v", err)
	}
}

func TestSaveBase64ImageWithThumbNonImage(t *testing.T) {
	root := t.TempDir()

	// valid base64 but not an image: the original saves, the thumb is skipped
	b64 := base64.StdEncoding.EncodeToString([]byte("plain text"))
	url, thumb, err := SaveBase64ImageWithThumb(b64, root, "meals", 3)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if url == "" {
		t.Fatal("original not saved")
	}
	if thumb != "" {
		t.Fatalf("thumb = %q, want empty", thumb)
	}
}

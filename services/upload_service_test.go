package services

import (
	"bytes"
	"errors"
	"image/color"
	"mime/multipart"
	"path/filepath"
	"strings"
	"testing"

	"etkinlik-api/config"

	"github.com/disintegration/imaging"
)

func fileHeader(t *testing.T, name string, content []byte) *multipart.FileHeader {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("file", name)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	part.Write(content)
	w.Close()

	form, err := multipart.NewReader(&body, w.Boundary()).ReadForm(10 << 20)
	if err != nil {
		t.Fatalf("read form: %v", err)
	}
	t.Cleanup(func() { form.RemoveAll() })
	return form.File["file"][0]
}

func pngBytes(t *testing.T, width, height int) []byte {
	t.Helper()
	img := imaging.New(width, height, color.NRGBA{R: 200, G: 30, B: 30, A: 255})
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func newTestUploadService(t *testing.T, maxImage int64) *UploadService {
	return NewUploadService(config.UploadConfig{
		Dir:           t.TempDir(),
		PublicPrefix:  "/uploads",
		MaxImageBytes: maxImage,
		MaxVideoBytes: 50 << 20,
		MaxImageWidth: 100,
	}, quietLogger())
}

func TestSaveResizesWideImage(t *testing.T) {
	svc := newTestUploadService(t, 5<<20)

	stored, err := svc.Save(fileHeader(t, "afis.png", pngBytes(t, 240, 120)))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if !stored.Resized || stored.MIME != "image/png" {
		t.Errorf("stored = %+v", stored)
	}
	if !strings.HasPrefix(stored.URL, "/uploads/") || !strings.HasSuffix(stored.URL, ".png") {
		t.Errorf("url = %q", stored.URL)
	}

	img, err := imaging.Open(filepath.Join(svc.cfg.Dir, stored.Filename))
	if err != nil {
		t.Fatalf("open stored image: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 100 || b.Dy() != 50 {
		t.Errorf("stored size = %dx%d, want 100x50", b.Dx(), b.Dy())
	}
}

func TestSaveKeepsSmallImage(t *testing.T) {
	svc := newTestUploadService(t, 5<<20)

	stored, err := svc.Save(fileHeader(t, "ikon.png", pngBytes(t, 40, 40)))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if stored.Resized {
		t.Error("small image was resized")
	}
}

func TestSaveRejects(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content []byte
		limit   int64
		want    error
	}{
		{"text disguised as image", "foto.jpg", []byte("merhaba dünya"), 5 << 20, ErrUnsupportedType},
		{"image over the limit", "buyuk.png", nil, 16, ErrFileTooLarge},
		{"empty", "bos.png", []byte{}, 5 << 20, ErrEmptyFile},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			content := tt.content
			if content == nil {
				content = pngBytes(t, 20, 20)
			}
			svc := newTestUploadService(t, tt.limit)
			if _, err := svc.Save(fileHeader(t, tt.file, content)); !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestSaveChecksPixelsBeforeDecoding(t *testing.T) {
	svc := newTestUploadService(t, 5<<20)
	svc.cfg.MaxImagePixels = 1000

	if _, err := svc.Save(fileHeader(t, "dev.png", pngBytes(t, 240, 120))); !errors.Is(err, ErrImageDimensions) {
		t.Fatalf("err = %v, want %v", err, ErrImageDimensions)
	}
	if _, err := svc.Save(fileHeader(t, "kucuk.png", pngBytes(t, 20, 20))); err != nil {
		t.Fatalf("image under the pixel cap rejected: %v", err)
	}
}

func TestMaxRequestBytesCoversLargestKind(t *testing.T) {
	svc := newTestUploadService(t, 5<<20)
	if got, want := svc.MaxRequestBytes(), int64(50<<20+formOverhead); got != want {
		t.Errorf("MaxRequestBytes = %d, want %d", got, want)
	}
}

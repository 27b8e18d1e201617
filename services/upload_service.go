package services

import (
	"errors"
	"fmt"
	"image"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"time"

	"etkinlik-api/config"

	"github.com/disintegration/imaging"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrUnsupportedType = errors.New("unsupported file type")
	ErrFileTooLarge    = errors.New("file too large")
	ErrEmptyFile       = errors.New("empty file")
	ErrImageDimensions = errors.New("image dimensions too large")
)

const (
	defaultMaxImagePixels = 40_000_000
	// multipart headers and boundaries on top of the file itself
	formOverhead = 1 << 20
)

const (
	kindImage = "image"
	kindVideo = "video"
)

type allowedType struct {
	ext       string
	kind      string
	resizable bool
}

// Keyed by the sniffed MIME type, never the client's Content-Type.
var allowedTypes = map[string]allowedType{
	"image/jpeg":      {".jpg", kindImage, true},
	"image/png":       {".png", kindImage, true},
	"image/gif":       {".gif", kindImage, false},
	"image/webp":      {".webp", kindImage, false},
	"video/mp4":       {".mp4", kindVideo, false},
	"video/webm":      {".webm", kindVideo, false},
	"video/quicktime": {".mov", kindVideo, false},
}

type StoredFile struct {
	URL      string `json:"imageUrl"`
	MIME     string `json:"mimeType"`
	Size     int64  `json:"size"`
	Resized  bool   `json:"resized"`
	Filename string `json:"filename"`
}

type UploadService struct {
	cfg config.UploadConfig
	log *logrus.Logger
	now func() time.Time
}

func NewUploadService(cfg config.UploadConfig, log *logrus.Logger) *UploadService {
	return &UploadService{cfg: cfg, log: log, now: time.Now}
}

// MaxRequestBytes bounds a whole upload request body.
func (s *UploadService) MaxRequestBytes() int64 {
	limit := s.cfg.MaxImageBytes
	if s.cfg.MaxVideoBytes > limit {
		limit = s.cfg.MaxVideoBytes
	}
	return limit + formOverhead
}

func (s *UploadService) maxPixels() int {
	if s.cfg.MaxImagePixels > 0 {
		return s.cfg.MaxImagePixels
	}
	return defaultMaxImagePixels
}

// Save sniffs, size-checks and stores an uploaded file under the upload dir.
// JPEG and PNG images wider than the configured maximum are scaled down.
func (s *UploadService) Save(fh *multipart.FileHeader) (*StoredFile, error) {
	if fh.Size <= 0 {
		return nil, ErrEmptyFile
	}

	src, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	mt, err := mimetype.DetectReader(src)
	if err != nil {
		return nil, fmt.Errorf("detect type: %w", err)
	}
	allowed, ok := lookupAllowed(mt)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, mt.String())
	}

	limit := s.cfg.MaxImageBytes
	if allowed.kind == kindVideo {
		limit = s.cfg.MaxVideoBytes
	}
	if fh.Size > limit {
		return nil, fmt.Errorf("%w: %d > %d", ErrFileTooLarge, fh.Size, limit)
	}

	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("rewind upload: %w", err)
	}
	if err := os.MkdirAll(s.cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}

	name := fmt.Sprintf("%s-%s%s", s.now().Format("20060102"), uuid.NewString(), allowed.ext)
	dst := filepath.Join(s.cfg.Dir, name)

	resized := false
	if allowed.resizable && s.cfg.MaxImageWidth > 0 {
		resized, err = s.saveImage(src, dst)
	} else {
		err = saveRaw(src, dst)
	}
	if err != nil {
		os.Remove(dst)
		return nil, err
	}

	size := fh.Size
	if info, statErr := os.Stat(dst); statErr == nil {
		size = info.Size()
	}

	s.log.WithFields(logrus.Fields{
		"file":    name,
		"mime":    mt.String(),
		"size":    size,
		"resized": resized,
	}).Info("upload stored")

	return &StoredFile{
		URL:      path.Join(s.cfg.PublicPrefix, name),
		MIME:     mt.String(),
		Size:     size,
		Resized:  resized,
		Filename: name,
	}, nil
}

// lookupAllowed walks up the detected type's parents so aliases still match.
func lookupAllowed(mt *mimetype.MIME) (allowedType, bool) {
	for m := mt; m != nil; m = m.Parent() {
		if a, ok := allowedTypes[m.String()]; ok {
			return a, true
		}
	}
	return allowedType{}, false
}

func (s *UploadService) saveImage(src io.ReadSeeker, dst string) (bool, error) {
	cfg, _, err := image.DecodeConfig(src)
	if err != nil {
		return false, fmt.Errorf("%w: cannot read image header", ErrUnsupportedType)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || cfg.Width > s.maxPixels()/cfg.Height {
		return false, fmt.Errorf("%w: %dx%d", ErrImageDimensions, cfg.Width, cfg.Height)
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return false, fmt.Errorf("rewind upload: %w", err)
	}

	img, err := imaging.Decode(src, imaging.AutoOrientation(true))
	if err != nil {
		return false, fmt.Errorf("%w: cannot decode image", ErrUnsupportedType)
	}

	resized := false
	if img.Bounds().Dx() > s.cfg.MaxImageWidth {
		img = imaging.Resize(img, s.cfg.MaxImageWidth, 0, imaging.Lanczos)
		resized = true
	}
	if err := imaging.Save(img, dst, imaging.JPEGQuality(85)); err != nil {
		return false, fmt.Errorf("write image: %w", err)
	}
	return resized, nil
}

func saveRaw(src io.Reader, dst string) error {
	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	if _, err := io.Copy(out, src); err != nil {
		out.Close()
		return fmt.Errorf("write file: %w", err)
	}
	return out.Close()
}

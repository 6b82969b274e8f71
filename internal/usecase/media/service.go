package media

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path"
	"regexp"
	"strings"
	"time"

	"school-cms/internal/infra/objectstore"
	"school-cms/internal/observability/logging"
	"school-cms/internal/observability/metrics"
)

// DefaultMaxBytes is the upload ceiling used when none is configured.
const DefaultMaxBytes = 10 << 20

// Prefix is the object store folder holding gallery uploads.
const Prefix = "gallery/"

var allowedTypes = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
	"image/webp": true,
	"image/gif":  true,
}

var unsafeName = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// File is one uploaded file.
type File struct {
	Name        string
	ContentType string // from the multipart part header
	Size        int64  // -1 when unknown
	Body        io.Reader
}

// Service validates and stores uploads.
type Service struct {
	Store    objectstore.Store
	MaxBytes int64
	Now      func() time.Time
	Logger   *slog.Logger
}

func (s *Service) maxBytes() int64 {
	if s.MaxBytes > 0 {
		return s.MaxBytes
	}
	return DefaultMaxBytes
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Upload checks the declared and sniffed content type and the size, then
// stores the file at gallery/<unix-ms>-<name> with a random suffix.
func (s *Service) Upload(ctx context.Context, f File) (objectstore.Object, error) {
	obj, err := s.upload(ctx, f)

	res := "success"
	switch {
	case err == nil:
	case errors.Is(err, ErrUnsupportedType):
		res = "unsupported_type"
	case errors.Is(err, ErrTooLarge):
		res = "too_large"
	default:
		res = "failure"
	}
	metrics.RecordUpload(res, obj.Size)
	return obj, err
}

func (s *Service) upload(ctx context.Context, f File) (objectstore.Object, error) {
	declared := normalizeType(f.ContentType)
	if !allowedTypes[declared] {
		return objectstore.Object{}, fmt.Errorf("%w: %s", ErrUnsupportedType, declared)
	}
	limit := s.maxBytes()
	if f.Size > limit {
		return objectstore.Object{}, fmt.Errorf("%w: %d bytes (max %d)", ErrTooLarge, f.Size, limit)
	}

	// 先頭 512 バイトで実際の形式を確認
	br := bufio.NewReaderSize(f.Body, 512)
	head, err := br.Peek(512)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return objectstore.Object{}, fmt.Errorf("read upload: %w", err)
	}
	if len(head) == 0 {
		return objectstore.Object{}, ErrEmpty
	}
	sniffed := normalizeType(http.DetectContentType(head))
	if !allowedTypes[sniffed] {
		return objectstore.Object{}, fmt.Errorf("%w: content looks like %s", ErrUnsupportedType, sniffed)
	}

	body := &limitedReader{r: br, remaining: limit}
	pathname := fmt.Sprintf("%s%d-%s", Prefix, s.now().UnixMilli(), SanitizeName(f.Name))

	obj, err := s.Store.Put(ctx, pathname, body, objectstore.PutOptions{
		ContentType:     sniffed,
		AddRandomSuffix: true,
	})
	if body.exceeded {
		return objectstore.Object{}, fmt.Errorf("%w: more than %d bytes", ErrTooLarge, limit)
	}
	if err != nil {
		return objectstore.Object{}, fmt.Errorf("store upload: %w", err)
	}

	logger := s.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logging.WithRequestID(ctx, logger).Info("image uploaded",
		slog.String("pathname", obj.Pathname),
		slog.String("content_type", sniffed),
		slog.Int64("size", obj.Size))
	return obj, nil
}

// SanitizeName keeps the base name of an uploaded file, lower-cased, with
// anything outside [a-z0-9._-] collapsed to "-".
func SanitizeName(name string) string {
	base := path.Base(strings.ReplaceAll(name, `\`, "/"))
	base = strings.ToLower(unsafeName.ReplaceAllString(base, "-"))
	base = strings.ReplaceAll(base, "-.", ".")
	base = strings.Trim(base, "-.")
	if base == "" {
		return "upload"
	}
	return base
}

func normalizeType(ct string) string {
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = ct[:i]
	}
	return strings.ToLower(strings.TrimSpace(ct))
}

// limitedReader fails once more than remaining bytes are read.
type limitedReader struct {
	r         io.Reader
	remaining int64
	exceeded  bool
}

func (l *limitedReader) Read(p []byte) (int, error) {
	if l.remaining < 0 {
		l.exceeded = true
		return 0, ErrTooLarge
	}
	if int64(len(p)) > l.remaining+1 {
		p = p[:l.remaining+1]
	}
	n, err := l.r.Read(p)
	l.remaining -= int64(n)
	if l.remaining < 0 {
		l.exceeded = true
		return n, ErrTooLarge
	}
	return n, err
}

package images

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mk-cardoso198/engajapro-digital-hub/internal/middleware"
	"github.com/mk-cardoso198/engajapro-digital-hub/internal/storage"
	"github.com/mk-cardoso198/engajapro-digital-hub/internal/transport"
)

type Handler struct {
	service *Service
	log     *slog.Logger
}

func NewHandler(service *Service, log *slog.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log,
	}
}

// acceptedTypes mirrors the per-bucket accept lists of the admin forms:
// logos additionally allow SVG.
func acceptedTypes(bucket string) map[string]bool {
	types := map[string]bool{
		ContentTypeJPEG: true,
		ContentTypePNG:  true,
		ContentTypeWebP: true,
	}
	if bucket == storage.BucketClientLogos {
		types[ContentTypeSVG] = true
	}
	return types
}

func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	bucket := strings.TrimSpace(chi.URLParam(r, "bucket"))
	if !storage.KnownBucket(bucket) {
		log.Warn("upload: unknown bucket", slog.String("bucket", bucket))
		transport.WriteError(w, http.StatusBadRequest, "unknown bucket", nil)
		return
	}

	// Bound the request body before buffering; the extra megabyte covers
	// the multipart framing around the file part.
	r.Body = http.MaxBytesReader(w, r.Body, h.service.MaxSizeBytes()+1<<20)

	file, header, err := r.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			log.Warn("upload: body too large", slog.Int64("limit", maxErr.Limit))
			transport.WriteError(w, http.StatusRequestEntityTooLarge, "file too large", nil)
			return
		}
		log.Warn("upload: missing file")
		transport.WriteError(w, http.StatusBadRequest, "missing file", nil)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			log.Warn("upload: body too large", slog.Int64("limit", maxErr.Limit))
			transport.WriteError(w, http.StatusRequestEntityTooLarge, "file too large", nil)
			return
		}
		log.Error("upload: read error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusBadRequest, "unreadable file", nil)
		return
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}
	if !acceptedTypes(bucket)[contentType] {
		log.Warn("upload: unsupported type", slog.String("content_type", contentType))
		transport.WriteError(w, http.StatusBadRequest, "unsupported image type", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	url, err := h.service.Upload(ctx, bucket, data, contentType, false)
	if err != nil {
		switch {
		case errors.Is(err, ErrFileTooLarge):
			log.Warn("upload: file too large", slog.Int("size", len(data)))
			transport.WriteError(w, http.StatusRequestEntityTooLarge, err.Error(), nil)
		case errors.Is(err, ErrUnsupportedFormat):
			log.Warn("upload: decode failed")
			transport.WriteError(w, http.StatusBadRequest, err.Error(), nil)
		default:
			log.Error("upload: storage error", slog.String("error", err.Error()))
			transport.WriteError(w, http.StatusBadGateway, err.Error(), nil)
		}
		return
	}

	log.Info("upload: ok", slog.String("bucket", bucket), slog.String("url", url))
	transport.WriteJSON(w, http.StatusCreated, map[string]string{"url": url})
}

func (h *Handler) logWithRequest(r *http.Request) *slog.Logger {
	if r == nil {
		return h.log
	}
	if id := middleware.RequestIDFromContext(r.Context()); id != "" {
		return h.log.With(slog.String("request_id", id))
	}
	return h.log
}

package genimages

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/mk-cardoso198/engajapro-digital-hub/internal/httpx"
	"github.com/mk-cardoso198/engajapro-digital-hub/internal/middleware"
	"github.com/mk-cardoso198/engajapro-digital-hub/internal/transport"
	"github.com/mk-cardoso198/engajapro-digital-hub/internal/validation"
)

type GenerateRequest struct {
	ServiceTitle string `json:"service_title" validate:"required"`
	ImageType    string `json:"image_type" validate:"required,oneof=back front"`
}

type GenerateResponse struct {
	URL      string `json:"url"`
	Filename string `json:"filename"`
}

type Handler struct {
	generator *Generator
	val       *validation.Validator
	log       *slog.Logger
}

func NewHandler(generator *Generator, val *validation.Validator, log *slog.Logger) *Handler {
	return &Handler{
		generator: generator,
		val:       val,
		log:       log,
	}
}

func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)

	if h.generator == nil {
		log.Warn("service image generate: not configured")
		transport.WriteError(w, http.StatusServiceUnavailable, "image generation not configured", nil)
		return
	}

	var req GenerateRequest
	if err := httpx.DecodeJSON(r.Body, &req); err != nil {
		log.Warn("service image generate: invalid json")
		transport.WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		log.Warn("service image generate: validation error")
		transport.WriteError(w, http.StatusBadRequest, "validation error", httpx.ValidationDetails(h.val.ValidationErrors(err)))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 90*time.Second)
	defer cancel()

	url, filename, err := h.generator.Generate(ctx, req.ServiceTitle, req.ImageType)
	if err != nil {
		switch {
		case errors.Is(err, ErrUnknownService):
			log.Warn("service image generate: unknown service", slog.String("service_title", req.ServiceTitle))
			transport.WriteError(w, http.StatusBadRequest, "no prompts for service", nil)
		case errors.Is(err, ErrNoImageData):
			log.Error("service image generate: empty gateway response")
			transport.WriteError(w, http.StatusBadGateway, "image generation failed", nil)
		default:
			log.Error("service image generate: error", slog.String("error", err.Error()))
			transport.WriteError(w, http.StatusBadGateway, "image generation failed", nil)
		}
		return
	}

	log.Info("service image generate: ok",
		slog.String("service_title", req.ServiceTitle),
		slog.String("image_type", req.ImageType),
		slog.String("filename", filename))
	transport.WriteJSON(w, http.StatusOK, GenerateResponse{URL: url, Filename: filename})
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

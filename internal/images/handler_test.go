package images

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/go-chi/chi/v5"
)

func multipartBody(t *testing.T, payload []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="file"; filename="logo.png"`)
	header.Set("Content-Type", ContentTypePNG)
	part, err := mw.CreatePart(header)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write(payload); err != nil {
		t.Fatalf("write part: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return &buf, mw.FormDataContentType()
}

func uploadRequest(body *bytes.Buffer, contentType, bucket string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/admin/upload/"+bucket, body)
	req.Header.Set("Content-Type", contentType)

	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("bucket", bucket)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
}

func TestUploadRejectsOversizedBodyBeforeBuffering(t *testing.T) {
	uploader := &fakeUploader{}
	handler := NewHandler(NewService(uploader, 1), slog.New(slog.NewTextHandler(io.Discard, nil)))

	body, contentType := multipartBody(t, make([]byte, 3<<20))
	rec := httptest.NewRecorder()

	handler.Upload(rec, uploadRequest(body, contentType, "client-logos"))

	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413, got %d", rec.Code)
	}
	if uploader.calls != 0 {
		t.Fatalf("expected no storage calls, got %d", uploader.calls)
	}
}

func TestUploadAcceptsSmallFile(t *testing.T) {
	uploader := &fakeUploader{}
	handler := NewHandler(NewService(uploader, 5), slog.New(slog.NewTextHandler(io.Discard, nil)))

	body, contentType := multipartBody(t, encodePNG(t, 32, 32, false))
	rec := httptest.NewRecorder()

	handler.Upload(rec, uploadRequest(body, contentType, "service-images"))

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if uploader.calls != 1 {
		t.Fatalf("expected one storage call, got %d", uploader.calls)
	}
}

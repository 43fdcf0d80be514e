package images

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"strings"
	"testing"
)

func encodePNG(t *testing.T, width, height int, transparent bool) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	alpha := uint8(255)
	if transparent {
		alpha = 128
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: 40, G: 90, B: 200, A: alpha})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func TestProcessDownscalesLongestSide(t *testing.T) {
	data := encodePNG(t, 4000, 2000, false)

	result, err := Process(data, ContentTypePNG)
	if err != nil {
		t.Fatalf("Process error: %v", err)
	}
	if result.Width != 1920 || result.Height != 960 {
		t.Fatalf("expected 1920x960, got %dx%d", result.Width, result.Height)
	}
	if result.ContentType != ContentTypeJPEG {
		t.Fatalf("expected jpeg output, got %s", result.ContentType)
	}

	decoded, err := jpeg.Decode(bytes.NewReader(result.Data))
	if err != nil {
		t.Fatalf("decode output: %v", err)
	}
	bounds := decoded.Bounds()
	if bounds.Dx() != 1920 || bounds.Dy() != 960 {
		t.Fatalf("encoded dimensions %dx%d", bounds.Dx(), bounds.Dy())
	}
}

func TestProcessKeepsSmallImageSize(t *testing.T) {
	data := encodePNG(t, 640, 480, false)

	result, err := Process(data, ContentTypePNG)
	if err != nil {
		t.Fatalf("Process error: %v", err)
	}
	if result.Width != 640 || result.Height != 480 {
		t.Fatalf("expected 640x480, got %dx%d", result.Width, result.Height)
	}
}

func TestProcessPreservesTransparentPNG(t *testing.T) {
	data := encodePNG(t, 100, 100, true)

	result, err := Process(data, ContentTypePNG)
	if err != nil {
		t.Fatalf("Process error: %v", err)
	}
	if result.ContentType != ContentTypePNG {
		t.Fatalf("expected png output for transparent input, got %s", result.ContentType)
	}
	if result.Ext != ".png" {
		t.Fatalf("expected .png extension, got %s", result.Ext)
	}
}

func TestProcessPassesThroughSVG(t *testing.T) {
	svg := []byte(`<svg xmlns="http://www.w3.org/2000/svg"><rect width="10" height="10"/></svg>`)

	result, err := Process(svg, ContentTypeSVG)
	if err != nil {
		t.Fatalf("Process error: %v", err)
	}
	if !bytes.Equal(result.Data, svg) {
		t.Fatalf("svg bytes were modified")
	}
	if result.ContentType != ContentTypeSVG {
		t.Fatalf("expected svg content type, got %s", result.ContentType)
	}
}

func TestProcessRejectsGarbage(t *testing.T) {
	if _, err := Process([]byte("not an image"), ContentTypeJPEG); err == nil {
		t.Fatalf("expected decode error")
	}
}

type fakeUploader struct {
	calls      int
	lastBucket string
	lastPath   string
	lastType   string
	lastUpsert bool
	err        error
}

func (f *fakeUploader) Upload(ctx context.Context, bucket, path string, data []byte, contentType string, upsert bool) error {
	f.calls++
	f.lastBucket = bucket
	f.lastPath = path
	f.lastType = contentType
	f.lastUpsert = upsert
	return f.err
}

func (f *fakeUploader) PublicURL(bucket, path string) string {
	return "https://cdn.test/" + bucket + "/" + path
}

func TestUploadSizeGateSkipsStorage(t *testing.T) {
	uploader := &fakeUploader{}
	svc := NewService(uploader, 1)

	oversized := make([]byte, 2*1024*1024)
	_, err := svc.Upload(context.Background(), "client-logos", oversized, ContentTypePNG, false)
	if err == nil {
		t.Fatalf("expected size error")
	}
	if uploader.calls != 0 {
		t.Fatalf("expected no storage calls, got %d", uploader.calls)
	}
}

func TestUploadReturnsPublicURL(t *testing.T) {
	uploader := &fakeUploader{}
	svc := NewService(uploader, 5)

	url, err := svc.Upload(context.Background(), "service-images", encodePNG(t, 32, 32, false), ContentTypePNG, false)
	if err != nil {
		t.Fatalf("Upload error: %v", err)
	}
	if uploader.calls != 1 {
		t.Fatalf("expected one storage call, got %d", uploader.calls)
	}
	if uploader.lastUpsert {
		t.Fatalf("expected upsert=false")
	}
	if !strings.HasPrefix(url, "https://cdn.test/service-images/") {
		t.Fatalf("unexpected url: %s", url)
	}
	if !strings.HasSuffix(uploader.lastPath, ".jpg") {
		t.Fatalf("expected .jpg object name, got %s", uploader.lastPath)
	}
}

package images

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"time"

	"github.com/google/uuid"
	"github.com/nfnt/resize"

	_ "golang.org/x/image/webp"
)

var (
	ErrFileTooLarge      = errors.New("file exceeds the size limit")
	ErrUnsupportedFormat = errors.New("unsupported image format")
)

const (
	// maxDimension caps the longest side of an uploaded raster image.
	maxDimension = 1920
	jpegQuality  = 85

	ContentTypeJPEG = "image/jpeg"
	ContentTypePNG  = "image/png"
	ContentTypeWebP = "image/webp"
	ContentTypeSVG  = "image/svg+xml"
)

type Result struct {
	Data        []byte
	ContentType string
	Ext         string
	Width       int
	Height      int
}

// Process prepares an uploaded image for storage: rasters larger than
// maxDimension on their longest side are downscaled proportionally, opaque
// images re-encode as JPEG, transparent PNGs keep their format and SVG
// passes through untouched.
func Process(data []byte, contentType string) (Result, error) {
	if contentType == ContentTypeSVG {
		return Result{Data: data, ContentType: ContentTypeSVG, Ext: ".svg"}, nil
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	if width > maxDimension || height > maxDimension {
		var tw, th uint
		if width >= height {
			tw = maxDimension
			th = uint(float64(height) * float64(maxDimension) / float64(width))
		} else {
			th = maxDimension
			tw = uint(float64(width) * float64(maxDimension) / float64(height))
		}
		img = resize.Resize(tw, th, img, resize.Lanczos3)
		bounds = img.Bounds()
		width = bounds.Dx()
		height = bounds.Dy()
	}

	if format == "png" && hasTransparency(img) {
		var buf bytes.Buffer
		if err := png.Encode(&buf, img); err != nil {
			return Result{}, err
		}
		return Result{Data: buf.Bytes(), ContentType: ContentTypePNG, Ext: ".png", Width: width, Height: height}, nil
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return Result{}, err
	}
	return Result{Data: buf.Bytes(), ContentType: ContentTypeJPEG, Ext: ".jpg", Width: width, Height: height}, nil
}

func hasTransparency(img image.Image) bool {
	if op, ok := img.(interface{ Opaque() bool }); ok {
		return !op.Opaque()
	}
	return false
}

// Filename builds a collision-resistant object name: random token plus a
// millisecond timestamp plus the encoded extension.
func Filename(ext string) string {
	return fmt.Sprintf("%s-%d%s", uuid.NewString(), time.Now().UnixMilli(), ext)
}

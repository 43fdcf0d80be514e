package storage

import "context"

const (
	BucketProjectImages = "project-images"
	BucketServiceImages = "service-images"
	BucketClientLogos   = "client-logos"
)

// KnownBucket reports whether name is one of the buckets this service owns.
func KnownBucket(name string) bool {
	switch name {
	case BucketProjectImages, BucketServiceImages, BucketClientLogos:
		return true
	}
	return false
}

type Uploader interface {
	// Upload writes data to bucket/path. With upsert=false an existing
	// object is never overwritten.
	Upload(ctx context.Context, bucket, path string, data []byte, contentType string, upsert bool) error
	PublicURL(bucket, path string) string
}

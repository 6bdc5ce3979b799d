package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"hotel-booking/internal/domain"
)

// S3Options conveys upload destination metadata.
type S3Options struct {
	Bucket    string
	KeyPrefix string
	// PublicBaseURL replaces the object location reported by S3, e.g. a CDN
	// domain in front of the bucket.
	PublicBaseURL string
}

// S3Uploader stores hotel images in Amazon S3 (or compatible APIs).
type S3Uploader struct {
	uploader *manager.Uploader
	opts     S3Options
}

func NewS3Uploader(client *s3.Client, opts S3Options) (*S3Uploader, error) {
	if opts.Bucket == "" {
		return nil, errors.New("storage bucket is required")
	}
	return &S3Uploader{
		uploader: manager.NewUploader(client),
		opts:     opts,
	}, nil
}

func (s *S3Uploader) Upload(ctx context.Context, data []byte, mimeType string) (string, error) {
	key := objectKey(s.opts.KeyPrefix, mimeType)

	input := &s3.PutObjectInput{
		Bucket: aws.String(s.opts.Bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(data),
	}
	if mimeType != "" {
		input.ContentType = aws.String(mimeType)
	}

	out, err := s.uploader.Upload(ctx, input)
	if err != nil {
		return "", fmt.Errorf("%w: s3 upload %s: %v", domain.ErrUpstream, key, err)
	}

	if base := strings.TrimRight(s.opts.PublicBaseURL, "/"); base != "" {
		return base + "/" + key, nil
	}
	return out.Location, nil
}

var _ AssetUploader = (*S3Uploader)(nil)

package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// File is an uploaded image payload.
type File struct {
	Name        string
	ContentType string
	Size        int64
	Body        io.Reader
}

// UploadResult describes a persisted image.
type UploadResult struct {
	Key       string
	SecureURL string
}

// ImageUploader persists images and returns their public location.
type ImageUploader interface {
	UploadImage(ctx context.Context, file *File, folder string) (*UploadResult, error)
}

// ObjectPutter is the subset of the S3 client used by S3Uploader.
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Uploader stores images in an S3 compatible bucket.
type S3Uploader struct {
	client    ObjectPutter
	bucket    string
	publicURL string
	logger    zerolog.Logger
}

// NewS3Uploader creates an uploader. publicURL is the externally reachable endpoint
// serving the bucket; object URLs are built as publicURL/bucket/key.
func NewS3Uploader(client ObjectPutter, bucket, publicURL string, logger zerolog.Logger) *S3Uploader {
	return &S3Uploader{
		client:    client,
		bucket:    bucket,
		publicURL: strings.TrimRight(publicURL, "/"),
		logger:    logger.With().Str("service", "S3Uploader").Logger(),
	}
}

// UploadImage writes the file under folder with a random name that keeps the
// original extension.
func (u *S3Uploader) UploadImage(ctx context.Context, file *File, folder string) (*UploadResult, error) {
	if file == nil || file.Body == nil {
		return nil, fmt.Errorf("no image to upload")
	}
	key := ObjectKey(folder, file.Name)

	input := &s3.PutObjectInput{
		Bucket: aws.String(u.bucket),
		Key:    aws.String(key),
		Body:   file.Body,
	}
	if file.ContentType != "" {
		input.ContentType = aws.String(file.ContentType)
	}
	if file.Size > 0 {
		input.ContentLength = aws.Int64(file.Size)
	}

	if _, err := u.client.PutObject(ctx, input); err != nil {
		u.logger.Error().Err(err).Str("key", key).Msg("Failed to upload image")
		return nil, fmt.Errorf("failed to upload image: %w", err)
	}

	u.logger.Debug().Str("key", key).Int64("size", file.Size).Msg("Image uploaded")
	return &UploadResult{
		Key:       key,
		SecureURL: fmt.Sprintf("%s/%s/%s", u.publicURL, u.bucket, key),
	}, nil
}

// ObjectKey builds folder/<uuid><ext> for an uploaded file name.
func ObjectKey(folder, filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	name := uuid.NewString() + ext
	folder = strings.Trim(folder, "/")
	if folder == "" {
		return name
	}
	return folder + "/" + name
}

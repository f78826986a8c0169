// Package images issues presigned S3 upload URLs for todo attachments.
package images

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

var (
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, optFns...)
	}
)

// S3Store stores one object per attachment, keyed by image id.
type S3Store struct {
	presign    *s3.PresignClient
	bucket     string
	expiration time.Duration
}

// NewS3Store builds the presign client. A non-empty baseEndpoint points the
// client at an S3-compatible server (MinIO, LocalStack) using path-style URLs.
func NewS3Store(cfg aws.Config, bucket, baseEndpoint string, expiration time.Duration) *S3Store {
	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		if baseEndpoint != "" {
			o.BaseEndpoint = aws.String(baseEndpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Store{
		presign:    newS3PresignClient(client),
		bucket:     bucket,
		expiration: expiration,
	}
}

// ImageURL is the public location of the attachment once uploaded.
func (s *S3Store) ImageURL(imageID string) string {
	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.bucket, imageID)
}

// GenerateUploadURL returns a presigned PUT URL for imageID.
func (s *S3Store) GenerateUploadURL(ctx context.Context, imageID string) (string, error) {
	req, err := presignPutObject(s.presign, ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(imageID),
	}, s3.WithPresignExpires(s.expiration))
	if err != nil {
		return "", fmt.Errorf("failed to presign upload: %w", err)
	}

	return req.URL, nil
}

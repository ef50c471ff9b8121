package avatar

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/contact-hub/contact_hub/internal/config"
)

// S3Store uploads avatars to an S3-compatible bucket (AWS or MinIO) and
// builds public URLs from the endpoint and bucket name.
type S3Store struct {
	client   *s3.Client
	endpoint string
	bucket   string
}

// NewS3Store builds an avatar store from the application config. Static
// credentials and a base-endpoint override keep it MinIO-compatible.
func NewS3Store(ctx context.Context, cfg config.Config) (*S3Store, error) {
	if cfg.S3Endpoint == "" {
		return nil, fmt.Errorf("s3 endpoint is required")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.S3AccessKey,
			cfg.S3SecretKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("load s3 config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.S3Endpoint)
		o.UsePathStyle = true
	})

	return &S3Store{
		client:   client,
		endpoint: strings.TrimSuffix(cfg.S3Endpoint, "/"),
		bucket:   cfg.S3Bucket,
	}, nil
}

// Upload puts the object under key and returns its public URL.
func (s *S3Store) Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("put avatar object: %w", err)
	}
	return fmt.Sprintf("%s/%s/%s", s.endpoint, s.bucket, key), nil
}

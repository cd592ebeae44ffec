package output

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"

	"github.com/df07/go-pathtracer/pkg/core"
)

// UploadTimeout bounds a single object upload
const UploadTimeout = 30 * time.Second

// ErrS3NotConfigured is returned when an upload is requested without a bucket
var ErrS3NotConfigured = errors.New("s3 upload not configured")

// S3Config holds the connection settings for an S3-compatible object store
type S3Config struct {
	AccessKey string
	SecretKey string
	Endpoint  string // Empty uses the AWS endpoint for Region
	Region    string
	Bucket    string
	ACL       string // Optional canned ACL, e.g. "public-read"
}

// S3ConfigFromEnv reads S3_ACCESS_KEY, S3_SECRET_KEY, S3_ENDPOINT, S3_REGION,
// S3_BUCKET and S3_ACL
func S3ConfigFromEnv() S3Config {
	return S3Config{
		AccessKey: os.Getenv("S3_ACCESS_KEY"),
		SecretKey: os.Getenv("S3_SECRET_KEY"),
		Endpoint:  os.Getenv("S3_ENDPOINT"),
		Region:    os.Getenv("S3_REGION"),
		Bucket:    os.Getenv("S3_BUCKET"),
		ACL:       os.Getenv("S3_ACL"),
	}
}

// Enabled reports whether enough settings are present to upload
func (c S3Config) Enabled() bool {
	return c.Bucket != ""
}

// S3Uploader publishes rendered images to a bucket
type S3Uploader struct {
	client s3iface.S3API
	config S3Config
	logger core.Logger
}

// NewS3Uploader creates an uploader with static credentials and path-style addressing
func NewS3Uploader(cfg S3Config, logger core.Logger) (*S3Uploader, error) {
	if !cfg.Enabled() {
		return nil, ErrS3NotConfigured
	}

	awsConfig := &aws.Config{
		Credentials:      credentials.NewStaticCredentials(cfg.AccessKey, cfg.SecretKey, ""),
		Region:           aws.String(cfg.Region),
		S3ForcePathStyle: aws.Bool(true),
	}
	if cfg.Endpoint != "" {
		awsConfig.Endpoint = aws.String(cfg.Endpoint)
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("creating s3 session: %w", err)
	}
	return newS3Uploader(s3.New(sess), cfg, logger), nil
}

func newS3Uploader(client s3iface.S3API, cfg S3Config, logger core.Logger) *S3Uploader {
	if logger == nil {
		logger = core.NopLogger()
	}
	return &S3Uploader{client: client, config: cfg, logger: logger}
}

// Upload stores PNG data under key
func (u *S3Uploader) Upload(ctx context.Context, key string, data []byte) error {
	ctx, cancel := context.WithTimeout(ctx, UploadTimeout)
	defer cancel()

	size := int64(len(data))
	input := &s3.PutObjectInput{
		Bucket:        aws.String(u.config.Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(size),
		ContentType:   aws.String("image/png"),
	}
	if u.config.ACL != "" {
		input.ACL = aws.String(u.config.ACL)
	}

	if _, err := u.client.PutObjectWithContext(ctx, input); err != nil {
		return fmt.Errorf("failed to upload %s: %w", key, err)
	}

	u.logger.Printf("Uploaded %s to s3://%s (%d bytes)\n", key, u.config.Bucket, size)
	return nil
}

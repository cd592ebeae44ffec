package output

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
)

// fakeS3 records PutObject calls
type fakeS3 struct {
	s3iface.S3API
	inputs []*s3.PutObjectInput
	bodies [][]byte
	err    error
}

func (f *fakeS3) PutObjectWithContext(ctx aws.Context, input *s3.PutObjectInput, opts ...request.Option) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	body, err := io.ReadAll(input.Body)
	if err != nil {
		return nil, err
	}
	f.inputs = append(f.inputs, input)
	f.bodies = append(f.bodies, body)
	return &s3.PutObjectOutput{}, nil
}

func TestS3Uploader_Upload(t *testing.T) {
	client := &fakeS3{}
	uploader := newS3Uploader(client, S3Config{Bucket: "renders", ACL: "public-read"}, nil)

	if err := uploader.Upload(context.Background(), "default/frame.png", []byte("png")); err != nil {
		t.Fatalf("Upload: %v", err)
	}

	if len(client.inputs) != 1 {
		t.Fatalf("Expected 1 upload, got %d", len(client.inputs))
	}
	input := client.inputs[0]
	if aws.StringValue(input.Bucket) != "renders" || aws.StringValue(input.Key) != "default/frame.png" {
		t.Errorf("Unexpected destination %s/%s", aws.StringValue(input.Bucket), aws.StringValue(input.Key))
	}
	if aws.StringValue(input.ContentType) != "image/png" {
		t.Errorf("Expected image/png, got %s", aws.StringValue(input.ContentType))
	}
	if aws.StringValue(input.ACL) != "public-read" {
		t.Errorf("Expected public-read ACL, got %s", aws.StringValue(input.ACL))
	}
	if aws.Int64Value(input.ContentLength) != 3 || string(client.bodies[0]) != "png" {
		t.Errorf("Unexpected body %q (length %d)", client.bodies[0], aws.Int64Value(input.ContentLength))
	}
}

func TestS3Uploader_WrapsErrors(t *testing.T) {
	failure := errors.New("bucket unavailable")
	uploader := newS3Uploader(&fakeS3{err: failure}, S3Config{Bucket: "renders"}, nil)

	if err := uploader.Upload(context.Background(), "frame.png", nil); !errors.Is(err, failure) {
		t.Errorf("Expected wrapped upload error, got %v", err)
	}
}

func TestNewS3Uploader_RequiresBucket(t *testing.T) {
	if _, err := NewS3Uploader(S3Config{Region: "us-east-1"}, nil); !errors.Is(err, ErrS3NotConfigured) {
		t.Errorf("Expected ErrS3NotConfigured, got %v", err)
	}
}

func TestS3ConfigFromEnv(t *testing.T) {
	t.Setenv("S3_BUCKET", "renders")
	t.Setenv("S3_REGION", "eu-west-1")
	t.Setenv("S3_ENDPOINT", "http://localhost:9000")
	t.Setenv("S3_ACL", "")

	cfg := S3ConfigFromEnv()
	if !cfg.Enabled() {
		t.Fatal("Expected config with a bucket to be enabled")
	}
	if cfg.Bucket != "renders" || cfg.Region != "eu-west-1" || cfg.Endpoint != "http://localhost:9000" {
		t.Errorf("Unexpected config %+v", cfg)
	}

	t.Setenv("S3_BUCKET", "")
	if S3ConfigFromEnv().Enabled() {
		t.Error("Expected config without a bucket to be disabled")
	}
}

package frame

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/achilleasa/pbr/log"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

const (
	// Upper bound for a single frame upload.
	UploadTimeout = 60 * time.Second
)

// S3 bucket settings for publishing rendered frames.
type S3Config struct {
	Bucket    string
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string

	// Optional canned ACL (e.g. "public-read").
	ACL string
}

// Uploads encoded frames to an S3 compatible object store.
type S3Uploader struct {
	logger log.Logger
	bucket string
	acl    string
	client *s3.S3
}

// Create a new uploader. Static credentials and path-style addressing are
// used so that self-hosted S3 compatible endpoints work too.
func NewS3Uploader(cfg S3Config) (*S3Uploader, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("frame: s3 bucket not specified")
	}

	awsCfg := &aws.Config{
		Region:           aws.String(cfg.Region),
		S3ForcePathStyle: aws.Bool(true),
	}
	if cfg.AccessKey != "" || cfg.SecretKey != "" {
		awsCfg.Credentials = credentials.NewStaticCredentials(cfg.AccessKey, cfg.SecretKey, "")
	}
	if cfg.Endpoint != "" {
		awsCfg.Endpoint = aws.String(cfg.Endpoint)
	}

	sess, err := session.NewSession(awsCfg)
	if err != nil {
		return nil, fmt.Errorf("frame: could not create s3 session: %w", err)
	}

	return &S3Uploader{
		logger: log.New("s3"),
		bucket: cfg.Bucket,
		acl:    cfg.ACL,
		client: s3.New(sess),
	}, nil
}

// Upload data under the given key.
func (u *S3Uploader) Upload(ctx context.Context, key string, data []byte, contentType string) error {
	ctx, cancel := context.WithTimeout(ctx, UploadTimeout)
	defer cancel()

	input := &s3.PutObjectInput{
		Bucket:        aws.String(u.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String(contentType),
	}
	if u.acl != "" {
		input.ACL = aws.String(u.acl)
	}

	if _, err := u.client.PutObjectWithContext(ctx, input); err != nil {
		return fmt.Errorf("frame: failed to upload %s: %w", key, err)
	}

	u.logger.Infof("uploaded %s to s3://%s (%d bytes)", key, u.bucket, len(data))
	return nil
}

// Encode the buffer and upload it under the given key. The image format is
// selected from the key extension.
func (u *S3Uploader) UploadFrame(ctx context.Context, key string, b *Buffer) error {
	format, err := FormatFromPath(key)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err = Encode(&buf, b, format); err != nil {
		return fmt.Errorf("frame: could not encode %s: %w", key, err)
	}
	return u.Upload(ctx, key, buf.Bytes(), ContentType(format))
}

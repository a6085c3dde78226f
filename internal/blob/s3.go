package blob

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Store implements Store against an S3-compatible backend (AWS S3 or
// MinIO). Single bucket; keys map to object keys directly.
type S3Store struct {
	client  *s3.Client
	presign *s3.PresignClient
	bucket  string
}

// S3Config holds explicit construction parameters. Credentials fall back to
// the default AWS chain when the static fields are empty.
type S3Config struct {
	Region          string
	Bucket          string
	Endpoint        string // optional, e.g. MinIO
	AccessKeyID     string
	SecretAccessKey string
	PathStyle       bool
}

// Environment variables:
//
//	LARDER_BLOB_DRIVER=s3
//	LARDER_BLOB_S3_BUCKET=<bucket> (required)
//	LARDER_BLOB_S3_REGION=<region> (default us-east-1)
//	LARDER_BLOB_S3_ENDPOINT=<url> (optional, for MinIO)
//	LARDER_BLOB_S3_PATH_STYLE=true|false (default false)
//	LARDER_BLOB_S3_ACCESS_KEY / LARDER_BLOB_S3_SECRET_KEY (optional)

// NewS3 creates an S3 blob store from S3Config.
func NewS3(ctx context.Context, cfg S3Config) (*S3Store, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("s3 bucket required")
	}
	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}
	loadOpts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(region)}
	if cfg.AccessKeyID != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, err
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.PathStyle {
			o.UsePathStyle = true
		}
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})
	return &S3Store{
		client:  client,
		presign: s3.NewPresignClient(client),
		bucket:  cfg.Bucket,
	}, nil
}

// OpenS3FromEnv constructs an S3 store from process environment.
func OpenS3FromEnv(ctx context.Context) (*S3Store, error) {
	bucket := os.Getenv("LARDER_BLOB_S3_BUCKET")
	if bucket == "" {
		return nil, fmt.Errorf("LARDER_BLOB_S3_BUCKET required for s3 driver")
	}
	return NewS3(ctx, S3Config{
		Bucket:          bucket,
		Region:          os.Getenv("LARDER_BLOB_S3_REGION"),
		Endpoint:        os.Getenv("LARDER_BLOB_S3_ENDPOINT"),
		AccessKeyID:     os.Getenv("LARDER_BLOB_S3_ACCESS_KEY"),
		SecretAccessKey: os.Getenv("LARDER_BLOB_S3_SECRET_KEY"),
		PathStyle:       strings.EqualFold(os.Getenv("LARDER_BLOB_S3_PATH_STYLE"), "true"),
	})
}

// Driver returns the blob driver identifier.
func (s *S3Store) Driver() Driver { return DriverS3 }

// Put uploads the object, emulating create-only semantics via a Head check.
func (s *S3Store) Put(ctx context.Context, key string, r io.Reader, opts PutOptions) (Info, error) {
	if _, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{Bucket: &s.bucket, Key: &key}); err == nil {
		return Info{}, fmt.Errorf("blob %s already exists", key)
	}
	input := &s3.PutObjectInput{Bucket: &s.bucket, Key: &key, Body: r}
	if opts.ContentType != "" {
		input.ContentType = &opts.ContentType
	}
	if _, err := s.client.PutObject(ctx, input); err != nil {
		return Info{}, err
	}
	return s.head(ctx, key)
}

// Get downloads the object.
func (s *S3Store) Get(ctx context.Context, key string) (Info, io.ReadCloser, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{Bucket: &s.bucket, Key: &key})
	if err != nil {
		return Info{}, nil, err
	}
	return s.fromObject(key, out.ContentLength, out.ContentType, out.ETag, out.LastModified), out.Body, nil
}

// Delete removes the object. S3 deletes are idempotent, so existed is
// assumed true on success.
func (s *S3Store) Delete(ctx context.Context, key string) (bool, error) {
	if _, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{Bucket: &s.bucket, Key: &key}); err != nil {
		return false, err
	}
	return true, nil
}

// URL presigns a GET for the key.
func (s *S3Store) URL(ctx context.Context, key string, expiry time.Duration) (string, error) {
	if expiry <= 0 {
		expiry = 15 * time.Minute
	}
	req, err := s.presign.PresignGetObject(ctx,
		&s3.GetObjectInput{Bucket: &s.bucket, Key: &key},
		s3.WithPresignExpires(expiry))
	if err != nil {
		return "", err
	}
	return req.URL, nil
}

func (s *S3Store) head(ctx context.Context, key string) (Info, error) {
	out, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{Bucket: &s.bucket, Key: &key})
	if err != nil {
		return Info{}, err
	}
	return s.fromObject(key, out.ContentLength, out.ContentType, out.ETag, out.LastModified), nil
}

func (s *S3Store) fromObject(key string, size *int64, contentType, etag *string, lastModified *time.Time) Info {
	info := Info{Key: key}
	if size != nil {
		info.Size = *size
	}
	info.ContentType = aws.ToString(contentType)
	info.ETag = strings.Trim(aws.ToString(etag), `"`)
	info.LastModified = aws.ToTime(lastModified)
	return info
}

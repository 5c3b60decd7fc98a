// Package storage archives finished videos to S3-compatible storage.
package storage

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"

	"codereel/config"
)

// Archiver mirrors finished renders into a bucket.
type Archiver struct {
	client *s3.Client
	bucket string
	prefix string
}

// NewArchiver builds the S3 client from the standard AWS credential
// chain. Returns (nil, nil) when no bucket is configured so callers
// treat archiving as optional.
func NewArchiver(ctx context.Context, s config.Settings) (*Archiver, error) {
	if s.S3Bucket == "" {
		return nil, nil
	}

	var loadOpts []func(*awsconfig.LoadOptions) error
	if s.S3Region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(s.S3Region))
	}
	if s.S3Profile != "" {
		loadOpts = append(loadOpts, awsconfig.WithSharedConfigProfile(s.S3Profile))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		// Path-style addressing for S3-compatible providers.
		o.UsePathStyle = s.S3UsePathStyle
	})

	log.Printf("🗄 Archiving finished videos to s3://%s/%s", s.S3Bucket, s.S3Prefix)
	return &Archiver{client: client, bucket: s.S3Bucket, prefix: s.S3Prefix}, nil
}

// Archive uploads one video and returns its location. Keys that
// already exist are left alone so a retried publish never overwrites
// an archived copy.
func (a *Archiver) Archive(ctx context.Context, videoPath string) (string, error) {
	key := a.keyFor(videoPath)

	exists, err := a.exists(ctx, key)
	if err != nil {
		return "", err
	}
	if exists {
		return a.location(key), nil
	}

	file, err := os.Open(videoPath)
	if err != nil {
		return "", fmt.Errorf("failed to open video for archive: %w", err)
	}
	defer file.Close()

	_, err = a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        file,
		ContentType: aws.String("video/mp4"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to archive video: %w", err)
	}

	return a.location(key), nil
}

// exists distinguishes a missing key from a real error. The SDK
// reports missing objects either as a raw 404 response or as a
// NotFound API code depending on the provider.
func (a *Archiver) exists(ctx context.Context, key string) (bool, error) {
	_, err := a.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(a.bucket),
		Key:    aws.String(key),
	})
	if err == nil {
		return true, nil
	}

	var respErr *awshttp.ResponseError
	if errors.As(err, &respErr) && respErr.HTTPStatusCode() == 404 {
		return false, nil
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) && apiErr.ErrorCode() == "NotFound" {
		return false, nil
	}

	return false, err
}

func (a *Archiver) keyFor(videoPath string) string {
	return path.Join(a.prefix, filepath.Base(videoPath))
}

func (a *Archiver) location(key string) string {
	return fmt.Sprintf("s3://%s/%s", a.bucket, key)
}

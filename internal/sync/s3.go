package sync

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const exportContentType = "application/x-ndjson"

// S3Destination uploads the forms backup to one object in an
// S3-compatible bucket. Each sync overwrites the previous backup.
type S3Destination struct {
	client *s3.Client
	bucket string
	key    string
}

// NewS3Destination builds a destination for the given bucket and object
// key. A non-empty endpoint switches to path-style addressing, which MinIO
// and other self-hosted stores require.
func NewS3Destination(ctx context.Context, bucket, key, region, endpoint string) (*S3Destination, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Destination{client: client, bucket: bucket, key: key}, nil
}

// Write puts the JSONL payload at the configured key.
func (d *S3Destination) Write(ctx context.Context, data []byte) error {
	if _, err := d.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(d.bucket),
		Key:         aws.String(d.key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(exportContentType),
	}); err != nil {
		return fmt.Errorf("s3 put object: %w", err)
	}
	return nil
}

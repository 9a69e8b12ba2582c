package images

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ObjectStore is the subset of the S3 client used for catalog overrides.
type ObjectStore interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// LoadFromS3 fetches and parses a catalog stored at bucket/key.
func LoadFromS3(ctx context.Context, store ObjectStore, bucket, key string) (*Catalog, error) {
	out, err := store.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch image catalog s3://%s/%s: %w", bucket, key, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read image catalog: %w", err)
	}
	return Parse(data)
}

// PublishToS3 uploads c as TOML to bucket/key.
func PublishToS3(ctx context.Context, store ObjectStore, bucket, key string, c *Catalog) error {
	data, err := c.Encode()
	if err != nil {
		return err
	}
	_, err = store.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/toml"),
	})
	if err != nil {
		return fmt.Errorf("failed to upload image catalog: %w", err)
	}
	return nil
}

package export

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"
)

// PutObjectAPI is the subset of the S3 client the exporter needs
type PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Exporter uploads artifacts to an S3 bucket
type S3Exporter struct {
	client PutObjectAPI
	bucket string
	prefix string
	logger *zap.Logger
}

// NewS3Exporter creates an exporter using the default AWS credential chain
func NewS3Exporter(ctx context.Context, bucket, prefix, region string, logger *zap.Logger) (*S3Exporter, error) {
	if bucket == "" {
		return nil, fmt.Errorf("s3 export requires a bucket")
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return NewS3ExporterWithClient(s3.NewFromConfig(awsCfg), bucket, prefix, logger), nil
}

// NewS3ExporterWithClient creates an exporter around an existing client
func NewS3ExporterWithClient(client PutObjectAPI, bucket, prefix string, logger *zap.Logger) *S3Exporter {
	return &S3Exporter{
		client: client,
		bucket: bucket,
		prefix: prefix,
		logger: logger,
	}
}

// Export uploads data under prefix/name and returns its s3:// URL
func (e *S3Exporter) Export(ctx context.Context, name string, data []byte) (string, error) {
	key := path.Join(e.prefix, strings.TrimPrefix(name, "/"))

	_, err := e.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(e.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType(name)),
	})
	if err != nil {
		return "", fmt.Errorf("s3 export: put %s: %w", key, err)
	}

	location := fmt.Sprintf("s3://%s/%s", e.bucket, key)
	e.logger.Debug("Exported artifact", zap.String("location", location), zap.Int("bytes", len(data)))
	return location, nil
}

func contentType(name string) string {
	switch strings.ToLower(path.Ext(name)) {
	case ".json":
		return "application/json"
	case ".md":
		return "text/markdown; charset=utf-8"
	default:
		return "application/octet-stream"
	}
}

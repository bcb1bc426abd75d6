package cache

import (
	"bytes"
	"context"
	"fmt"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/go-logr/logr"
)

const defaultRegion = "us-east-1"

// S3PutObjectAPI is the subset of the S3 client used by S3Sink.
type S3PutObjectAPI interface {
	PutObject(ctx context.Context, params *awss3.PutObjectInput, optFns ...func(*awss3.Options)) (*awss3.PutObjectOutput, error)
}

// S3Sink mirrors files as objects under <prefix>/<os>/dists/<distribution>/.
type S3Sink struct {
	client S3PutObjectAPI
	bucket string
	prefix string
}

func NewS3Sink(client S3PutObjectAPI, bucket, prefix, osID, distribution string) *S3Sink {
	return &S3Sink{
		client: client,
		bucket: bucket,
		prefix: path.Join(prefix, osID, "dists", distribution),
	}
}

// NewS3Client loads the default AWS configuration. A non-empty endpoint
// points the client at an S3-compatible service instead of AWS.
func NewS3Client(ctx context.Context, endpoint string) (*awss3.Client, error) {
	awscfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading aws config: %w", err)
	}
	if endpoint == "" {
		return awss3.NewFromConfig(awscfg), nil
	}
	if awscfg.Region == "" {
		awscfg.Region = defaultRegion
	}
	return awss3.NewFromConfig(awscfg, func(o *awss3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
		o.UsePathStyle = true
	}), nil
}

// Key returns the object key a relative path is written to.
func (s *S3Sink) Key(p string) string {
	return path.Join(s.prefix, path.Clean("/"+p))
}

func (s *S3Sink) Put(ctx context.Context, p string, data []byte) error {
	key := s.Key(p)
	log := logr.FromContextOrDiscard(ctx).WithValues("bucket", s.bucket, "key", key)

	out, err := s.client.PutObject(ctx, &awss3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(data),
	})
	if err != nil {
		log.Error(err, "failed to upload object")
		return fmt.Errorf("uploading %s: %w", key, err)
	}
	log.V(2).Info("uploaded object", "size", len(data), "etag", aws.ToString(out.ETag))
	return nil
}

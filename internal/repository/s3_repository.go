package repository

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"

	s3config "imgresize/internal/config"
	"imgresize/internal/domain"
)

// ObjectStore is the write-only storage contract the pipeline depends on.
// The pipeline never reads objects back; consumers fetch them over HTTP at
// the public URL.
type ObjectStore interface {
	Put(ctx context.Context, key string, body []byte, contentType string) error
	PublicURL(key string) string
}

const retryDelay = 500 * time.Millisecond

type s3Store struct {
	client *s3.Client
	cfg    *s3config.S3Config
	log    *zap.Logger
}

func NewS3Store(cfg *s3config.S3Config, log *zap.Logger) (ObjectStore, error) {
	customResolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (aws.Endpoint, error) {
		if cfg.Endpoint != "" {
			return aws.Endpoint{
				URL:               cfg.Endpoint,
				HostnameImmutable: true,
				Source:            aws.EndpointSourceCustom,
			}, nil
		}
		return aws.Endpoint{}, &aws.EndpointNotFoundError{}
	})

	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithEndpointResolverWithOptions(customResolver),
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), opts...)
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.Endpoint != ""
	})

	return &s3Store{
		client: client,
		cfg:    cfg,
		log:    log,
	}, nil
}

// Put writes body under key with a bounded deadline. A failed write is
// retried exactly once after a short pause: store faults are plausibly
// transient, unlike everything upstream of them. Both attempts abort when
// the caller cancels.
func (r *s3Store) Put(ctx context.Context, key string, body []byte, contentType string) error {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.UploadTimeout)
	defer cancel()

	err := r.putObject(ctx, key, body, contentType)
	if err == nil {
		return nil
	}

	r.log.Warn("S3 write failed, retrying once",
		zap.String("key", key),
		zap.Error(err))

	select {
	case <-ctx.Done():
		return fmt.Errorf("%w: %v", domain.ErrStorage, ctx.Err())
	case <-time.After(retryDelay):
	}

	if err = r.putObject(ctx, key, body, contentType); err != nil {
		r.log.Error("S3 write failed after retry",
			zap.String("key", key),
			zap.Error(err))
		return fmt.Errorf("%w: %v", domain.ErrStorage, err)
	}
	return nil
}

func (r *s3Store) putObject(ctx context.Context, key string, body []byte, contentType string) error {
	_, err := r.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(r.cfg.BucketName),
		Key:           aws.String(key),
		Body:          bytes.NewReader(body),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(body))),
	})
	if err != nil {
		return err
	}

	r.log.Info("Object written to S3",
		zap.String("key", key),
		zap.Int("size", len(body)))

	return nil
}

// PublicURL returns the address the store serves the object back at.
func (r *s3Store) PublicURL(key string) string {
	if r.cfg.Endpoint != "" {
		return fmt.Sprintf("%s/%s/%s", strings.TrimSuffix(r.cfg.Endpoint, "/"), r.cfg.BucketName, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", r.cfg.BucketName, r.cfg.Region, key)
}

// Package s3store keeps documents as objects in an S3 bucket.
package s3store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/hengadev/cfgx/store"
)

// ContentType is set on every uploaded document.
const ContentType = "application/yaml"

// Client is the subset of the S3 API the store uses.
type Client interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// Config selects the bucket and credentials.
type Config struct {
	Bucket string
	// Prefix is prepended to every object key, e.g. "config/".
	Prefix string
	// Region is the AWS region. If empty, AWS_REGION or the shared config file
	// is used.
	Region string
	// AWSConfig is an optional pre-configured AWS config. If set, Region is ignored.
	AWSConfig *aws.Config
}

// Store stores document name under <prefix><name>.yaml.
type Store struct {
	client Client
	bucket string
	prefix string
}

// New creates a store using the default AWS credential chain.
func New(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("s3 store: bucket is required")
	}

	var awsConfig aws.Config
	if cfg.AWSConfig != nil {
		awsConfig = *cfg.AWSConfig
	} else {
		var opts []func(*config.LoadOptions) error
		if cfg.Region != "" {
			opts = append(opts, config.WithRegion(cfg.Region))
		}
		loaded, err := config.LoadDefaultConfig(ctx, opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to load AWS config: %w", err)
		}
		awsConfig = loaded
	}

	return NewWithClient(s3.NewFromConfig(awsConfig), cfg.Bucket, cfg.Prefix), nil
}

// NewWithClient creates a store on top of an existing client.
func NewWithClient(client Client, bucket, prefix string) *Store {
	return &Store{client: client, bucket: bucket, prefix: prefix}
}

// Key returns the object key for name.
func (s *Store) Key(name string) string {
	return s.prefix + path.Clean(name) + ".yaml"
}

func (s *Store) Load(ctx context.Context, name string) ([]byte, error) {
	if err := store.ValidateName(name); err != nil {
		return nil, err
	}
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.Key(name)),
	})
	if err != nil {
		var missing *types.NoSuchKey
		if errors.As(err, &missing) {
			return nil, fmt.Errorf("%w: %s", store.ErrNotFound, name)
		}
		return nil, fmt.Errorf("failed to get s3://%s/%s: %w", s.bucket, s.Key(name), err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read s3://%s/%s: %w", s.bucket, s.Key(name), err)
	}
	return data, nil
}

func (s *Store) Save(ctx context.Context, name string, data []byte) error {
	if err := store.ValidateName(name); err != nil {
		return err
	}
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(s.Key(name)),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(ContentType),
	})
	if err != nil {
		return fmt.Errorf("failed to put s3://%s/%s: %w", s.bucket, s.Key(name), err)
	}
	return nil
}

// Delete removes the object. S3 deletes are idempotent, so existence is checked
// first to report ErrNotFound like the other stores.
func (s *Store) Delete(ctx context.Context, name string) error {
	if err := store.ValidateName(name); err != nil {
		return err
	}
	key := s.Key(name)
	_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var missing *types.NotFound
		if errors.As(err, &missing) {
			return fmt.Errorf("%w: %s", store.ErrNotFound, name)
		}
		return fmt.Errorf("failed to head s3://%s/%s: %w", s.bucket, key, err)
	}

	_, err = s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete s3://%s/%s: %w", s.bucket, key, err)
	}
	return nil
}

var _ store.Store = (*Store)(nil)

package kv

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// S3Options configures NewS3. Endpoint is only needed for MinIO, R2 and
// other S3-compatible services.
type S3Options struct {
	Bucket   string
	Region   string
	Key      string
	Secret   string
	Endpoint string
	Prefix   string
}

// S3 stores each key as one object under Prefix in Bucket.
type S3 struct {
	client *s3.Client
	bucket string
	prefix string
}

func NewS3(ctx context.Context, o S3Options) (*S3, error) {
	if o.Bucket == "" {
		return nil, errors.New("kv/s3: S3_BUCKET is not configured")
	}

	loadOpts := []func(*awscfg.LoadOptions) error{awscfg.WithRegion(o.Region)}
	if o.Key != "" && o.Secret != "" {
		loadOpts = append(loadOpts, awscfg.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(o.Key, o.Secret, ""),
		))
	}
	cfg, err := awscfg.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("kv/s3: load config: %w", err)
	}

	var clientOpts []func(*s3.Options)
	if o.Endpoint != "" {
		clientOpts = append(clientOpts, func(so *s3.Options) {
			so.BaseEndpoint = aws.String(o.Endpoint)
			so.UsePathStyle = true
		})
	}

	return &S3{
		client: s3.NewFromConfig(cfg, clientOpts...),
		bucket: o.Bucket,
		prefix: o.Prefix,
	}, nil
}

func (s *S3) Get(ctx context.Context, key string) ([]byte, error) {
	if err := validKey(key); err != nil {
		return nil, err
	}
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.prefix + key),
	})
	if err != nil {
		var noKey *types.NoSuchKey
		if errors.As(err, &noKey) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("kv/s3: get %s: %w", key, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("kv/s3: read %s: %w", key, err)
	}
	return data, nil
}

func (s *S3) Set(ctx context.Context, key string, value []byte) error {
	if err := validKey(key); err != nil {
		return err
	}
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.prefix + key),
		Body:   bytes.NewReader(value),
	})
	if err != nil {
		return fmt.Errorf("kv/s3: put %s: %w", key, err)
	}
	return nil
}

func (s *S3) Delete(ctx context.Context, key string) error {
	if err := validKey(key); err != nil {
		return err
	}
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.prefix + key),
	})
	if err != nil {
		return fmt.Errorf("kv/s3: delete %s: %w", key, err)
	}
	return nil
}

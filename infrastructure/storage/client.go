package storage

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"ee-export/domain/export"
	"ee-export/infrastructure/googleauth"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/storage/v1"
)

// BucketService defines the Cloud Storage calls the client needs
// This allows mocking the Cloud Storage API in tests
type BucketService interface {
	GetBucket(ctx context.Context, bucket string) (*storage.Bucket, error)
}

// GoogleBucketService is the production implementation using the Cloud Storage JSON API
type GoogleBucketService struct {
	service *storage.Service
}

// GetBucket fetches bucket metadata
func (s *GoogleBucketService) GetBucket(ctx context.Context, bucket string) (*storage.Bucket, error) {
	return s.service.Buckets.Get(bucket).
		Fields("name", "location").
		Context(ctx).
		Do()
}

// Client implements export.BucketChecker using Cloud Storage
type Client struct {
	bucketService BucketService
}

// ClientOption is a functional option for configuring Client
type ClientOption func(*Client)

// WithBucketService sets a custom bucket service (for testing)
func WithBucketService(svc BucketService) ClientOption {
	return func(c *Client) {
		c.bucketService = svc
	}
}

// NewClient creates a new Cloud Storage client
func NewClient(ctx context.Context, creds googleauth.Credentials, opts ...ClientOption) (*Client, error) {
	c := &Client{}

	for _, opt := range opts {
		opt(c)
	}

	if c.bucketService == nil {
		httpClient, err := googleauth.HTTPClient(ctx, creds, storage.DevstorageReadOnlyScope)
		if err != nil {
			return nil, err
		}
		srv, err := storage.NewService(ctx, option.WithHTTPClient(httpClient))
		if err != nil {
			return nil, fmt.Errorf("unable to create storage service: %w", err)
		}
		c.bucketService = &GoogleBucketService{service: srv}
	}

	return c, nil
}

// BucketExists implements export.BucketChecker.
// A 404 means the bucket does not exist; other failures are returned.
func (c *Client) BucketExists(ctx context.Context, bucket string) (bool, error) {
	_, err := c.bucketService.GetBucket(ctx, bucket)
	if err == nil {
		return true, nil
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) && apiErr.Code == http.StatusNotFound {
		return false, nil
	}
	return false, fmt.Errorf("failed to look up bucket %q: %w", bucket, err)
}

// Ensure Client implements export.BucketChecker
var _ export.BucketChecker = (*Client)(nil)

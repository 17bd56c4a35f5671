package earthengine

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"ee-export/domain/export"
	"ee-export/infrastructure/googleauth"

	"google.golang.org/api/earthengine/v1"
	"google.golang.org/api/option"
)

// ErrMissingProject is returned when no cloud project is given for submission
var ErrMissingProject = errors.New("cloud project is required")

// ExportService defines the Earth Engine export calls the client needs
// This allows mocking the Earth Engine API in tests
type ExportService interface {
	ExportImage(ctx context.Context, parent string, req *earthengine.ExportImageRequest) (*earthengine.Operation, error)
	ExportTable(ctx context.Context, parent string, req *earthengine.ExportTableRequest) (*earthengine.Operation, error)
	ExportVideo(ctx context.Context, parent string, req *earthengine.ExportVideoRequest) (*earthengine.Operation, error)
	ExportMap(ctx context.Context, parent string, req *earthengine.ExportMapRequest) (*earthengine.Operation, error)
	ExportVideoMap(ctx context.Context, parent string, req *earthengine.ExportVideoMapRequest) (*earthengine.Operation, error)
	ExportClassifier(ctx context.Context, parent string, req *earthengine.ExportClassifierRequest) (*earthengine.Operation, error)
}

// GoogleExportService is the production implementation using the Earth Engine API
type GoogleExportService struct {
	service *earthengine.Service
}

func (s *GoogleExportService) ExportImage(ctx context.Context, parent string, req *earthengine.ExportImageRequest) (*earthengine.Operation, error) {
	return s.service.Projects.Image.Export(parent, req).Context(ctx).Do()
}

func (s *GoogleExportService) ExportTable(ctx context.Context, parent string, req *earthengine.ExportTableRequest) (*earthengine.Operation, error) {
	return s.service.Projects.Table.Export(parent, req).Context(ctx).Do()
}

func (s *GoogleExportService) ExportVideo(ctx context.Context, parent string, req *earthengine.ExportVideoRequest) (*earthengine.Operation, error) {
	return s.service.Projects.Video.Export(parent, req).Context(ctx).Do()
}

func (s *GoogleExportService) ExportMap(ctx context.Context, parent string, req *earthengine.ExportMapRequest) (*earthengine.Operation, error) {
	return s.service.Projects.Map.Export(parent, req).Context(ctx).Do()
}

func (s *GoogleExportService) ExportVideoMap(ctx context.Context, parent string, req *earthengine.ExportVideoMapRequest) (*earthengine.Operation, error) {
	return s.service.Projects.VideoMap.Export(parent, req).Context(ctx).Do()
}

func (s *GoogleExportService) ExportClassifier(ctx context.Context, parent string, req *earthengine.ExportClassifierRequest) (*earthengine.Operation, error) {
	return s.service.Projects.Classifier.Export(parent, req).Context(ctx).Do()
}

// Client implements export.Submitter using the Earth Engine API
type Client struct {
	exportService ExportService
}

// ClientOption is a functional option for configuring Client
type ClientOption func(*Client)

// WithExportService sets a custom export service (for testing)
func WithExportService(svc ExportService) ClientOption {
	return func(c *Client) {
		c.exportService = svc
	}
}

// NewClient creates a new Earth Engine client
// If no export service option is given, one is built from the credentials
func NewClient(ctx context.Context, creds googleauth.Credentials, opts ...ClientOption) (*Client, error) {
	c := &Client{}

	for _, opt := range opts {
		opt(c)
	}

	if c.exportService == nil {
		httpClient, err := googleauth.HTTPClient(ctx, creds, earthengine.CloudPlatformScope)
		if err != nil {
			return nil, err
		}
		srv, err := earthengine.NewService(ctx, option.WithHTTPClient(httpClient))
		if err != nil {
			return nil, fmt.Errorf("unable to create earth engine service: %w", err)
		}
		c.exportService = &GoogleExportService{service: srv}
	}

	return c, nil
}

// Submit implements export.Submitter
func (c *Client) Submit(ctx context.Context, project string, req export.Request) (*export.Operation, error) {
	project = strings.TrimPrefix(strings.TrimSpace(project), "projects/")
	if project == "" {
		return nil, ErrMissingProject
	}
	parent := "projects/" + project

	var (
		op  *earthengine.Operation
		err error
	)
	switch r := req.(type) {
	case *export.ExportImageRequest:
		var body earthengine.ExportImageRequest
		if err = convert(r, &body); err == nil {
			op, err = c.exportService.ExportImage(ctx, parent, &body)
		}
	case *export.ExportTableRequest:
		var body earthengine.ExportTableRequest
		if err = convert(r, &body); err == nil {
			op, err = c.exportService.ExportTable(ctx, parent, &body)
		}
	case *export.ExportVideoRequest:
		var body earthengine.ExportVideoRequest
		if err = convert(r, &body); err == nil {
			op, err = c.exportService.ExportVideo(ctx, parent, &body)
		}
	case *export.ExportMapRequest:
		var body earthengine.ExportMapRequest
		if err = convert(r, &body); err == nil {
			op, err = c.exportService.ExportMap(ctx, parent, &body)
		}
	case *export.ExportVideoMapRequest:
		var body earthengine.ExportVideoMapRequest
		if err = convert(r, &body); err == nil {
			op, err = c.exportService.ExportVideoMap(ctx, parent, &body)
		}
	case *export.ExportClassifierRequest:
		var body earthengine.ExportClassifierRequest
		if err = convert(r, &body); err == nil {
			op, err = c.exportService.ExportClassifier(ctx, parent, &body)
		}
	default:
		return nil, fmt.Errorf("%w: %T", export.ErrUnknownKind, req)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to submit %s export: %w", req.Kind(), err)
	}

	return &export.Operation{Name: op.Name, Done: op.Done}, nil
}

// convert re-encodes a domain request as the generated API type.
// Both sides share the wire field names.
func convert(from, to any) error {
	b, err := json.Marshal(from)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}
	if err := json.Unmarshal(b, to); err != nil {
		return fmt.Errorf("failed to decode request: %w", err)
	}
	return nil
}

// Ensure Client implements export.Submitter
var _ export.Submitter = (*Client)(nil)

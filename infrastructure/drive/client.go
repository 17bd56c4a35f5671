package drive

import (
	"context"
	"fmt"
	"strings"

	"ee-export/domain/export"
	"ee-export/infrastructure/googleauth"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// FolderMimeType is the Drive mime type of a folder
const FolderMimeType = "application/vnd.google-apps.folder"

// DriveService defines the interface for Google Drive API operations
// This allows mocking the Google Drive API in tests
type DriveService interface {
	ListFiles(ctx context.Context, query string, fields string, orderBy string) ([]*drive.File, error)
}

// GoogleDriveService is the production implementation using the Google Drive API
type GoogleDriveService struct {
	service *drive.Service
}

// ListFiles lists files matching the query
func (s *GoogleDriveService) ListFiles(ctx context.Context, query string, fields string, orderBy string) ([]*drive.File, error) {
	r, err := s.service.Files.List().
		Q(query).
		Fields(googleapi.Field("files(" + fields + ")")).
		OrderBy(orderBy).
		PageSize(10).
		Context(ctx).
		Do()
	if err != nil {
		return nil, err
	}
	return r.Files, nil
}

// Client implements export.FolderFinder using Google Drive API
type Client struct {
	driveService DriveService
}

// ClientOption is a functional option for configuring Client
type ClientOption func(*Client)

// WithDriveService sets a custom drive service (for testing)
func WithDriveService(svc DriveService) ClientOption {
	return func(c *Client) {
		c.driveService = svc
	}
}

// NewClient creates a new Google Drive client
// If no options are provided, it initializes a real Google Drive service
func NewClient(ctx context.Context, creds googleauth.Credentials, opts ...ClientOption) (*Client, error) {
	c := &Client{}

	for _, opt := range opts {
		opt(c)
	}

	if c.driveService == nil {
		httpClient, err := googleauth.HTTPClient(ctx, creds, drive.DriveMetadataReadonlyScope)
		if err != nil {
			return nil, err
		}
		srv, err := drive.NewService(ctx, option.WithHTTPClient(httpClient))
		if err != nil {
			return nil, fmt.Errorf("unable to create drive service: %w", err)
		}
		c.driveService = &GoogleDriveService{service: srv}
	}

	return c, nil
}

// FolderExists implements export.FolderFinder.
// Drive exports write into a folder found by name anywhere in My Drive.
func (c *Client) FolderExists(ctx context.Context, name string) (bool, error) {
	query := fmt.Sprintf("mimeType = '%s' and name = '%s' and trashed = false", FolderMimeType, escapeQuery(name))
	files, err := c.driveService.ListFiles(ctx, query, "id, name", "name")
	if err != nil {
		return false, fmt.Errorf("failed to search folders: %w", err)
	}
	return len(files) > 0, nil
}

// escapeQuery escapes a value for a single-quoted Drive query string
func escapeQuery(s string) string {
	return strings.NewReplacer(`\`, `\\`, `'`, `\'`).Replace(s)
}

// Ensure Client implements export.FolderFinder
var _ export.FolderFinder = (*Client)(nil)

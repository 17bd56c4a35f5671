package export

import (
	"context"
	"errors"
	"fmt"
	"io"

	"ee-export/domain/export"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrBucketNotFound is returned by preflight when a Cloud Storage output bucket is missing
var ErrBucketNotFound = errors.New("output bucket not found")

// SubmitService prepares, checks and starts exports
type SubmitService struct {
	converter *ConvertService
	submitter export.Submitter
	buckets   export.BucketChecker
	folders   export.FolderFinder
	logger    *zap.Logger
	output    io.Writer
	newID     func() string
}

// NewSubmitService creates a new submit service.
// A nil bucket checker or folder finder skips that preflight check.
func NewSubmitService(
	converter *ConvertService,
	submitter export.Submitter,
	buckets export.BucketChecker,
	folders export.FolderFinder,
	logger *zap.Logger,
	output io.Writer,
) *SubmitService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if output == nil {
		output = io.Discard
	}
	return &SubmitService{
		converter: converter,
		submitter: submitter,
		buckets:   buckets,
		folders:   folders,
		logger:    logger,
		output:    output,
		newID:     uuid.NewString,
	}
}

// Prepare converts the task, assigning a fresh request id when it has none
// so a retried submission is deduplicated by the backend
func (s *SubmitService) Prepare(ctx context.Context, kind string, p *export.LegacyParams) (export.Request, error) {
	if p != nil && p.ID.IsNull() {
		id := s.newID()
		s.logger.Debug("assigned request id", zap.String("id", id))
		p = p.WithID(id)
	}
	return s.converter.Convert(ctx, kind, p)
}

// Preflight checks that the request's output locations are usable.
// A missing bucket fails; a missing Drive folder is created by the export so
// it only produces a warning.
func (s *SubmitService) Preflight(ctx context.Context, req export.Request) error {
	buckets, folders := Destinations(req)

	if s.buckets != nil {
		for _, bucket := range buckets {
			exists, err := s.buckets.BucketExists(ctx, bucket)
			if err != nil {
				return fmt.Errorf("preflight failed: %w", err)
			}
			if !exists {
				return fmt.Errorf("%w: %s", ErrBucketNotFound, bucket)
			}
			fmt.Fprintf(s.output, "Bucket gs://%s found\n", bucket)
		}
	}

	if s.folders != nil {
		for _, folder := range folders {
			exists, err := s.folders.FolderExists(ctx, folder)
			if err != nil {
				s.logger.Warn("could not check drive folder", zap.String("folder", folder), zap.Error(err))
				continue
			}
			if !exists {
				s.logger.Warn("drive folder does not exist and will be created", zap.String("folder", folder))
				fmt.Fprintf(s.output, "Drive folder %q will be created\n", folder)
				continue
			}
			fmt.Fprintf(s.output, "Drive folder %q found\n", folder)
		}
	}

	return nil
}

// Submit runs preflight when asked and starts the export in the project
func (s *SubmitService) Submit(ctx context.Context, project string, req export.Request, preflight bool) (*export.Operation, error) {
	if preflight {
		if err := s.Preflight(ctx, req); err != nil {
			return nil, err
		}
	}

	op, err := s.submitter.Submit(ctx, project, req)
	if err != nil {
		return nil, err
	}
	s.logger.Info("export started",
		zap.String("kind", string(req.Kind())),
		zap.String("operation", op.Name))
	return op, nil
}

// Destinations lists the Cloud Storage buckets and Drive folders a request writes to
func Destinations(req export.Request) (buckets, folders []string) {
	add := func(gcs *export.GcsDestination, drive *export.DriveDestination) {
		if gcs != nil && gcs.Bucket != nil && *gcs.Bucket != "" {
			buckets = append(buckets, *gcs.Bucket)
		}
		if drive != nil && drive.Folder != nil && *drive.Folder != "" {
			folders = append(folders, *drive.Folder)
		}
	}

	switch r := req.(type) {
	case *export.ExportImageRequest:
		if o := r.FileExportOptions; o != nil {
			add(o.GcsDestination, o.DriveDestination)
		}
	case *export.ExportTableRequest:
		if o := r.FileExportOptions; o != nil {
			add(o.GcsDestination, o.DriveDestination)
		}
	case *export.ExportVideoRequest:
		if o := r.FileExportOptions; o != nil {
			add(o.GcsDestination, o.DriveDestination)
		}
	case *export.ExportMapRequest:
		if o := r.TileExportOptions; o != nil {
			add(o.GcsDestination, o.DriveDestination)
		}
	case *export.ExportVideoMapRequest:
		if o := r.TileExportOptions; o != nil {
			add(o.GcsDestination, o.DriveDestination)
		}
	}
	return buckets, folders
}

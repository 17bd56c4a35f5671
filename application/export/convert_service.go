package export

import (
	"context"
	"fmt"

	"ee-export/domain/export"

	"go.uber.org/zap"
)

// ConvertService turns loaded task parameters into export requests
type ConvertService struct {
	converter *export.Converter
	logger    *zap.Logger
}

// NewConvertService creates a new convert service
func NewConvertService(converter *export.Converter, logger *zap.Logger) *ConvertService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ConvertService{
		converter: converter,
		logger:    logger,
	}
}

// ResolveKind picks the request kind from the explicit argument, falling back
// to the task's own "type" key
func (s *ConvertService) ResolveKind(kind string, p *export.LegacyParams) (export.Kind, error) {
	if kind != "" {
		return export.ParseKind(kind)
	}
	if p != nil {
		if t := p.Type.Text(); t != nil {
			return export.ParseKind(*t)
		}
	}
	return "", fmt.Errorf("%w: no kind given and the task has no type", export.ErrUnknownKind)
}

// Convert builds the export request for the task
func (s *ConvertService) Convert(ctx context.Context, kind string, p *export.LegacyParams) (export.Request, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	k, err := s.ResolveKind(kind, p)
	if err != nil {
		return nil, err
	}

	if p != nil && len(p.Unknown) > 0 {
		s.logger.Warn("ignoring unrecognized task keys", zap.Strings("keys", p.Unknown))
	}
	s.logger.Debug("converting export task",
		zap.String("kind", string(k)),
		zap.Stringer("destination", export.GuessDestination(p)))

	req, err := s.converter.Convert(k, p)
	if err != nil {
		return nil, fmt.Errorf("failed to convert %s task: %w", k, err)
	}
	return req, nil
}

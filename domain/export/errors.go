package export

import "errors"

var (
	// ErrMissingElement is returned when the element to export is absent
	ErrMissingElement = errors.New(`"element" not found in params`)

	// ErrUnsupportedDestination is returned when a destination is not valid for the export kind
	ErrUnsupportedDestination = errors.New("unsupported export destination")

	// ErrConflictingOptions is returned when two mutually exclusive aliases are both set
	ErrConflictingOptions = errors.New("conflicting export options")

	// ErrInvalidDimensions is returned when grid dimensions cannot be parsed
	ErrInvalidDimensions = errors.New("unable to construct grid from dimensions")

	// ErrInvalidTensorDepths is returned when tfrecordTensorDepths is not a band-to-depth mapping
	ErrInvalidTensorDepths = errors.New(`"tensorDepths" option must have the form Object<string, number>`)

	// ErrInvalidNumber is returned when a numeric option holds a non-numeric value
	ErrInvalidNumber = errors.New("invalid numeric value")

	// ErrUnknownFileFormat is returned when a file format has no Cloud API equivalent
	ErrUnknownFileFormat = errors.New("unknown file format")

	// ErrInvalidPyramidingPolicy is returned when pyramidingPolicy cannot be parsed
	ErrInvalidPyramidingPolicy = errors.New("invalid pyramiding policy")

	// ErrUnknownKind is returned when an export kind or legacy task type is not recognized
	ErrUnknownKind = errors.New("unknown export kind")
)

package domain

import "errors"

// ============================================================================
// Pipeline Errors
// ============================================================================

var (
	ErrSchemaMismatch    = errors.New("dataset is missing required columns")
	ErrInsufficientData  = errors.New("not enough unique samples left")
	ErrMalformedInput    = errors.New("malformed input")
	ErrInvalidSampleSize = errors.New("sample size must be a positive integer")
	ErrInvalidIterations = errors.New("iterations must be a positive integer")
	ErrUnknownCluster    = errors.New("unknown cluster")
)

// ============================================================================
// ETL Errors
// ============================================================================

var (
	ErrUnsupportedFormat    = errors.New("unsupported file format, only CSV and Excel files are supported")
	ErrInvalidDatasetConfig = errors.New("invalid dataset config")
)

// ============================================================================
// Survey Errors
// ============================================================================

var (
	ErrSessionNotFound    = errors.New("survey session not found")
	ErrInvalidResponse    = errors.New("response references an unknown visual")
	ErrMissingParticipant = errors.New("participant is required")
	ErrMetadataNotFound   = errors.New("visual metadata not found")
)

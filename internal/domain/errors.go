package domain

import "errors"

var (
	ErrCaptureStart       = errors.New("capture failed to start")
	ErrCaptureToolMissing = errors.New("capture tool not available")
	ErrEmptyOutput        = errors.New("capture produced an empty file")
	ErrInvalidTransition  = errors.New("invalid state transition")
	ErrResolve            = errors.New("stream resolution failed")
	ErrSourceExists       = errors.New("source already exists")
	ErrSourceNotFound     = errors.New("source not found")
	ErrSourceStopping     = errors.New("source is being unwatched")
)

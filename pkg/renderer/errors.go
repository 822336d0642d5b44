package renderer

import "fmt"

// ConfigurationError reports render parameters that make a job impossible.
// It is raised before any pixel is sampled.
type ConfigurationError struct {
	Field  string
	Value  any
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid %s %v: %s", e.Field, e.Value, e.Reason)
}

// SamplingError reports the pixel whose sampling failed. A sampling error is
// fatal for the whole render.
type SamplingError struct {
	X, Y int
	Err  error
}

func (e *SamplingError) Error() string {
	return fmt.Sprintf("sampling pixel (%d,%d): %v", e.X, e.Y, e.Err)
}

func (e *SamplingError) Unwrap() error { return e.Err }

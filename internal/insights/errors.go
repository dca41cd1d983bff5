package insights

import "fmt"

// ConfigurationError means a required external credential or setting
// is absent. The request aborts immediately with no partial response.
type ConfigurationError struct {
	Missing string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s not set", e.Missing)
}

// FetchError means one of the record-store reads failed. The whole
// request fails; partial aggregation would corrupt reconciliation.
type FetchError struct {
	Source string
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.Source, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// GenerationError means the text-generation call failed or returned a
// payload that failed structural validation. Raw carries the offending
// payload for diagnostics; it must never be shown as a valid insight.
// Retryable marks timeouts and transient network failures.
type GenerationError struct {
	Reason    string
	Status    int
	Raw       string
	Retryable bool
	Err       error
}

func (e *GenerationError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("generation failed (status %d): %s", e.Status, e.Reason)
	}
	return fmt.Sprintf("generation failed: %s", e.Reason)
}

func (e *GenerationError) Unwrap() error { return e.Err }

package reputation

import "errors"

// ErrInvalidPerformance marks performance input that fails validation.
// Callers match it with errors.Is.
var ErrInvalidPerformance = errors.New("invalid reviewer performance")

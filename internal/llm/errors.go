package llm

import "errors"

var errEmptyCompletion = errors.New("provider returned no completion choices")

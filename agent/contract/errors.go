package contract

import "errors"

var (
	ErrProviderTimeout       = errors.New("completion provider timed out")
	ErrProviderError         = errors.New("completion provider failed")
	ErrMalformedRouterOutput = errors.New("router output is malformed")
	ErrValidation            = errors.New("validation failed")
)

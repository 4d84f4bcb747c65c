package source

import (
	"context"

	"github.com/mikey/markerscan/internal/core"
)

// UnavailableSource stands in for a store that could not be opened. Every
// fetch reports the original failure, wrapped in core.ErrSourceUnavailable.
type UnavailableSource struct {
	cause error
}

// NewUnavailableSource records why the real source could not be opened
func NewUnavailableSource(cause error) *UnavailableSource {
	return &UnavailableSource{cause: cause}
}

// Fetch always fails with the recorded cause
func (s *UnavailableSource) Fetch(context.Context, core.Query) ([]core.Message, error) {
	return nil, s.cause
}

// Close is a no-op
func (s *UnavailableSource) Close() error {
	return nil
}

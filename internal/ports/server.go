package ports

import "context"

// Server is a long-running front end to the marker service
type Server interface {
	// Start begins serving in the background
	Start() error

	// Stop shuts the server down, waiting for in-flight requests
	Stop(ctx context.Context) error
}

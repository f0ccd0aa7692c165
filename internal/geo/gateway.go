// Package geo wraps the out-of-process geocoding worker behind a narrow
// capability interface so the HTTP layer never touches process spawning.
package geo

import (
	"context"
	"encoding/json"
)

// Gateway is the geocoding contract: both operations hand work to the worker
// and return its decoded JSON payload verbatim.
type Gateway interface {
	// BulkGeocode processes an uploaded CSV of territory boundaries.
	BulkGeocode(ctx context.Context, csvPath string) (json.RawMessage, error)

	// ReversePoint resolves a single coordinate pair to an address.
	ReversePoint(ctx context.Context, lat, lon string) (json.RawMessage, error)
}

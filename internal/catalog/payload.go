package catalog

import (
	"errors"
	"fmt"
	"io"
)

// DefaultMaxPayloadBytes bounds a single upstream catalog response.
const DefaultMaxPayloadBytes = 16 << 20

// ErrPayloadTooLarge is returned when an upstream body exceeds its limit.
var ErrPayloadTooLarge = errors.New("upstream payload too large")

// ReadPayload reads at most limit bytes from r. A body longer than limit is
// an error rather than a silently truncated document.
func ReadPayload(r io.Reader, limit int64) ([]byte, error) {
	if limit <= 0 {
		limit = DefaultMaxPayloadBytes
	}
	body, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(body)) > limit {
		return nil, fmt.Errorf("%w: over %d bytes", ErrPayloadTooLarge, limit)
	}
	return body, nil
}

// Package polyline implements the encoded polyline format used by routing
// engines (precision 1e-5, zig-zag signed deltas in 5-bit groups).
package polyline

import (
	"fmt"
	"math"
	"strings"

	"customer-route-service/internal/domain"
)

const (
	precision    = 1e5
	chunkMask    = 0x1f
	continuation = 0x20
	asciiOffset  = 63
	maxShift     = 60
)

// DecodeError reports malformed polyline input at a byte offset.
type DecodeError struct {
	Offset int
	Reason string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode polyline: %s at offset %d", e.Reason, e.Offset)
}

// Decode turns an encoded polyline into an ordered list of points.
// Truncated or out-of-alphabet input returns a *DecodeError.
func Decode(encoded string) ([]domain.GeoPoint, error) {
	points := make([]domain.GeoPoint, 0, len(encoded)/4)

	var lat, lng int64
	for i := 0; i < len(encoded); {
		dLat, next, err := readValue(encoded, i)
		if err != nil {
			return nil, err
		}
		if next >= len(encoded) {
			return nil, &DecodeError{Offset: next, Reason: "latitude without longitude"}
		}

		dLng, next, err := readValue(encoded, next)
		if err != nil {
			return nil, err
		}
		i = next

		lat += dLat
		lng += dLng
		points = append(points, domain.GeoPoint{
			Lat: float64(lat) / precision,
			Lng: float64(lng) / precision,
		})
	}

	return points, nil
}

// readValue reads one zig-zag encoded delta starting at i and returns it with
// the offset of the following byte.
func readValue(s string, i int) (int64, int, error) {
	var result int64
	var shift uint

	for {
		if i >= len(s) {
			return 0, i, &DecodeError{Offset: i, Reason: "unexpected end of input"}
		}

		b := int64(s[i]) - asciiOffset
		if b < 0 || b > 0x3f {
			return 0, i, &DecodeError{Offset: i, Reason: fmt.Sprintf("invalid character %q", s[i])}
		}
		i++

		result |= (b & chunkMask) << shift
		shift += 5
		if b < continuation {
			break
		}
		if shift > maxShift {
			return 0, i, &DecodeError{Offset: i, Reason: "value overflows 64 bits"}
		}
	}

	if result&1 != 0 {
		return ^(result >> 1), i, nil
	}
	return result >> 1, i, nil
}

// Encode is the inverse of Decode.
func Encode(points []domain.GeoPoint) string {
	var sb strings.Builder

	var prevLat, prevLng int64
	for _, p := range points {
		lat := int64(math.Round(p.Lat * precision))
		lng := int64(math.Round(p.Lng * precision))

		writeValue(&sb, lat-prevLat)
		writeValue(&sb, lng-prevLng)

		prevLat, prevLng = lat, lng
	}

	return sb.String()
}

func writeValue(sb *strings.Builder, v int64) {
	u := uint64(v) << 1
	if v < 0 {
		u = ^u
	}
	for u >= continuation {
		sb.WriteByte(byte((continuation | (u & chunkMask)) + asciiOffset))
		u >>= 5
	}
	sb.WriteByte(byte(u + asciiOffset))
}

package layer

import (
	"github.com/golang/geo/s2"
)

const (
	coverMaxLevel = 12
	coverMaxCells = 8
	tokenLen      = 8
)

// CoverageTokens returns the s2 cell tokens (truncated to 8 characters)
// covering the collection's union bound. Overlays use them as coarse
// dataset-coverage keys. Empty collection yields nil.
func (c *Collection) CoverageTokens() []string {
	if len(c.Features) == 0 {
		return nil
	}

	rect := s2.RectFromLatLng(s2.LatLngFromDegrees(c.Union.Min.Y(), c.Union.Min.X()))
	rect = rect.AddPoint(s2.LatLngFromDegrees(c.Union.Max.Y(), c.Union.Max.X()))

	coverer := &s2.RegionCoverer{MaxLevel: coverMaxLevel, MaxCells: coverMaxCells}

	var tokens []string
	for _, id := range coverer.Covering(rect) {
		token := id.ToToken()
		if len(token) > tokenLen {
			token = token[:tokenLen]
		}
		tokens = append(tokens, token)
	}
	return tokens
}

package render

import (
	"github.com/paulmach/orb"

	"github.com/godeepar/mapengine/colors"
)

// Op is one draw primitive for the drawing surface to execute, in emission
// order. Coordinates are plane units; the surface applies its own
// plane→screen transform.
type Op interface {
	op()
}

// FillPath fills a closed path.
type FillPath struct {
	FeatureID string
	Path      []orb.Point
	Color     colors.RGBA
}

// StrokePath strokes an open or closed path at a fixed screen-space width.
type StrokePath struct {
	FeatureID string
	Path      []orb.Point
	Color     colors.RGBA
	Width     float64
}

// Circle is a filled circle marker.
type Circle struct {
	FeatureID string
	Center    orb.Point
	Radius    float64
	Color     colors.RGBA
}

// Square is a filled axis-aligned square marker, Size being the half-width.
type Square struct {
	FeatureID string
	Center    orb.Point
	Size      float64
	Color     colors.RGBA
}

// Cross is the overlay drawn on pending point markers after the base shape
// pass.
type Cross struct {
	FeatureID string
	Center    orb.Point
	Size      float64
	Color     colors.RGBA
	Width     float64
}

func (FillPath) op()   {}
func (StrokePath) op() {}
func (Circle) op()     {}
func (Square) op()     {}
func (Cross) op()      {}

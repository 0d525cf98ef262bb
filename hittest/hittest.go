// Package hittest answers "what feature is at this coordinate" and "what is
// the nearest point on a line" over the composite collections. Every
// function is a single synchronous pass, total, and stateless.
package hittest

import (
	"github.com/golang/geo/s2"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"

	"github.com/godeepar/mapengine/geom"
	"github.com/godeepar/mapengine/layer"
)

const (
	// fallbackToleranceDeg applies when no viewport span is available,
	// e.g. non-interactive marker placement. Roughly 100 m.
	fallbackToleranceDeg = 0.001

	// toleranceFraction scales the tap target with zoom: about 3% of the
	// visible map height.
	toleranceFraction = 0.03

	earthRadiusMeters = 6371000.0
)

// Hit is the result of a tap query.
type Hit struct {
	Feature        *layer.RenderFeature
	Kind           layer.Kind
	DistanceMeters float64
}

// Tolerance derives the hit tolerance in degrees from the visible latitude
// span; zero or negative span selects the fixed fallback.
func Tolerance(visibleLatSpan float64) float64 {
	if visibleLatSpan > 0 {
		return visibleLatSpan * toleranceFraction
	}
	return fallbackToleranceDeg
}

// HitTest returns the best-matching feature at the query coordinate, or nil.
// Any polygon containing the point wins unconditionally over every line and
// point candidate regardless of distance; among the rest the globally
// nearest candidate within tolerance wins. Collections may be nil.
func HitTest(q geom.Coordinate, polys, lines, sites, drains *layer.Collection, visibleLatSpan float64) *Hit {
	tol := Tolerance(visibleLatSpan)
	qp := geom.Project(q)

	if polys != nil {
		for i := range polys.Features {
			f := &polys.Features[i]
			if !f.Bound.Pad(tol).Contains(qp) {
				continue
			}
			if ringContains(f.Path, qp) {
				return &Hit{Feature: f, Kind: layer.KindPolygons}
			}
		}
	}

	var best *Hit

	if lines != nil {
		tolMeters := tol * geom.MetersPerDegree
		for i := range lines.Features {
			f := &lines.Features[i]
			if !f.Bound.Pad(tol).Contains(qp) {
				continue
			}
			d := lineDistance(f, qp) * geom.MetersPerDegree
			if d <= tolMeters && (best == nil || d < best.DistanceMeters) {
				best = &Hit{Feature: f, Kind: layer.KindLines, DistanceMeters: d}
			}
		}
	}

	for _, coll := range []*layer.Collection{sites, drains} {
		if coll == nil {
			continue
		}
		tolMeters := tol * geom.MetersPerDegree
		for i := range coll.Features {
			f := &coll.Features[i]
			c := f.Coords[0]
			// cheap degree box before the surface distance
			if abs(c.Lat-q.Lat) > tol || abs(c.Lon-q.Lon) > tol {
				continue
			}
			d := SurfaceDistance(q, c)
			if d <= tolMeters && (best == nil || d < best.DistanceMeters) {
				best = &Hit{Feature: f, Kind: coll.Kind, DistanceMeters: d}
			}
		}
	}

	return best
}

// lineDistance is the minimum plane distance in degrees from the point to
// any segment of any line of the feature.
func lineDistance(f *layer.RenderFeature, qp orb.Point) float64 {
	best := -1.0
	for _, line := range f.Segments() {
		for i := 0; i+1 < len(line); i++ {
			d, _ := segmentDistance(qp, line[i], line[i+1])
			if best < 0 || d < best {
				best = d
			}
		}
	}
	return best
}

// segmentDistance returns the minimum distance from p to the segment a-b in
// plane units along with the clamped projection point. Degenerate segments
// fall back to the distance to a.
func segmentDistance(p, a, b orb.Point) (float64, orb.Point) {
	dx := b.X() - a.X()
	dy := b.Y() - a.Y()
	l2 := dx*dx + dy*dy
	if l2 == 0 {
		return planar.Distance(p, a), a
	}

	t := ((p.X()-a.X())*dx + (p.Y()-a.Y())*dy) / l2
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}

	proj := orb.Point{a.X() + t*dx, a.Y() + t*dy}
	return planar.Distance(p, proj), proj
}

// ringContains is the odd-even ray cast: a horizontal ray toward +x
// (increasing longitude) from the point, counting edge crossings. An edge
// is tested only when its endpoint y values straddle the point's y, strict
// on one side, so shared vertices are not double-counted and horizontal
// edges contribute nothing.
func ringContains(ring []orb.Point, p orb.Point) bool {
	if len(ring) < 3 {
		return false
	}

	inside := false
	j := len(ring) - 1
	for i := 0; i < len(ring); i++ {
		yi, yj := ring[i].Y(), ring[j].Y()
		if (yi > p.Y()) != (yj > p.Y()) {
			x := ring[i].X() + (p.Y()-yi)/(yj-yi)*(ring[j].X()-ring[i].X())
			if p.X() < x {
				inside = !inside
			}
		}
		j = i
	}
	return inside
}

// SurfaceDistance is the great-circle distance between two coordinates in
// meters.
func SurfaceDistance(a, b geom.Coordinate) float64 {
	la := s2.LatLngFromDegrees(a.Lat, a.Lon)
	lb := s2.LatLngFromDegrees(b.Lat, b.Lon)
	return la.Distance(lb).Radians() * earthRadiusMeters
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

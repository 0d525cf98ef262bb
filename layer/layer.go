// Package layer builds the composite feature collections the renderer and
// hit tester run over: per-feature precomputed coordinates, plane bounding
// boxes and color keys, held in flat slices and rebuilt wholesale whenever
// the source data or any color changes.
package layer

import (
	"github.com/paulmach/orb"

	"github.com/godeepar/mapengine/geom"
)

// Kind names the feature class a collection holds. One collection exists
// per class; point classes additionally select the marker shape drawn for
// every member.
type Kind int

const (
	KindPolygons Kind = iota
	KindLines
	KindSites
	KindDrains
)

func (k Kind) String() string {
	switch k {
	case KindPolygons:
		return "polygons"
	case KindLines:
		return "lines"
	case KindSites:
		return "sites"
	}
	return "drains"
}

// MinVertices is the smallest usable coordinate count for members of this
// class.
func (k Kind) MinVertices() int {
	switch k {
	case KindPolygons:
		return 3
	case KindLines:
		return 2
	}
	return 1
}

// ColorSource supplies the current color for a feature id. Implementations
// must be total: a lookup miss returns a default hex string, never an
// error. The treatment-status layer implements this; see package style.
type ColorSource interface {
	ColorFor(id string) string
}

// Feature is one input domain entity: a field polygon, a ditch or canal
// polyline, a point site or a storm drain.
type Feature struct {
	ID       string
	Geometry geom.Geometry
	// Pending marks point features that have not been made permanent;
	// the renderer overlays a cross on them.
	Pending bool
}

// RenderFeature is the immutable precomputed form of one feature. Coords
// hold the representative lat/lon sequence (outer ring for polygons, first
// line for line geometries, the point itself). Path is Coords projected
// onto the plane. Lines holds every line of a line geometry, projected, so
// path rendering and segment queries walk all of them. Bound covers every
// stored vertex.
type RenderFeature struct {
	ID       string
	Coords   []geom.Coordinate
	Path     []orb.Point
	Lines    [][]orb.Point
	Bound    orb.Bound
	ColorKey string
	Pending  bool
}

// Collection owns the render features of one class plus the union of their
// bounding boxes. Read-only after Build; swap in a freshly built one to
// change data.
type Collection struct {
	Kind     Kind
	Features []RenderFeature
	// Union is the fold of all feature bounds. Meaningless when the
	// collection is empty.
	Union orb.Bound
}

// Build constructs a collection from raw features and a color source.
// Features whose extracted coordinate count is below the class minimum are
// dropped; every stored member satisfies the minimum-vertex invariant.
// Build never fails.
func Build(kind Kind, feats []Feature, src ColorSource) *Collection {
	coll := &Collection{Kind: kind}

	for _, f := range feats {
		coords := f.Geometry.PrimaryCoords()
		if len(coords) < kind.MinVertices() {
			continue
		}

		rf := RenderFeature{
			ID:       f.ID,
			Coords:   coords,
			Path:     geom.ProjectAll(coords),
			ColorKey: src.ColorFor(f.ID),
			Pending:  f.Pending,
		}

		var pts orb.MultiPoint
		if kind == KindLines {
			for _, line := range f.Geometry.AllLines() {
				if len(line) < kind.MinVertices() {
					continue
				}
				proj := geom.ProjectAll(line)
				rf.Lines = append(rf.Lines, proj)
				pts = append(pts, proj...)
			}
			if len(rf.Lines) == 0 {
				continue
			}
		} else {
			pts = rf.Path
		}
		rf.Bound = pts.Bound()

		if len(coll.Features) == 0 {
			coll.Union = rf.Bound
		} else {
			coll.Union = coll.Union.Union(rf.Bound)
		}
		coll.Features = append(coll.Features, rf)
	}

	return coll
}

// Segments returns the projected lines to walk for segment-based work. For
// line features that is every stored line; for ring features the single
// path.
func (f *RenderFeature) Segments() [][]orb.Point {
	if len(f.Lines) > 0 {
		return f.Lines
	}
	return [][]orb.Point{f.Path}
}

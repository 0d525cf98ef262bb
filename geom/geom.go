// Package geom holds the canonical geometry model for the map engine: a
// closed set of five geometry kinds, coordinate extraction rules, and the
// plane projection used by the renderer and hit tester.
package geom

// Kind discriminates the closed set of geometry shapes the engine accepts.
type Kind int

const (
	KindNone Kind = iota
	KindPoint
	KindLineString
	KindPolygon
	KindMultiLineString
	KindMultiPolygon
)

func (k Kind) String() string {
	switch k {
	case KindPoint:
		return "Point"
	case KindLineString:
		return "LineString"
	case KindPolygon:
		return "Polygon"
	case KindMultiLineString:
		return "MultiLineString"
	case KindMultiPolygon:
		return "MultiPolygon"
	}
	return "None"
}

// Coordinate is a WGS-84 latitude/longitude pair in degrees. No altitude.
type Coordinate struct {
	Lat float64
	Lon float64
}

// Geometry is a tagged union over the five supported kinds. Only the payload
// matching the kind is populated; the zero value has KindNone and extracts
// to nothing.
type Geometry struct {
	kind  Kind
	point Coordinate
	// lines holds one entry for a LineString, n for a MultiLineString.
	lines [][]Coordinate
	// rings holds the outer ring for a Polygon, the outer ring of each
	// polygon for a MultiPolygon.
	rings [][]Coordinate
}

func NewPoint(c Coordinate) Geometry {
	return Geometry{kind: KindPoint, point: c}
}

func NewLineString(coords []Coordinate) Geometry {
	return Geometry{kind: KindLineString, lines: [][]Coordinate{coords}}
}

func NewPolygon(outerRing []Coordinate) Geometry {
	return Geometry{kind: KindPolygon, rings: [][]Coordinate{outerRing}}
}

func NewMultiLineString(lines [][]Coordinate) Geometry {
	return Geometry{kind: KindMultiLineString, lines: lines}
}

// NewMultiPolygon takes the outer ring of each member polygon.
func NewMultiPolygon(rings [][]Coordinate) Geometry {
	return Geometry{kind: KindMultiPolygon, rings: rings}
}

func (g Geometry) Kind() Kind { return g.kind }

// PrimaryCoords returns the single representative coordinate sequence for
// the geometry: the outer ring of a polygon, the first ring of the first
// polygon of a multipolygon (the remaining polygons are ignored, a known
// limitation kept for compatibility), the first line of a multi-line, the
// coordinates of a line, or the point itself. Unusable geometry yields an
// empty slice, never an error.
func (g Geometry) PrimaryCoords() []Coordinate {
	switch g.kind {
	case KindPoint:
		return []Coordinate{g.point}
	case KindLineString, KindMultiLineString:
		if len(g.lines) > 0 {
			return g.lines[0]
		}
	case KindPolygon, KindMultiPolygon:
		if len(g.rings) > 0 {
			return g.rings[0]
		}
	}
	return nil
}

// AllLines returns every line of the geometry for segment-based consumers
// (path rendering, line hit testing, snap). A LineString contributes its
// single line; every line of a MultiLineString is included. Non-line kinds
// yield nil.
func (g Geometry) AllLines() [][]Coordinate {
	switch g.kind {
	case KindLineString, KindMultiLineString:
		return g.lines
	}
	return nil
}

// MinVertices is the smallest coordinate count at which a geometry of this
// kind is usable: 3 to close a ring, 2 to form a segment, 1 for a point.
func (k Kind) MinVertices() int {
	switch k {
	case KindPolygon, KindMultiPolygon:
		return 3
	case KindLineString, KindMultiLineString:
		return 2
	case KindPoint:
		return 1
	}
	return 0
}

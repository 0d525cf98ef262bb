package geom

import (
	geojson "github.com/paulmach/go.geojson"
)

// FromGeoJSON builds a Geometry from a decoded GeoJSON geometry. GeoJSON
// positions are [lon, lat]; anything outside the five supported kinds, and
// any position with fewer than two ordinates, maps to the zero Geometry
// rather than an error.
func FromGeoJSON(g *geojson.Geometry) Geometry {
	if g == nil {
		return Geometry{}
	}

	switch g.Type {
	case geojson.GeometryPoint:
		if c, ok := position(g.Point); ok {
			return NewPoint(c)
		}

	case geojson.GeometryLineString:
		if line := positions(g.LineString); line != nil {
			return NewLineString(line)
		}

	case geojson.GeometryMultiLineString:
		var lines [][]Coordinate
		for _, raw := range g.MultiLineString {
			if line := positions(raw); line != nil {
				lines = append(lines, line)
			}
		}
		if lines != nil {
			return NewMultiLineString(lines)
		}

	case geojson.GeometryPolygon:
		if len(g.Polygon) > 0 {
			if ring := positions(g.Polygon[0]); ring != nil {
				return NewPolygon(ring)
			}
		}

	case geojson.GeometryMultiPolygon:
		var rings [][]Coordinate
		for _, poly := range g.MultiPolygon {
			if len(poly) == 0 {
				continue
			}
			if ring := positions(poly[0]); ring != nil {
				rings = append(rings, ring)
			}
		}
		if rings != nil {
			return NewMultiPolygon(rings)
		}
	}

	return Geometry{}
}

func position(raw []float64) (Coordinate, bool) {
	if len(raw) < 2 {
		return Coordinate{}, false
	}
	return Coordinate{Lat: raw[1], Lon: raw[0]}, true
}

func positions(raw [][]float64) []Coordinate {
	var coords []Coordinate
	for _, p := range raw {
		if c, ok := position(p); ok {
			coords = append(coords, c)
		}
	}
	return coords
}

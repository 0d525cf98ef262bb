package ingest

import (
	"fmt"
	"strconv"
	"strings"

	shp "github.com/jonas-p/go-shp"

	"github.com/godeepar/mapengine/geom"
	"github.com/godeepar/mapengine/layer"
)

// FromShapefile reads point, polyline and polygon records from a shapefile.
// The feature id comes from the first id-like attribute column when one
// exists, otherwise the record number. Unsupported shape types are skipped.
func FromShapefile(path string) ([]layer.Feature, error) {
	r, err := shp.Open(path)
	if err != nil {
		return nil, fmt.Errorf("[FromShapefile] in pkg [ingest] encountered: %v", err)
	}
	defer r.Close()

	idCol := -1
	for i, field := range r.Fields() {
		name := strings.ToLower(strings.TrimRight(field.String(), "\x00"))
		for _, want := range idProperties {
			if name == want {
				idCol = i
				break
			}
		}
		if idCol >= 0 {
			break
		}
	}

	var feats []layer.Feature
	for r.Next() {
		row, shape := r.Shape()

		var g geom.Geometry
		switch v := shape.(type) {
		case *shp.Point:
			g = geom.NewPoint(geom.Coordinate{Lat: v.Y, Lon: v.X})
		case *shp.PolyLine:
			g = geom.NewMultiLineString(partCoords(v.Points, v.Parts))
		case *shp.Polygon:
			rings := partCoords(v.Points, v.Parts)
			if len(rings) == 0 {
				continue
			}
			g = geom.NewPolygon(rings[0])
		default:
			continue
		}
		if g.Kind() == geom.KindNone {
			continue
		}

		id := strconv.Itoa(row)
		if idCol >= 0 {
			if attr := strings.TrimSpace(r.ReadAttribute(row, idCol)); attr != "" {
				id = attr
			}
		}

		feats = append(feats, layer.Feature{ID: id, Geometry: g})
	}

	return feats, r.Err()
}

// partCoords splits a shapefile point array on its part offsets.
func partCoords(points []shp.Point, parts []int32) [][]geom.Coordinate {
	if len(parts) == 0 {
		parts = []int32{0}
	}

	var out [][]geom.Coordinate
	for p := 0; p < len(parts); p++ {
		start := int(parts[p])
		end := len(points)
		if p+1 < len(parts) {
			end = int(parts[p+1])
		}
		if start < 0 || start >= end || end > len(points) {
			continue
		}

		coords := make([]geom.Coordinate, 0, end-start)
		for _, pt := range points[start:end] {
			coords = append(coords, geom.Coordinate{Lat: pt.Y, Lon: pt.X})
		}
		out = append(out, coords)
	}
	return out
}

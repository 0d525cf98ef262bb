package geom

import (
	geo "github.com/paulmach/go.geo"
	"github.com/paulmach/orb"
)

// MetersPerDegree is the flat-earth conversion constant used when a
// tolerance expressed in degrees has to be compared against a distance in
// meters. Good enough at field scale; longitude error grows away from the
// equator but tap tolerances are forgiving.
const MetersPerDegree = 111000.0

// Project maps a coordinate onto the equirectangular plane the engine works
// in: x is longitude, y is latitude. Bounding boxes, viewport rectangles and
// segment math all share these units so rectangle tests stay cheap.
func Project(c Coordinate) orb.Point {
	return orb.Point{c.Lon, c.Lat}
}

// Unproject is the inverse of Project.
func Unproject(p orb.Point) Coordinate {
	return Coordinate{Lat: p.Y(), Lon: p.X()}
}

func ProjectAll(coords []Coordinate) []orb.Point {
	if len(coords) == 0 {
		return nil
	}
	pts := make([]orb.Point, len(coords))
	for i, c := range coords {
		pts[i] = Project(c)
	}
	return pts
}

// ToMercator converts a coordinate to EPSG:3857 for callers whose map
// widget speaks web mercator.
func ToMercator(c Coordinate) orb.Point {
	p := geo.NewPoint(c.Lon, c.Lat)
	geo.Mercator.Project(p)
	return orb.Point{p[0], p[1]}
}

// FromMercator converts an EPSG:3857 point back to latitude/longitude.
func FromMercator(p orb.Point) Coordinate {
	mp := geo.NewPoint(p.X(), p.Y())
	geo.Mercator.Inverse(mp)
	return Coordinate{Lat: mp[1], Lon: mp[0]}
}

// MercatorBound converts a web-mercator rectangle into the engine's plane
// units, for wiring a slippy-map widget's visible region straight into the
// renderer.
func MercatorBound(min, max orb.Point) orb.Bound {
	a := Project(FromMercator(min))
	b := Project(FromMercator(max))
	return orb.MultiPoint{a, b}.Bound()
}

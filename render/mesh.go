package render

import (
	"github.com/fogleman/delaunay"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"

	"github.com/godeepar/mapengine/layer"
)

// Mesh is a triangulated polygon fill for drawing surfaces that consume
// triangle lists instead of paths. Triangles holds vertex indices in groups
// of three.
type Mesh struct {
	FeatureID string
	Vertices  []orb.Point
	Triangles []int
}

// MeshFill triangulates a polygon feature's outer ring. Delaunay
// triangulation covers the convex hull, so triangles whose centroid falls
// outside the ring are filtered back out; what remains tiles concave
// polygons correctly. Returns nil for features that cannot be triangulated.
func MeshFill(f *layer.RenderFeature) *Mesh {
	if f == nil || len(f.Path) < 3 {
		return nil
	}

	pts := make([]delaunay.Point, len(f.Path))
	for i, p := range f.Path {
		pts[i] = delaunay.Point{X: p.X(), Y: p.Y()}
	}

	tri, err := delaunay.Triangulate(pts)
	if err != nil {
		return nil
	}

	ring := closedRing(f.Path)

	var kept []int
	for t := 0; t < len(tri.Triangles)/3; t++ {
		a := f.Path[tri.Triangles[3*t]]
		b := f.Path[tri.Triangles[3*t+1]]
		c := f.Path[tri.Triangles[3*t+2]]

		center, _ := planar.CentroidArea(orb.Ring{a, b, c, a})
		if planar.RingContains(ring, center) {
			kept = append(kept, tri.Triangles[3*t], tri.Triangles[3*t+1], tri.Triangles[3*t+2])
		}
	}
	if kept == nil {
		return nil
	}

	return &Mesh{FeatureID: f.ID, Vertices: f.Path, Triangles: kept}
}

func closedRing(path []orb.Point) orb.Ring {
	ring := make(orb.Ring, len(path), len(path)+1)
	copy(ring, path)
	if ring[0] != ring[len(ring)-1] {
		ring = append(ring, ring[0])
	}
	return ring
}

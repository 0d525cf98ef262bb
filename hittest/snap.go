package hittest

import (
	"github.com/godeepar/mapengine/geom"
	"github.com/godeepar/mapengine/layer"
)

// snapToleranceDeg is the fixed snap radius, independent of zoom. Roughly
// 111 m at the equator.
const snapToleranceDeg = 0.001

// Snap is the closest on-segment point of a line collection to a query
// coordinate.
type Snap struct {
	Coordinate     geom.Coordinate
	LineID         string
	DistanceMeters float64
}

// SnapToLine projects the coordinate onto the nearest position lying on any
// segment of any line in the collection, not the nearest vertex. Returns
// nil when every line is farther than the snap tolerance.
func SnapToLine(q geom.Coordinate, lines *layer.Collection) *Snap {
	if lines == nil {
		return nil
	}

	qp := geom.Project(q)
	best := -1.0
	var snap *Snap

	for i := range lines.Features {
		f := &lines.Features[i]
		if !f.Bound.Pad(snapToleranceDeg).Contains(qp) {
			continue
		}

		for _, line := range f.Segments() {
			for s := 0; s+1 < len(line); s++ {
				d, proj := segmentDistance(qp, line[s], line[s+1])
				if d > snapToleranceDeg {
					continue
				}
				if best < 0 || d < best {
					best = d
					snap = &Snap{
						Coordinate:     geom.Unproject(proj),
						LineID:         f.ID,
						DistanceMeters: d * geom.MetersPerDegree,
					}
				}
			}
		}
	}

	return snap
}

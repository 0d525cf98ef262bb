// Package render turns a composite collection and a viewport into an
// ordered list of draw primitives: cull by bounding box, batch by color,
// fill before stroke. It is pure over its inputs; the only retained state
// is the injected color cache.
package render

import (
	"github.com/paulmach/orb"

	"github.com/godeepar/mapengine/layer"
)

// viewportMargin expands the culling rectangle by this fraction of the
// viewport width on all sides, so features do not pop in and out at the
// edges while panning.
const viewportMargin = 0.10

const (
	baseStrokeWidth = 2.0
	baseMarkerSize  = 6.0
	baseCrossWidth  = 1.5
)

// Viewport is the visible plane rectangle plus the current zoom scale
// (plane units per screen point shrink as Scale grows). Stroke widths and
// marker sizes divide by Scale so they stay constant on screen.
type Viewport struct {
	Bound orb.Bound
	Scale float64
}

// Renderer emits draw ops for composite collections. Construct one per
// drawing surface with New; the color cache rides along with it.
type Renderer struct {
	cache *ColorCache
}

func New(cache *ColorCache) *Renderer {
	if cache == nil {
		cache = NewColorCache()
	}
	return &Renderer{cache: cache}
}

// Cache exposes the renderer's color cache, e.g. for pre-warming.
func (r *Renderer) Cache() *ColorCache { return r.cache }

// Draw emits the ops for every feature of the collection intersecting the
// expanded viewport. An empty visible set emits nothing; features too short
// for the primitive being drawn are skipped individually.
func (r *Renderer) Draw(coll *layer.Collection, vp Viewport) []Op {
	if coll == nil || len(coll.Features) == 0 {
		return nil
	}

	expanded := expand(vp.Bound)
	if !coll.Union.Intersects(expanded) {
		return nil
	}

	// Stable grouping by color key, order of first appearance. Switching
	// paint state dominates per-draw cost, so K color groups beat N
	// features.
	var keys []string
	groups := make(map[string][]*layer.RenderFeature)
	for i := range coll.Features {
		f := &coll.Features[i]
		if !f.Bound.Intersects(expanded) {
			continue
		}
		if _, ok := groups[f.ColorKey]; !ok {
			keys = append(keys, f.ColorKey)
		}
		groups[f.ColorKey] = append(groups[f.ColorKey], f)
	}

	scale := vp.Scale
	if scale <= 0 {
		scale = 1
	}

	var ops []Op
	for _, key := range keys {
		paint := r.cache.Paint(key)
		group := groups[key]

		switch coll.Kind {
		case layer.KindPolygons:
			ops = r.polygonGroup(ops, group, paint, scale)
		case layer.KindLines:
			ops = r.lineGroup(ops, group, paint, scale)
		default:
			ops = r.pointGroup(ops, coll.Kind, group, paint, scale)
		}
	}
	return ops
}

// polygonGroup emits every fill of the group before any stroke, so one
// polygon's fill can never paint over another's outline.
func (r *Renderer) polygonGroup(ops []Op, group []*layer.RenderFeature, paint Paint, scale float64) []Op {
	for _, f := range group {
		if len(f.Path) < 3 {
			continue
		}
		ops = append(ops, FillPath{FeatureID: f.ID, Path: f.Path, Color: paint.Fill})
	}
	for _, f := range group {
		if len(f.Path) < 2 {
			continue
		}
		ops = append(ops, StrokePath{
			FeatureID: f.ID,
			Path:      f.Path,
			Color:     paint.Stroke,
			Width:     baseStrokeWidth / scale,
		})
	}
	return ops
}

// lineGroup strokes every line of every feature, multi-line geometries
// included.
func (r *Renderer) lineGroup(ops []Op, group []*layer.RenderFeature, paint Paint, scale float64) []Op {
	for _, f := range group {
		for _, line := range f.Lines {
			if len(line) < 2 {
				continue
			}
			ops = append(ops, StrokePath{
				FeatureID: f.ID,
				Path:      line,
				Color:     paint.Stroke,
				Width:     baseStrokeWidth / scale,
			})
		}
	}
	return ops
}

// pointGroup draws one marker shape for the whole collection, circle for
// sites and square for drains, then a cross overlay pass for the pending
// ones.
func (r *Renderer) pointGroup(ops []Op, kind layer.Kind, group []*layer.RenderFeature, paint Paint, scale float64) []Op {
	size := baseMarkerSize / scale

	for _, f := range group {
		if len(f.Path) < 1 {
			continue
		}
		center := f.Path[0]
		if kind == layer.KindDrains {
			ops = append(ops, Square{FeatureID: f.ID, Center: center, Size: size, Color: paint.Fill})
		} else {
			ops = append(ops, Circle{FeatureID: f.ID, Center: center, Radius: size, Color: paint.Fill})
		}
	}
	for _, f := range group {
		if !f.Pending || len(f.Path) < 1 {
			continue
		}
		ops = append(ops, Cross{
			FeatureID: f.ID,
			Center:    f.Path[0],
			Size:      size,
			Color:     paint.Stroke,
			Width:     baseCrossWidth / scale,
		})
	}
	return ops
}

func expand(b orb.Bound) orb.Bound {
	margin := (b.Max.X() - b.Min.X()) * viewportMargin
	return orb.Bound{
		Min: orb.Point{b.Min.X() - margin, b.Min.Y() - margin},
		Max: orb.Point{b.Max.X() + margin, b.Max.Y() + margin},
	}
}

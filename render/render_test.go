package render

import (
	"testing"

	"github.com/paulmach/orb"

	"github.com/godeepar/mapengine/colors"
	"github.com/godeepar/mapengine/geom"
	"github.com/godeepar/mapengine/layer"
)

type colorMap map[string]string

func (m colorMap) ColorFor(id string) string {
	if hex, ok := m[id]; ok {
		return hex
	}
	return colors.DefaultHex
}

func ring(pts ...float64) []geom.Coordinate {
	var out []geom.Coordinate
	for i := 0; i+1 < len(pts); i += 2 {
		out = append(out, geom.Coordinate{Lon: pts[i], Lat: pts[i+1]})
	}
	return out
}

// square polygon feature with corners (x0,y0)-(x1,y1) in plane units
func squarePoly(id string, x0, y0, x1, y1 float64) layer.Feature {
	return layer.Feature{ID: id, Geometry: geom.NewPolygon(ring(x0, y0, x1, y0, x1, y1, x0, y1))}
}

func vp(minx, miny, maxx, maxy, scale float64) Viewport {
	return Viewport{
		Bound: orb.Bound{Min: orb.Point{minx, miny}, Max: orb.Point{maxx, maxy}},
		Scale: scale,
	}
}

func TestDrawEmptyCollectionIsNoop(t *testing.T) {
	r := New(nil)
	coll := layer.Build(layer.KindPolygons, nil, colorMap{})
	if ops := r.Draw(coll, vp(0, 0, 10, 10, 1)); ops != nil {
		t.Fatalf("expected no ops, got %d", len(ops))
	}
	if ops := r.Draw(nil, vp(0, 0, 10, 10, 1)); ops != nil {
		t.Fatalf("nil collection should be a no-op")
	}
}

func TestCullingAtExpansionBoundary(t *testing.T) {
	// viewport width 10, margin 1, expanded rectangle reaches x=11
	feats := []layer.Feature{
		squarePoly("touching", 11, 0, 12, 1),
		squarePoly("outside", 11.001, 2, 12, 3),
		squarePoly("inside", 1, 1, 2, 2),
	}
	r := New(nil)
	coll := layer.Build(layer.KindPolygons, feats, colorMap{})

	ops := r.Draw(coll, vp(0, 0, 10, 10, 1))

	seen := map[string]bool{}
	for _, op := range ops {
		if f, ok := op.(FillPath); ok {
			seen[f.FeatureID] = true
		}
	}
	if !seen["inside"] || !seen["touching"] {
		t.Fatalf("features on or inside the expanded boundary must draw: %v", seen)
	}
	if seen["outside"] {
		t.Fatal("feature beyond the expanded boundary must be culled")
	}
}

func TestColorGroupingIsAPartition(t *testing.T) {
	src := colorMap{"a": "#ff0000", "b": "#00ff00", "c": "#ff0000"}
	feats := []layer.Feature{
		squarePoly("a", 0, 0, 1, 1),
		squarePoly("b", 2, 0, 3, 1),
		squarePoly("c", 4, 0, 5, 1),
	}
	r := New(nil)
	coll := layer.Build(layer.KindPolygons, feats, src)

	ops := r.Draw(coll, vp(0, 0, 10, 10, 1))

	var fillOrder []string
	fillCount := map[string]int{}
	for _, op := range ops {
		if f, ok := op.(FillPath); ok {
			fillOrder = append(fillOrder, f.FeatureID)
			fillCount[f.FeatureID]++
		}
	}

	// every visible feature fills exactly once
	for _, id := range []string{"a", "b", "c"} {
		if fillCount[id] != 1 {
			t.Fatalf("feature %s filled %d times", id, fillCount[id])
		}
	}
	// first-appearance grouping: red group (a, c) before green (b)
	want := []string{"a", "c", "b"}
	for i, id := range want {
		if fillOrder[i] != id {
			t.Fatalf("fill order %v, want %v", fillOrder, want)
		}
	}
}

func TestFillsBeforeStrokesWithinGroup(t *testing.T) {
	src := colorMap{"a": "#ff0000", "b": "#ff0000"}
	feats := []layer.Feature{
		squarePoly("a", 0, 0, 1, 1),
		squarePoly("b", 2, 0, 3, 1),
	}
	r := New(nil)
	coll := layer.Build(layer.KindPolygons, feats, src)

	ops := r.Draw(coll, vp(0, 0, 10, 10, 1))
	if len(ops) != 4 {
		t.Fatalf("expected 2 fills + 2 strokes, got %d ops", len(ops))
	}
	for i, op := range ops[:2] {
		if _, ok := op.(FillPath); !ok {
			t.Fatalf("op %d should be a fill, got %T", i, op)
		}
	}
	for i, op := range ops[2:] {
		if _, ok := op.(StrokePath); !ok {
			t.Fatalf("op %d should be a stroke, got %T", i+2, op)
		}
	}
}

func TestStrokeWidthScalesInverselyWithZoom(t *testing.T) {
	r := New(nil)
	coll := layer.Build(layer.KindPolygons, []layer.Feature{squarePoly("a", 0, 0, 1, 1)}, colorMap{})

	for _, scale := range []float64{0.5, 1, 4} {
		ops := r.Draw(coll, vp(0, 0, 10, 10, scale))
		stroke := ops[len(ops)-1].(StrokePath)
		if stroke.Width != baseStrokeWidth/scale {
			t.Errorf("scale %v: width %v, want %v", scale, stroke.Width, baseStrokeWidth/scale)
		}
	}
}

func TestLineGroupStrokesEveryLineOfMultiLine(t *testing.T) {
	g := geom.NewMultiLineString([][]geom.Coordinate{
		ring(0, 0, 1, 0),
		ring(0, 2, 1, 2),
	})
	r := New(nil)
	coll := layer.Build(layer.KindLines, []layer.Feature{{ID: "ml", Geometry: g}}, colorMap{})

	ops := r.Draw(coll, vp(0, 0, 10, 10, 1))
	strokes := 0
	for _, op := range ops {
		if _, ok := op.(StrokePath); ok {
			strokes++
		}
	}
	if strokes != 2 {
		t.Fatalf("expected a stroke per line, got %d", strokes)
	}
}

func TestPointShapesAndPendingOverlay(t *testing.T) {
	r := New(nil)
	site := layer.Feature{ID: "s", Geometry: geom.NewPoint(geom.Coordinate{Lat: 1, Lon: 1}), Pending: true}
	drain := layer.Feature{ID: "d", Geometry: geom.NewPoint(geom.Coordinate{Lat: 2, Lon: 2})}

	sites := layer.Build(layer.KindSites, []layer.Feature{site}, colorMap{})
	drains := layer.Build(layer.KindDrains, []layer.Feature{drain}, colorMap{})

	siteOps := r.Draw(sites, vp(0, 0, 10, 10, 1))
	if len(siteOps) != 2 {
		t.Fatalf("pending site should draw base + cross, got %d ops", len(siteOps))
	}
	if _, ok := siteOps[0].(Circle); !ok {
		t.Fatalf("site base shape should be a circle, got %T", siteOps[0])
	}
	if _, ok := siteOps[1].(Cross); !ok {
		t.Fatalf("pending overlay should follow the base shape, got %T", siteOps[1])
	}

	drainOps := r.Draw(drains, vp(0, 0, 10, 10, 1))
	if len(drainOps) != 1 {
		t.Fatalf("permanent drain draws base shape only, got %d", len(drainOps))
	}
	if _, ok := drainOps[0].(Square); !ok {
		t.Fatalf("drain base shape should be a square, got %T", drainOps[0])
	}
}

func TestTwoColorSceneEndToEnd(t *testing.T) {
	src := colorMap{
		"field-a": "#ff0000", "field-b": "#00ff00", "field-c": "#ff0000",
		"ditch-1": "#00ff00", "ditch-2": "#ff0000",
	}
	polys := layer.Build(layer.KindPolygons, []layer.Feature{
		squarePoly("field-a", 0, 0, 1, 1),
		squarePoly("field-b", 50, 50, 51, 51),
		squarePoly("field-c", 60, 60, 61, 61),
	}, src)
	lines := layer.Build(layer.KindLines, []layer.Feature{
		{ID: "ditch-1", Geometry: geom.NewLineString(ring(0, 2, 2, 2))},
		{ID: "ditch-2", Geometry: geom.NewLineString(ring(50, 52, 52, 52))},
	}, src)

	r := New(nil)
	view := vp(0, 0, 5, 5, 1)
	ops := append(r.Draw(polys, view), r.Draw(lines, view)...)

	ids := map[string]bool{}
	paints := map[colors.RGBA]bool{}
	for _, op := range ops {
		switch v := op.(type) {
		case FillPath:
			ids[v.FeatureID] = true
			paints[v.Color] = true
		case StrokePath:
			ids[v.FeatureID] = true
			paints[v.Color] = true
		}
	}

	if len(ids) != 2 || !ids["field-a"] || !ids["ditch-1"] {
		t.Fatalf("viewport should draw exactly field-a and ditch-1, got %v", ids)
	}

	// one fill + one stroke paint for red, one stroke paint for green
	red := colors.ParseOrDefault("#ff0000")
	green := colors.ParseOrDefault("#00ff00")
	if !paints[red.WithAlpha(fillAlpha)] || !paints[red.Darken(strokeDarken)] || !paints[green.Darken(strokeDarken)] {
		t.Fatalf("unexpected paint set: %v", paints)
	}

	if r.Cache().Len() != 2 {
		t.Fatalf("two distinct colors should mean two cache entries, got %d", r.Cache().Len())
	}
}

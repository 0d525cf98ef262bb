package layer

import (
	"testing"

	"github.com/godeepar/mapengine/geom"
)

type colorMap map[string]string

func (m colorMap) ColorFor(id string) string {
	if hex, ok := m[id]; ok {
		return hex
	}
	return "#808080"
}

func coords(pairs ...float64) []geom.Coordinate {
	var out []geom.Coordinate
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, geom.Coordinate{Lat: pairs[i], Lon: pairs[i+1]})
	}
	return out
}

func TestBuildDropsDegenerateGeometry(t *testing.T) {
	feats := []Feature{
		{ID: "ok", Geometry: geom.NewPolygon(coords(0, 0, 0, 1, 1, 1))},
		{ID: "two-point-polygon", Geometry: geom.NewPolygon(coords(0, 0, 0, 1))},
		{ID: "empty", Geometry: geom.Geometry{}},
	}

	coll := Build(KindPolygons, feats, colorMap{})
	if len(coll.Features) != 1 || coll.Features[0].ID != "ok" {
		t.Fatalf("expected only the valid polygon, got %+v", coll.Features)
	}
	for _, f := range coll.Features {
		if len(f.Coords) < KindPolygons.MinVertices() {
			t.Errorf("stored feature %s below minimum vertex count", f.ID)
		}
	}
}

func TestBuildDropsShortLines(t *testing.T) {
	feats := []Feature{
		{ID: "line", Geometry: geom.NewLineString(coords(0, 0, 0, 1))},
		{ID: "dot", Geometry: geom.NewLineString(coords(0, 0))},
	}

	coll := Build(KindLines, feats, colorMap{})
	if len(coll.Features) != 1 || coll.Features[0].ID != "line" {
		t.Fatalf("expected only the two-point line, got %+v", coll.Features)
	}
}

func TestBuildMultiLineKeepsAllLinesInBound(t *testing.T) {
	g := geom.NewMultiLineString([][]geom.Coordinate{
		coords(0, 0, 0, 1),
		coords(5, 5, 5, 6),
	})
	coll := Build(KindLines, []Feature{{ID: "ml", Geometry: g}}, colorMap{})

	if len(coll.Features) != 1 {
		t.Fatalf("expected one feature, got %d", len(coll.Features))
	}
	f := coll.Features[0]
	if len(f.Lines) != 2 {
		t.Fatalf("expected both lines stored, got %d", len(f.Lines))
	}
	// bound must cover the second line too
	if f.Bound.Max.Y() != 5 || f.Bound.Max.X() != 6 {
		t.Fatalf("bound ignores second line: %v", f.Bound)
	}
}

func TestBuildUnionBound(t *testing.T) {
	feats := []Feature{
		{ID: "a", Geometry: geom.NewPolygon(coords(0, 0, 0, 1, 1, 1))},
		{ID: "b", Geometry: geom.NewPolygon(coords(10, 10, 10, 11, 11, 11))},
	}
	coll := Build(KindPolygons, feats, colorMap{})

	u := coll.Union
	if u.Min.X() != 0 || u.Min.Y() != 0 || u.Max.X() != 11 || u.Max.Y() != 11 {
		t.Fatalf("union bound wrong: %v", u)
	}
}

func TestBuildResolvesColorKey(t *testing.T) {
	src := colorMap{"a": "#ff0000"}
	feats := []Feature{
		{ID: "a", Geometry: geom.NewPoint(coords(1, 1)[0])},
		{ID: "unknown", Geometry: geom.NewPoint(coords(2, 2)[0])},
	}
	coll := Build(KindSites, feats, src)

	if coll.Features[0].ColorKey != "#ff0000" {
		t.Fatalf("color key not resolved: %q", coll.Features[0].ColorKey)
	}
	if coll.Features[1].ColorKey != "#808080" {
		t.Fatalf("miss should use source default: %q", coll.Features[1].ColorKey)
	}
}

func TestCoverageTokens(t *testing.T) {
	empty := Build(KindPolygons, nil, colorMap{})
	if tokens := empty.CoverageTokens(); tokens != nil {
		t.Fatalf("empty collection should have no coverage, got %v", tokens)
	}

	coll := Build(KindPolygons, []Feature{
		{ID: "a", Geometry: geom.NewPolygon(coords(46.0, -120.0, 46.0, -119.9, 46.1, -119.9))},
	}, colorMap{})

	tokens := coll.CoverageTokens()
	if len(tokens) == 0 {
		t.Fatal("expected coverage tokens")
	}
	for _, tok := range tokens {
		if len(tok) == 0 || len(tok) > 8 {
			t.Errorf("token %q outside expected length", tok)
		}
	}
}

// Package ingest loads domain features from their collaborator sources —
// GeoJSON documents, shapefiles, PostGIS tables — into the flat feature
// lists the layer package indexes. The engine core never fetches; these
// loaders sit on the data-layer side of that boundary.
package ingest

import (
	"fmt"
	"io"
	"log"

	geojson "github.com/paulmach/go.geojson"

	"github.com/godeepar/mapengine/geom"
	"github.com/godeepar/mapengine/layer"
)

// idProperties is the lookup order for a feature id among GeoJSON
// properties when the feature carries no top-level id.
var idProperties = []string{"id", "fid", "osm_id", "uid", "uuid"}

// FromGeoJSON decodes a FeatureCollection into domain features. Features
// whose geometry is unusable are skipped with a log line, not an error; a
// document that does not parse at all is.
func FromGeoJSON(r io.Reader) ([]layer.Feature, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("[FromGeoJSON] in pkg [ingest] encountered: %v", err)
	}

	fc, err := geojson.UnmarshalFeatureCollection(raw)
	if err != nil {
		return nil, fmt.Errorf("[FromGeoJSON] in pkg [ingest] encountered: %v", err)
	}

	var feats []layer.Feature
	for i, gf := range fc.Features {
		g := geom.FromGeoJSON(gf.Geometry)
		if g.Kind() == geom.KindNone {
			log.Printf("skipping feature %d: unusable geometry", i)
			continue
		}
		feats = append(feats, layer.Feature{
			ID:       featureID(gf, i),
			Geometry: g,
			Pending:  pendingFlag(gf),
		})
	}
	return feats, nil
}

func featureID(gf *geojson.Feature, index int) string {
	if gf.ID != nil {
		return fmt.Sprintf("%v", gf.ID)
	}
	for _, key := range idProperties {
		if v, ok := gf.Properties[key]; ok && v != nil {
			return fmt.Sprintf("%v", v)
		}
	}
	return fmt.Sprintf("feature-%d", index)
}

func pendingFlag(gf *geojson.Feature) bool {
	switch v := gf.Properties["pending"].(type) {
	case bool:
		return v
	case string:
		return v == "true" || v == "1"
	case float64:
		return v != 0
	}
	return false
}

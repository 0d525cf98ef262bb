package ingest

import (
	"database/sql"
	"fmt"
	"log"

	"github.com/lib/pq"
	geojson "github.com/paulmach/go.geojson"

	"github.com/godeepar/mapengine/geom"
	"github.com/godeepar/mapengine/layer"
)

// OpenPostGIS connects to a PostGIS database using the pq driver.
func OpenPostGIS(conninfo string) (*sql.DB, error) {
	db, err := sql.Open("postgres", conninfo)
	if err != nil {
		return nil, fmt.Errorf("[OpenPostGIS] in pkg [ingest] encountered: %v", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("[OpenPostGIS] in pkg [ingest] encountered: %v", err)
	}
	return db, nil
}

// FromPostGIS loads features from a table with id and geometry columns,
// decoding the geometry through ST_AsGeoJSON. Rows whose geometry does not
// decode are skipped with a log line.
func FromPostGIS(db *sql.DB, table, idColumn, geomColumn string) ([]layer.Feature, error) {
	query := fmt.Sprintf(
		"SELECT %s, ST_AsGeoJSON(%s) FROM %s WHERE %s IS NOT NULL",
		pq.QuoteIdentifier(idColumn),
		pq.QuoteIdentifier(geomColumn),
		pq.QuoteIdentifier(table),
		pq.QuoteIdentifier(geomColumn),
	)

	rows, err := db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("[FromPostGIS] in pkg [ingest] encountered: %v", err)
	}
	defer rows.Close()

	var feats []layer.Feature
	for rows.Next() {
		var id, raw string
		if err := rows.Scan(&id, &raw); err != nil {
			log.Printf("skipping row: %v", err)
			continue
		}

		gj, err := geojson.UnmarshalGeometry([]byte(raw))
		if err != nil {
			log.Printf("skipping %s: %v", id, err)
			continue
		}
		g := geom.FromGeoJSON(gj)
		if g.Kind() == geom.KindNone {
			continue
		}

		feats = append(feats, layer.Feature{ID: id, Geometry: g})
	}
	return feats, rows.Err()
}

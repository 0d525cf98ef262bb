// mapengined serves hit-test, snap and render queries over feature
// datasets loaded at startup.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/paulmach/orb"
	"gopkg.in/yaml.v2"

	"github.com/godeepar/mapengine/geom"
	"github.com/godeepar/mapengine/hittest"
	"github.com/godeepar/mapengine/ingest"
	"github.com/godeepar/mapengine/layer"
	"github.com/godeepar/mapengine/render"
	"github.com/godeepar/mapengine/style"
)

type Config struct {
	Listen   string `yaml:"listen"`
	Styles   string `yaml:"styles"`
	Datasets struct {
		Fields string `yaml:"fields"`
		Lines  string `yaml:"lines"`
		Sites  string `yaml:"sites"`
		Drains string `yaml:"drains"`
	} `yaml:"datasets"`
}

type single struct {
	mu     sync.Mutex
	values map[string]int64
}

func (s *single) Incr(key string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key]++
	return s.values[key]
}

var counter = single{values: make(map[string]int64)}

type server struct {
	renderer *render.Renderer
	styles   *style.Map
	polys    *layer.Collection
	lines    *layer.Collection
	sites    *layer.Collection
	drains   *layer.Collection
}

func main() {
	configPath := flag.String("config", "mapengined.yaml", "config file")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatal(err)
	}

	styles := &style.Map{}
	if cfg.Styles != "" {
		f, err := os.Open(cfg.Styles)
		if err != nil {
			log.Fatal(err)
		}
		styles, err = style.LoadYAML(f)
		f.Close()
		if err != nil {
			log.Fatal(err)
		}
	}

	srv := &server{renderer: render.New(nil), styles: styles}
	srv.polys = loadCollection(layer.KindPolygons, cfg.Datasets.Fields, styles)
	srv.lines = loadCollection(layer.KindLines, cfg.Datasets.Lines, styles)
	srv.sites = loadCollection(layer.KindSites, cfg.Datasets.Sites, styles)
	srv.drains = loadCollection(layer.KindDrains, cfg.Datasets.Drains, styles)

	m := http.NewServeMux()
	m.HandleFunc("/hit", srv.hitHandler)
	m.HandleFunc("/snap", srv.snapHandler)
	m.HandleFunc("/render", srv.renderHandler)
	m.HandleFunc("/styles", srv.stylesHandler)

	listen := cfg.Listen
	if listen == "" {
		listen = ":8000"
	}
	log.Println("listening on " + listen)
	log.Fatal(http.ListenAndServe(listen, m))
}

func loadConfig(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func loadCollection(kind layer.Kind, path string, src layer.ColorSource) *layer.Collection {
	if path == "" {
		return layer.Build(kind, nil, src)
	}

	f, err := os.Open(path)
	if err != nil {
		log.Printf("no %s dataset: %v", kind, err)
		return layer.Build(kind, nil, src)
	}
	defer f.Close()

	feats, err := ingest.FromGeoJSON(f)
	if err != nil {
		log.Printf("could not load %s dataset: %v", kind, err)
		return layer.Build(kind, nil, src)
	}

	coll := layer.Build(kind, feats, src)
	log.Println("loaded", len(coll.Features), kind.String(), "covering", coll.CoverageTokens())
	return coll
}

func floatParam(r *http.Request, name string) (float64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, fmt.Errorf("missing parameter %q", name)
	}
	return strconv.ParseFloat(raw, 64)
}

// hitHandler answers "what feature is at y,x". x and y are lon/lat degrees;
// span is the optional visible latitude span for zoom-scaled tolerance.
func (s *server) hitHandler(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	x, err := floatParam(r, "x")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	y, err := floatParam(r, "y")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	span, _ := floatParam(r, "span")

	hit := hittest.HitTest(geom.Coordinate{Lat: y, Lon: x}, s.polys, s.lines, s.sites, s.drains, span)

	if hit == nil {
		writeJSON(w, map[string]any{"found": false})
	} else {
		writeJSON(w, map[string]any{
			"found":   true,
			"id":      hit.Feature.ID,
			"kind":    hit.Kind.String(),
			"meters":  hit.DistanceMeters,
			"pending": hit.Feature.Pending,
		})
	}

	counter.Incr("hit")
	log.Println("hit query ms", int64(time.Since(start).Seconds()*1e3))
}

func (s *server) snapHandler(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	x, err := floatParam(r, "x")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	y, err := floatParam(r, "y")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	snap := hittest.SnapToLine(geom.Coordinate{Lat: y, Lon: x}, s.lines)

	if snap == nil {
		writeJSON(w, map[string]any{"found": false})
	} else {
		writeJSON(w, map[string]any{
			"found":  true,
			"id":     snap.LineID,
			"lat":    snap.Coordinate.Lat,
			"lon":    snap.Coordinate.Lon,
			"meters": snap.DistanceMeters,
		})
	}

	counter.Incr("snap")
	log.Println("snap query ms", int64(time.Since(start).Seconds()*1e3))
}

// renderHandler emits the draw ops for a viewport, mostly for debugging and
// headless rendering.
func (s *server) renderHandler(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	minx, err1 := floatParam(r, "minx")
	miny, err2 := floatParam(r, "miny")
	maxx, err3 := floatParam(r, "maxx")
	maxy, err4 := floatParam(r, "maxy")
	for _, err := range []error{err1, err2, err3, err4} {
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}
	scale, err := floatParam(r, "scale")
	if err != nil {
		scale = 1
	}

	vp := render.Viewport{
		Bound: orb.Bound{Min: orb.Point{minx, miny}, Max: orb.Point{maxx, maxy}},
		Scale: scale,
	}

	var ops []render.Op
	for _, coll := range []*layer.Collection{s.polys, s.lines, s.sites, s.drains} {
		ops = append(ops, s.renderer.Draw(coll, vp)...)
	}
	writeJSON(w, map[string]any{"count": len(ops), "ops": encodeOps(ops)})

	counter.Incr("render")
	log.Println("render pass ops", len(ops), "ms", int64(time.Since(start).Seconds()*1e3))
}

func encodeOps(ops []render.Op) []map[string]any {
	out := make([]map[string]any, 0, len(ops))
	for _, op := range ops {
		switch v := op.(type) {
		case render.FillPath:
			out = append(out, map[string]any{"type": "fill", "id": v.FeatureID, "path": v.Path, "color": v.Color})
		case render.StrokePath:
			out = append(out, map[string]any{"type": "stroke", "id": v.FeatureID, "path": v.Path, "color": v.Color, "width": v.Width})
		case render.Circle:
			out = append(out, map[string]any{"type": "circle", "id": v.FeatureID, "center": v.Center, "radius": v.Radius, "color": v.Color})
		case render.Square:
			out = append(out, map[string]any{"type": "square", "id": v.FeatureID, "center": v.Center, "size": v.Size, "color": v.Color})
		case render.Cross:
			out = append(out, map[string]any{"type": "cross", "id": v.FeatureID, "center": v.Center, "size": v.Size, "color": v.Color, "width": v.Width})
		}
	}
	return out
}

func (s *server) stylesHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.styles)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Println(err)
	}
}

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat is returned for map files with an unknown extension
var ErrUnsupportedFormat = errors.New("unsupported map format")

// mapFile is the on-disk shape of a road map in JSON and YAML
type mapFile struct {
	Intersections map[int][]float64 `json:"intersections" yaml:"intersections"`
	Roads         map[int][]int     `json:"roads" yaml:"roads"`
}

// OpenRoadMap returns a built-in map by name ("map10", "map40") or loads a file
func OpenRoadMap(source string) (*RoadMap, error) {
	switch source {
	case "map10":
		return Map10(), nil
	case "map40", "":
		return Map40(), nil
	}
	return LoadRoadMap(source)
}

// LoadRoadMap reads a road map from a .json, .yaml/.yml or .geojson file
func LoadRoadMap(filename string) (*RoadMap, error) {
	log.Printf("📂 Loading road map from %s...\n", filename)

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var m *RoadMap
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".json":
		m, err = decodeMapFile(data, json.Unmarshal)
	case ".yaml", ".yml":
		m, err = decodeMapFile(data, yaml.Unmarshal)
	case ".geojson":
		m, err = decodeGeoJSONMap(data)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", filepath.Base(filename), err)
	}

	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("invalid road map %s: %w", filepath.Base(filename), err)
	}

	log.Printf("   ✅ Road map loaded: %d intersections, %d roads\n", len(m.Intersections), m.RoadCount())
	return m, nil
}

// SaveRoadMap writes the road map in the format given by the file extension
func SaveRoadMap(m *RoadMap, filename string) error {
	log.Printf("💾 Saving road map to %s...\n", filename)

	var (
		data []byte
		err  error
	)
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".json":
		data, err = json.MarshalIndent(encodeMapFile(m), "", "  ")
	case ".yaml", ".yml":
		data, err = yaml.Marshal(encodeMapFile(m))
	case ".geojson":
		data, err = json.MarshalIndent(RoadMapFeatureCollection(m), "", "  ")
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return fmt.Errorf("failed to marshal road map: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	log.Printf("   ✅ Road map saved (%d bytes)\n", len(data))
	return nil
}

func decodeMapFile(data []byte, unmarshal func([]byte, any) error) (*RoadMap, error) {
	var f mapFile
	if err := unmarshal(data, &f); err != nil {
		return nil, err
	}

	m := NewRoadMap(nil, nil)
	for id, coord := range f.Intersections {
		if len(coord) != 2 {
			return nil, fmt.Errorf("intersection %d: want [x, y], got %d values", id, len(coord))
		}
		m.Intersections[id] = Point{X: coord[0], Y: coord[1]}
	}
	for id, neighbors := range f.Roads {
		m.Adjacency[id] = append([]int(nil), neighbors...)
	}
	return m, nil
}

func encodeMapFile(m *RoadMap) mapFile {
	f := mapFile{
		Intersections: make(map[int][]float64, len(m.Intersections)),
		Roads:         make(map[int][]int, len(m.Adjacency)),
	}
	for id, p := range m.Intersections {
		f.Intersections[id] = []float64{p.X, p.Y}
	}
	for id, neighbors := range m.Adjacency {
		f.Roads[id] = neighbors
	}
	return f
}

// decodeGeoJSONMap builds a road map from Point features carrying an "id"
// property and LineString features carrying "from" and "to". Roads run both
// ways unless the feature has "oneway": true.
func decodeGeoJSONMap(data []byte) (*RoadMap, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, err
	}

	m := NewRoadMap(nil, nil)
	for i, feature := range fc.Features {
		switch geometry := feature.Geometry.(type) {
		case nil:
			log.Printf("⚠️  Skipping feature %d without geometry\n", i)

		case orb.Point:
			id, ok, err := intProperty(feature.Properties, "id")
			if err != nil {
				return nil, fmt.Errorf("feature %d: %w", i, err)
			}
			if !ok {
				return nil, fmt.Errorf("feature %d: point without id", i)
			}
			m.Intersections[id] = pointFromOrb(geometry)

		case orb.LineString:
			from, okFrom, err := intProperty(feature.Properties, "from")
			if err != nil {
				return nil, fmt.Errorf("feature %d: %w", i, err)
			}
			to, okTo, err := intProperty(feature.Properties, "to")
			if err != nil {
				return nil, fmt.Errorf("feature %d: %w", i, err)
			}
			if !okFrom || !okTo {
				return nil, fmt.Errorf("feature %d: road without from/to", i)
			}
			oneway, err := boolProperty(feature.Properties, "oneway")
			if err != nil {
				return nil, fmt.Errorf("feature %d: %w", i, err)
			}
			addRoad(m, from, to)
			if !oneway {
				addRoad(m, to, from)
			}

		default:
			log.Printf("⚠️  Skipping feature %d with geometry %s\n", i, feature.Geometry.GeoJSONType())
		}
	}

	return m, nil
}

// intProperty reads a non-negative integer id. Decoded JSON numbers are
// float64, so fractional values are rejected rather than truncated.
func intProperty(props geojson.Properties, key string) (int, bool, error) {
	raw, ok := props[key]
	if !ok || raw == nil {
		return 0, false, nil
	}

	var f float64
	switch v := raw.(type) {
	case float64:
		f = v
	case int:
		f = float64(v)
	default:
		return 0, false, fmt.Errorf("%s must be an integer, got %v (%T)", key, raw, raw)
	}
	if f != math.Trunc(f) || f < 0 || f > 1<<53 {
		return 0, false, fmt.Errorf("%s must be a non-negative integer, got %v", key, raw)
	}
	return int(f), true, nil
}

// boolProperty reads an optional flag, false when absent
func boolProperty(props geojson.Properties, key string) (bool, error) {
	raw, ok := props[key]
	if !ok || raw == nil {
		return false, nil
	}
	b, ok := raw.(bool)
	if !ok {
		return false, fmt.Errorf("%s must be a bool, got %v (%T)", key, raw, raw)
	}
	return b, nil
}

func addRoad(m *RoadMap, from, to int) {
	for _, existing := range m.Adjacency[from] {
		if existing == to {
			return
		}
	}
	m.Adjacency[from] = append(m.Adjacency[from], to)
}

// RoadMapFeatureCollection exports intersections as points and roads as
// line strings. A road listed in both directions becomes one feature.
func RoadMapFeatureCollection(m *RoadMap) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()

	for _, id := range m.IntersectionIDs() {
		f := geojson.NewFeature(m.Intersections[id].Orb())
		f.Properties["id"] = id
		fc.Append(f)
	}

	type edgeKey struct{ a, b int }
	written := make(map[edgeKey]bool)

	for _, from := range sortedKeys(m.Adjacency) {
		for _, to := range m.Adjacency[from] {
			if written[edgeKey{from, to}] {
				continue
			}
			p1, ok1 := m.Intersections[from]
			p2, ok2 := m.Intersections[to]
			if !ok1 || !ok2 {
				continue
			}

			f := geojson.NewFeature(orb.LineString{p1.Orb(), p2.Orb()})
			f.Properties["from"] = from
			f.Properties["to"] = to
			f.Properties["oneway"] = !hasRoad(m, to, from)
			fc.Append(f)

			written[edgeKey{from, to}] = true
			written[edgeKey{to, from}] = true
		}
	}

	return fc
}

func hasRoad(m *RoadMap, from, to int) bool {
	for _, id := range m.Adjacency[from] {
		if id == to {
			return true
		}
	}
	return false
}

// RouteFeatureCollection exports a search result as GeoJSON: the route as a
// line string plus start and goal points. An unfound route exports no features.
func RouteFeatureCollection(network RoadNetwork, result Result) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	if !result.Found || len(result.Path) == 0 {
		return fc
	}

	line := make(orb.LineString, 0, len(result.Path))
	for _, id := range result.Path {
		if p, ok := network.Intersection(id); ok {
			line = append(line, p.Orb())
		}
	}

	route := geojson.NewFeature(line)
	route.Properties["path"] = result.Path
	route.Properties["cost"] = result.Cost
	route.Properties["expanded"] = result.Expanded
	fc.Append(route)

	endpoints := []struct {
		role string
		id   int
	}{
		{"start", result.Path[0]},
		{"goal", result.Path[len(result.Path)-1]},
	}
	for _, e := range endpoints {
		p, ok := network.Intersection(e.id)
		if !ok {
			continue
		}
		f := geojson.NewFeature(p.Orb())
		f.Properties["role"] = e.role
		f.Properties["id"] = e.id
		fc.Append(f)
	}

	return fc
}

package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveLoadRoadMap_RoundTrip(t *testing.T) {
	for _, ext := range []string{".json", ".yaml", ".yml", ".geojson"} {
		t.Run(ext, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "map40"+ext)
			require.NoError(t, SaveRoadMap(Map40(), path))

			loaded, err := LoadRoadMap(path)
			require.NoError(t, err)

			want := Map40()
			assert.Equal(t, want.Intersections, loaded.Intersections)
			for _, id := range want.IntersectionIDs() {
				assert.ElementsMatch(t, want.Roads(id), loaded.Roads(id), "roads of %d", id)
			}

			p, err := NewPathPlanner(loaded, WithStart(5), WithGoal(34))
			require.NoError(t, err)
			path40, ok := p.Path()
			require.True(t, ok)
			assert.Equal(t, []int{5, 16, 37, 12, 34}, path40)
		})
	}
}

func TestLoadRoadMap_YAML(t *testing.T) {
	content := `
intersections:
  0: [0, 0]
  1: [3, 4]
  2: [6, 0]
roads:
  0: [1]
  1: [2]
`
	path := filepath.Join(t.TempDir(), "roads.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	m, err := LoadRoadMap(path)
	require.NoError(t, err)
	assert.Equal(t, Point{3, 4}, m.Intersections[1])
	assert.Equal(t, []int{1}, m.Roads(0))
	assert.Empty(t, m.Roads(2))
}

func TestLoadRoadMap_Errors(t *testing.T) {
	dir := t.TempDir()

	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
		return path
	}

	_, err := LoadRoadMap(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)

	_, err = LoadRoadMap(write("roads.csv", "0,0"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = LoadRoadMap(write("bad.json", `{"intersections": {"0": [1]}}`))
	assert.ErrorContains(t, err, "want [x, y]")

	_, err = LoadRoadMap(write("dangling.json", `{"intersections": {"0": [0, 0]}, "roads": {"0": [3]}}`))
	assert.ErrorIs(t, err, ErrUnknownIntersection)

	_, err = LoadRoadMap(write("broken.yaml", "intersections: ["))
	assert.Error(t, err)

	assert.ErrorIs(t, SaveRoadMap(Map10(), filepath.Join(dir, "out.txt")), ErrUnsupportedFormat)
}

func TestLoadRoadMap_GeoJSONOneWay(t *testing.T) {
	fc := geojson.NewFeatureCollection()
	for id, p := range []orb.Point{{0, 0}, {1, 0}, {2, 0}} {
		f := geojson.NewFeature(p)
		f.Properties["id"] = id
		fc.Append(f)
	}

	twoWay := geojson.NewFeature(orb.LineString{{0, 0}, {1, 0}})
	twoWay.Properties["from"] = 0
	twoWay.Properties["to"] = 1
	fc.Append(twoWay)

	oneWay := geojson.NewFeature(orb.LineString{{1, 0}, {2, 0}})
	oneWay.Properties["from"] = 1
	oneWay.Properties["to"] = 2
	oneWay.Properties["oneway"] = true
	fc.Append(oneWay)

	fc.Append(geojson.NewFeature(orb.Polygon{{{0, 0}, {1, 0}, {1, 1}, {0, 0}}}))

	data, err := json.Marshal(fc)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "roads.geojson")
	require.NoError(t, os.WriteFile(path, data, 0644))

	m, err := LoadRoadMap(path)
	require.NoError(t, err)
	assert.Len(t, m.Intersections, 3)
	assert.Equal(t, []int{1}, m.Roads(0))
	assert.ElementsMatch(t, []int{0, 2}, m.Roads(1))
	assert.Empty(t, m.Roads(2))
}

func TestLoadRoadMap_GeoJSONBadProperties(t *testing.T) {
	point := func(props geojson.Properties) *geojson.Feature {
		f := geojson.NewFeature(orb.Point{0, 0})
		f.Properties = props
		return f
	}
	road := func(props geojson.Properties) *geojson.Feature {
		f := geojson.NewFeature(orb.LineString{{0, 0}, {1, 0}})
		f.Properties = props
		return f
	}

	tests := []struct {
		name    string
		feature *geojson.Feature
		wantErr string
	}{
		{"point without id", point(geojson.Properties{}), "point without id"},
		{"string id", point(geojson.Properties{"id": "3"}), "id must be an integer"},
		{"fractional id", point(geojson.Properties{"id": 1.9}), "id must be a non-negative integer"},
		{"negative id", point(geojson.Properties{"id": -2}), "id must be a non-negative integer"},
		{"road without to", road(geojson.Properties{"from": 0}), "road without from/to"},
		{"string from", road(geojson.Properties{"from": "0", "to": 1}), "from must be an integer"},
		{"string oneway", road(geojson.Properties{"from": 0, "to": 1, "oneway": "yes"}), "oneway must be a bool"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fc := geojson.NewFeatureCollection()
			fc.Append(tt.feature)

			data, err := json.Marshal(fc)
			require.NoError(t, err)
			path := filepath.Join(t.TempDir(), "roads.geojson")
			require.NoError(t, os.WriteFile(path, data, 0644))

			var m *RoadMap
			require.NotPanics(t, func() { m, err = LoadRoadMap(path) })
			assert.Nil(t, m)
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestRoadMapFeatureCollection_OneWayFlag(t *testing.T) {
	m := NewRoadMap(
		map[int]Point{0: {0, 0}, 1: {1, 0}, 2: {2, 0}},
		map[int][]int{0: {1}, 1: {0, 2}},
	)

	fc := RoadMapFeatureCollection(m)
	require.Len(t, fc.Features, 5)

	roads := fc.Features[3:]
	assert.Equal(t, 0, roads[0].Properties.MustInt("from"))
	assert.Equal(t, 1, roads[0].Properties.MustInt("to"))
	assert.False(t, roads[0].Properties.MustBool("oneway"))
	assert.Equal(t, 1, roads[1].Properties.MustInt("from"))
	assert.Equal(t, 2, roads[1].Properties.MustInt("to"))
	assert.True(t, roads[1].Properties.MustBool("oneway"))
}

func TestRouteFeatureCollection(t *testing.T) {
	m := Map40()
	p, err := NewPathPlanner(m, WithStart(5), WithGoal(34))
	require.NoError(t, err)
	result, _ := p.Result()

	fc := RouteFeatureCollection(m, result)
	require.Len(t, fc.Features, 3)

	line, ok := fc.Features[0].Geometry.(orb.LineString)
	require.True(t, ok)
	require.Len(t, line, 5)
	assert.Equal(t, m.Intersections[5].Orb(), line[0])
	assert.Equal(t, m.Intersections[34].Orb(), line[4])
	assert.InDelta(t, result.Cost, fc.Features[0].Properties.MustFloat64("cost"), 1e-12)

	assert.Equal(t, "start", fc.Features[1].Properties.MustString("role"))
	assert.Equal(t, 5, fc.Features[1].Properties.MustInt("id"))
	assert.Equal(t, "goal", fc.Features[2].Properties.MustString("role"))
	assert.Equal(t, 34, fc.Features[2].Properties.MustInt("id"))

	none := RouteFeatureCollection(m, Result{})
	assert.Empty(t, none.Features)
}

func TestOpenRoadMap_BuiltIns(t *testing.T) {
	m, err := OpenRoadMap("map10")
	require.NoError(t, err)
	assert.Len(t, m.Intersections, 10)

	m, err = OpenRoadMap("map40")
	require.NoError(t, err)
	assert.Len(t, m.Intersections, 40)

	m, err = OpenRoadMap("")
	require.NoError(t, err)
	assert.Len(t, m.Intersections, 40)
}

package main

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// Point is an intersection coordinate in meters
type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Distance calculates Euclidean distance between two points
func (p Point) Distance(other Point) float64 {
	return planar.Distance(p.Orb(), other.Orb())
}

// Orb converts the point to its orb representation
func (p Point) Orb() orb.Point {
	return orb.Point{p.X, p.Y}
}

func pointFromOrb(p orb.Point) Point {
	return Point{X: p.X(), Y: p.Y()}
}

// BoundingBox is an axis-aligned query region
type BoundingBox struct {
	MinX float64 `json:"minX"`
	MinY float64 `json:"minY"`
	MaxX float64 `json:"maxX"`
	MaxY float64 `json:"maxY"`
}

// Contains reports whether p lies inside the box, edges included
func (b BoundingBox) Contains(p Point) bool {
	return b.Bound().Contains(p.Orb())
}

// Bound converts the box to an orb.Bound
func (b BoundingBox) Bound() orb.Bound {
	return orb.Bound{Min: orb.Point{b.MinX, b.MinY}, Max: orb.Point{b.MaxX, b.MaxY}}
}

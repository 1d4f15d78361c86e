// Package geometry provides basic geometric types used throughout the application.
package geometry

import (
	"math"
)

// Point2D represents a 2D point with floating-point coordinates.
type Point2D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Distance returns the Euclidean distance to another point.
func (p Point2D) Distance(other Point2D) float64 {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// PointInt represents a 2D point with integer coordinates.
type PointInt struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// ToFloat converts to Point2D.
func (p PointInt) ToFloat() Point2D {
	return Point2D{X: float64(p.X), Y: float64(p.Y)}
}

// RectInt represents an axis-aligned rectangle with integer coordinates.
// Used for glyph bounding boxes in captured frames.
type RectInt struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Center returns the center point of the rectangle.
func (r RectInt) Center() Point2D {
	return Point2D{X: float64(r.X) + float64(r.Width)/2, Y: float64(r.Y) + float64(r.Height)/2}
}

// Intersects returns true if this rectangle intersects with another.
func (r RectInt) Intersects(other RectInt) bool {
	return r.X < other.X+other.Width && r.X+r.Width > other.X &&
		r.Y < other.Y+other.Height && r.Y+r.Height > other.Y
}

// Segment represents a detected line segment between two endpoints.
type Segment struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

// AngleDegrees returns the segment angle in degrees in (-180, 180],
// computed as atan2(dy, dx) with image coordinates (y grows downward).
func (s Segment) AngleDegrees() float64 {
	return math.Atan2(float64(s.Y2-s.Y1), float64(s.X2-s.X1)) * 180 / math.Pi
}

// Length returns the Euclidean length of the segment.
func (s Segment) Length() float64 {
	dx := float64(s.X2 - s.X1)
	dy := float64(s.Y2 - s.Y1)
	return math.Sqrt(dx*dx + dy*dy)
}

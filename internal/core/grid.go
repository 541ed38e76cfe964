package core

import "fmt"

// Point is a single grid cell.
type Point struct {
	X, Y int
}

// Add returns the component-wise sum of two points.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Direction is a heading on the grid.
type Direction int

const (
	DirRight Direction = iota
	DirDown
	DirLeft
	DirUp
)

// Valid reports whether d is one of the four headings.
func (d Direction) Valid() bool {
	return d >= DirRight && d <= DirUp
}

// Vector returns the unit step for the direction. Y grows downward.
func (d Direction) Vector() Point {
	switch d {
	case DirUp:
		return Point{X: 0, Y: -1}
	case DirDown:
		return Point{X: 0, Y: 1}
	case DirLeft:
		return Point{X: -1, Y: 0}
	case DirRight:
		return Point{X: 1, Y: 0}
	default:
		return Point{}
	}
}

// Opposite returns the reverse heading.
func (d Direction) Opposite() Direction {
	switch d {
	case DirUp:
		return DirDown
	case DirDown:
		return DirUp
	case DirLeft:
		return DirRight
	case DirRight:
		return DirLeft
	default:
		return d
	}
}

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "unknown"
	}
}

// Grid is the immutable playing field, width x height cells.
// Cells outside [0,Width)x[0,Height) are walls.
type Grid struct {
	Width  int
	Height int
}

// NewGrid validates the dimensions and returns a grid.
func NewGrid(width, height int) (Grid, error) {
	if width <= 0 || height <= 0 {
		return Grid{}, fmt.Errorf("core: grid dimensions must be positive, got %dx%d", width, height)
	}
	return Grid{Width: width, Height: height}, nil
}

// Bounds returns the grid as a rectangle anchored at the origin.
func (g Grid) Bounds() Rect {
	return NewRect(0, 0, g.Width, g.Height)
}

// Contains reports whether p lies inside the walls.
func (g Grid) Contains(p Point) bool {
	return g.Bounds().Contains(p.X, p.Y)
}

// Wrap folds p back onto the grid as if opposite edges were joined.
func (g Grid) Wrap(p Point) Point {
	return Point{X: Mod(p.X, g.Width), Y: Mod(p.Y, g.Height)}
}

// Cells returns the number of cells in the grid.
func (g Grid) Cells() int {
	return g.Width * g.Height
}

// Center returns the middle cell.
func (g Grid) Center() Point {
	x, y := g.Bounds().Center()
	return Point{X: x, Y: y}
}

// Each calls fn for every cell in row-major order.
func (g Grid) Each(fn func(Point)) {
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			fn(Point{X: x, Y: y})
		}
	}
}

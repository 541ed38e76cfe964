package core

import "testing"

func TestDirectionOpposite(t *testing.T) {
	tests := []struct {
		dir      Direction
		expected Direction
	}{
		{DirUp, DirDown},
		{DirDown, DirUp},
		{DirLeft, DirRight},
		{DirRight, DirLeft},
	}

	for _, tc := range tests {
		t.Run(tc.dir.String(), func(t *testing.T) {
			if got := tc.dir.Opposite(); got != tc.expected {
				t.Errorf("Opposite() = %v, expected %v", got, tc.expected)
			}
			sum := tc.dir.Vector().Add(tc.dir.Opposite().Vector())
			if sum != (Point{}) {
				t.Errorf("Vector() + Opposite().Vector() = %v, expected (0,0)", sum)
			}
		})
	}
}

func TestDirectionValid(t *testing.T) {
	if !DirUp.Valid() || !DirRight.Valid() {
		t.Error("cardinal directions should be valid")
	}
	if Direction(7).Valid() || Direction(-1).Valid() {
		t.Error("out-of-range directions should be invalid")
	}
	if Direction(7).Vector() != (Point{}) {
		t.Error("invalid direction should have a zero vector")
	}
}

func TestNewGrid(t *testing.T) {
	if _, err := NewGrid(0, 10); err == nil {
		t.Error("NewGrid(0, 10) should fail")
	}
	if _, err := NewGrid(10, -1); err == nil {
		t.Error("NewGrid(10, -1) should fail")
	}

	g, err := NewGrid(20, 15)
	if err != nil {
		t.Fatalf("NewGrid(20, 15) error: %v", err)
	}
	if g.Cells() != 300 {
		t.Errorf("Cells() = %d, expected 300", g.Cells())
	}
	if g.Center() != (Point{X: 10, Y: 7}) {
		t.Errorf("Center() = %v, expected (10,7)", g.Center())
	}
}

func TestGridContainsAndWrap(t *testing.T) {
	g := Grid{Width: 10, Height: 5}

	tests := []struct {
		name    string
		p       Point
		inside  bool
		wrapped Point
	}{
		{"origin", Point{0, 0}, true, Point{0, 0}},
		{"far corner", Point{9, 4}, true, Point{9, 4}},
		{"past right edge", Point{10, 2}, false, Point{0, 2}},
		{"past left edge", Point{-1, 2}, false, Point{9, 2}},
		{"past top edge", Point{3, -1}, false, Point{3, 4}},
		{"past bottom edge", Point{3, 5}, false, Point{3, 0}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := g.Contains(tc.p); got != tc.inside {
				t.Errorf("Contains(%v) = %v, expected %v", tc.p, got, tc.inside)
			}
			if got := g.Wrap(tc.p); got != tc.wrapped {
				t.Errorf("Wrap(%v) = %v, expected %v", tc.p, got, tc.wrapped)
			}
		})
	}
}

func TestGridEach(t *testing.T) {
	g := Grid{Width: 3, Height: 2}
	var visited []Point
	g.Each(func(p Point) { visited = append(visited, p) })

	if len(visited) != 6 {
		t.Fatalf("Each visited %d cells, expected 6", len(visited))
	}
	if visited[0] != (Point{0, 0}) || visited[5] != (Point{2, 1}) {
		t.Errorf("Each order = %v, expected row-major", visited)
	}
}

func TestActionDirection(t *testing.T) {
	tests := []struct {
		action Action
		dir    Direction
		ok     bool
	}{
		{ActionUp, DirUp, true},
		{ActionDown, DirDown, true},
		{ActionLeft, DirLeft, true},
		{ActionRight, DirRight, true},
		{ActionPause, 0, false},
	}

	for _, tc := range tests {
		dir, ok := tc.action.Direction()
		if ok != tc.ok || (ok && dir != tc.dir) {
			t.Errorf("%v.Direction() = (%v, %v), expected (%v, %v)", tc.action, dir, ok, tc.dir, tc.ok)
		}
	}
}

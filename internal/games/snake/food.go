package snake

import (
	"errors"
	"math/rand"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// ErrNoFreeCell is returned when an item must be placed but every cell is taken.
var ErrNoFreeCell = errors.New("snake: no free cell")

// Food is the single edible item on the grid.
type Food struct {
	Position core.Point
	Value    int
}

// occupancy is the set of cells that spawners must avoid.
type occupancy map[core.Point]struct{}

func (o occupancy) add(p core.Point) {
	o[p] = struct{}{}
}

func (o occupancy) has(p core.Point) bool {
	_, ok := o[p]
	return ok
}

// freeCell picks a uniformly random cell not in taken.
func freeCell(grid core.Grid, taken occupancy, rng *rand.Rand) (core.Point, error) {
	free := make([]core.Point, 0, max(grid.Cells()-len(taken), 0))
	grid.Each(func(p core.Point) {
		if !taken.has(p) {
			free = append(free, p)
		}
	})
	if len(free) == 0 {
		return core.Point{}, ErrNoFreeCell
	}
	return free[rng.Intn(len(free))], nil
}

// FoodSpawner keeps exactly one food item on the grid.
type FoodSpawner struct {
	grid  core.Grid
	value int
	rng   *rand.Rand
	food  Food
	live  bool
}

// NewFoodSpawner creates a spawner with no food placed yet.
func NewFoodSpawner(grid core.Grid, value int, rng *rand.Rand) *FoodSpawner {
	return &FoodSpawner{grid: grid, value: value, rng: rng}
}

// Spawn places the food on a random cell outside taken.
// On ErrNoFreeCell the spawner is left without food.
func (f *FoodSpawner) Spawn(taken occupancy) error {
	p, err := freeCell(f.grid, taken, f.rng)
	if err != nil {
		f.live = false
		return err
	}
	f.Place(p)
	return nil
}

// Place puts the food at p.
func (f *FoodSpawner) Place(p core.Point) {
	f.food = Food{Position: p, Value: f.value}
	f.live = true
}

// Consume removes the food and returns it.
func (f *FoodSpawner) Consume() Food {
	f.live = false
	return f.food
}

// Food returns the live food item.
func (f *FoodSpawner) Food() (Food, bool) {
	return f.food, f.live
}

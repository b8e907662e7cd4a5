package patterns

import "github.com/vovakirdan/framelife/internal/core"

func cells(xy ...int) []core.Point {
	pts := make([]core.Point, 0, len(xy)/2)
	for i := 0; i+1 < len(xy); i += 2 {
		pts = append(pts, core.P(xy[i], xy[i+1]))
	}
	return pts
}

func init() {
	// Still lifes
	Register(Pattern{Name: "block", Title: "Block", Cells: cells(
		0, 0, 1, 0,
		0, 1, 1, 1,
	)})
	Register(Pattern{Name: "beehive", Title: "Beehive", Cells: cells(
		1, 0, 2, 0,
		0, 1, 3, 1,
		1, 2, 2, 2,
	)})
	Register(Pattern{Name: "loaf", Title: "Loaf", Cells: cells(
		1, 0, 2, 0,
		0, 1, 3, 1,
		1, 2, 3, 2,
		2, 3,
	)})
	Register(Pattern{Name: "boat", Title: "Boat", Cells: cells(
		0, 0, 1, 0,
		0, 1, 2, 1,
		1, 2,
	)})
	Register(Pattern{Name: "tub", Title: "Tub", Cells: cells(
		1, 0,
		0, 1, 2, 1,
		1, 2,
	)})

	// Oscillators
	Register(Pattern{Name: "blinker", Title: "Blinker", Cells: cells(
		0, 0, 1, 0, 2, 0,
	)})
	Register(Pattern{Name: "toad", Title: "Toad", Cells: cells(
		1, 0, 2, 0, 3, 0,
		0, 1, 1, 1, 2, 1,
	)})
	Register(Pattern{Name: "beacon", Title: "Beacon", Cells: cells(
		0, 0, 1, 0,
		0, 1,
		3, 2,
		2, 3, 3, 3,
	)})
	Register(Pattern{Name: "pulsar", Title: "Pulsar", Cells: cells(
		2, 0, 3, 0, 4, 0, 8, 0, 9, 0, 10, 0,
		0, 2, 5, 2, 7, 2, 12, 2,
		0, 3, 5, 3, 7, 3, 12, 3,
		0, 4, 5, 4, 7, 4, 12, 4,
		2, 5, 3, 5, 4, 5, 8, 5, 9, 5, 10, 5,
		2, 7, 3, 7, 4, 7, 8, 7, 9, 7, 10, 7,
		0, 8, 5, 8, 7, 8, 12, 8,
		0, 9, 5, 9, 7, 9, 12, 9,
		0, 10, 5, 10, 7, 10, 12, 10,
		2, 12, 3, 12, 4, 12, 8, 12, 9, 12, 10, 12,
	)})
	Register(Pattern{Name: "pentadecathlon", Title: "Pentadecathlon", Cells: cells(
		0, 0, 1, 0, 3, 0, 4, 0,
		0, 2, 1, 2, 3, 2, 4, 2,
		1, 3, 3, 3,
		1, 4, 3, 4,
		0, 5, 1, 5, 3, 5, 4, 5,
		0, 7, 1, 7, 3, 7, 4, 7,
	)})

	// Spaceships
	Register(Pattern{Name: "glider", Title: "Glider", Cells: cells(
		1, 0,
		2, 1,
		0, 2, 1, 2, 2, 2,
	)})
	Register(Pattern{Name: "lwss", Title: "Lightweight spaceship", Cells: cells(
		1, 0, 4, 0,
		0, 1,
		0, 2, 4, 2,
		0, 3, 1, 3, 2, 3, 3, 3,
	)})
	Register(Pattern{Name: "mwss", Title: "Middleweight spaceship", Cells: cells(
		1, 0, 2, 0, 3, 0, 4, 0, 5, 0,
		0, 1, 5, 1,
		0, 2, 5, 2,
		0, 3, 1, 3, 2, 3, 3, 3, 4, 3,
	)})
	Register(Pattern{Name: "hwss", Title: "Heavyweight spaceship", Cells: cells(
		1, 0, 2, 0, 3, 0, 4, 0, 5, 0, 6, 0,
		0, 1, 6, 1,
		0, 2, 6, 2,
		0, 3, 1, 3, 2, 3, 3, 3, 4, 3, 5, 3,
	)})
}

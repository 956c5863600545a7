// Package shotzone buckets shot chart locations into a square grid over the
// half court and reports shooting percentage per cell.
package shotzone

import (
	"fmt"
	"math"

	"statline/nba"
)

// Court extent in shot chart units (tenths of a foot, hoop at the origin).
const (
	MinX = -250.0
	MaxX = 250.0
	MinY = -50.0
	MaxY = 425.0

	// Shots at or beyond this depth cannot be drawn on a half court.
	maxDrawableY = 425.1

	DefaultGrid = 30
)

type Cell struct {
	Col      int     `json:"col"`
	Row      int     `json:"row"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Attempts int     `json:"attempts"`
	Made     int     `json:"made"`
	Pct      float64 `json:"pct"`
}

type Chart struct {
	Grid     int    `json:"grid"`
	Attempts int    `json:"attempts"`
	Made     int    `json:"made"`
	Skipped  int    `json:"skipped"`
	Cells    []Cell `json:"cells"`
}

// Compute bins every drawable shot in the table. Only cells with at least one
// attempt are returned, ordered by row then column.
func Compute(shots *nba.Table, grid int) (*Chart, error) {
	if grid <= 0 {
		return nil, fmt.Errorf("grid must be positive, got %d", grid)
	}
	for _, col := range []string{"LOC_X", "LOC_Y", "SHOT_MADE_FLAG"} {
		if shots.ColumnIndex(col) < 0 {
			return nil, fmt.Errorf("shot table needs LOC_X, LOC_Y and SHOT_MADE_FLAG, has %v", shots.Columns)
		}
	}

	cellW := (MaxX - MinX) / float64(grid)
	cellH := (MaxY - MinY) / float64(grid)
	counts := make([]Cell, grid*grid)
	chart := &Chart{Grid: grid}

	for _, s := range nba.ShotsFromTable(shots) {
		if s.LocX == nil || s.LocY == nil || s.Made == nil {
			chart.Skipped++
			continue
		}
		x, y := *s.LocX, *s.LocY
		if y >= maxDrawableY || x < MinX || x > MaxX || y < MinY {
			chart.Skipped++
			continue
		}
		col := clamp(int(math.Floor((x-MinX)/cellW)), grid)
		row := clamp(int(math.Floor((y-MinY)/cellH)), grid)
		c := &counts[row*grid+col]
		c.Attempts++
		chart.Attempts++
		if *s.Made == 1 {
			c.Made++
			chart.Made++
		}
	}

	chart.Cells = []Cell{}
	for i, c := range counts {
		if c.Attempts == 0 {
			continue
		}
		c.Row, c.Col = i/grid, i%grid
		c.X = MinX + (float64(c.Col)+0.5)*cellW
		c.Y = MinY + (float64(c.Row)+0.5)*cellH
		c.Pct = float64(c.Made) / float64(c.Attempts)
		chart.Cells = append(chart.Cells, c)
	}
	return chart, nil
}

// Pct is the overall field goal percentage, 0 when there were no attempts.
func (c *Chart) Pct() float64 {
	if c.Attempts == 0 {
		return 0
	}
	return float64(c.Made) / float64(c.Attempts)
}

func clamp(i, grid int) int {
	if i >= grid {
		return grid - 1
	}
	if i < 0 {
		return 0
	}
	return i
}

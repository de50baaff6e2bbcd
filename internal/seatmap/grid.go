package seatmap

// Grid is an ordered sequence of rows, each an ordered sequence of seats.
type Grid [][]Seat

// Generate builds a rows x cols grid with every seat unoccupied.
func Generate(rows, cols int) Grid {
	if rows <= 0 || cols <= 0 {
		return Grid{}
	}
	grid := make(Grid, 0, rows)
	for r := 1; r <= rows; r++ {
		tier := TierForRow(r)
		row := make([]Seat, 0, cols)
		for c := 1; c <= cols; c++ {
			row = append(row, Seat{
				ID:   SeatID(r, c),
				Row:  r,
				Col:  c,
				Tier: tier,
			})
		}
		grid = append(grid, row)
	}
	return grid
}

// Find returns a pointer into the grid for the seat with the given id.
func (g Grid) Find(id string) (*Seat, bool) {
	if row, col, err := ParseSeatID(id); err == nil {
		if row <= len(g) && col <= len(g[row-1]) {
			if s := &g[row-1][col-1]; s.ID == id {
				return s, true
			}
		}
	}
	// Hand-edited maps may not be laid out positionally.
	for r := range g {
		for c := range g[r] {
			if g[r][c].ID == id {
				return &g[r][c], true
			}
		}
	}
	return nil, false
}

// Capacity counts every seat in the grid.
func (g Grid) Capacity() int {
	n := 0
	for _, row := range g {
		n += len(row)
	}
	return n
}

// OccupiedCount counts seats with Occupied set.
func (g Grid) OccupiedCount() int {
	n := 0
	for _, row := range g {
		for _, s := range row {
			if s.Occupied {
				n++
			}
		}
	}
	return n
}

// Rows returns the number of rows.
func (g Grid) Rows() int {
	return len(g)
}

// Cols returns the width of the widest row.
func (g Grid) Cols() int {
	w := 0
	for _, row := range g {
		if len(row) > w {
			w = len(row)
		}
	}
	return w
}

// Clone returns a deep copy.
func (g Grid) Clone() Grid {
	out := make(Grid, len(g))
	for i, row := range g {
		out[i] = append([]Seat(nil), row...)
	}
	return out
}

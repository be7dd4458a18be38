package ui

// probeCell maps a cursor position over a view of tiles x tiles copies of a
// cols x rows field, drawn at scale pixels per cell, to the field cell under
// it. Positions outside the view report false.
func probeCell(mx, my, scale, cols, rows, tiles int) (row, col int, ok bool) {
	if scale <= 0 || cols <= 0 || rows <= 0 || tiles <= 0 || mx < 0 || my < 0 {
		return 0, 0, false
	}
	cx, cy := mx/scale, my/scale
	if cx >= cols*tiles || cy >= rows*tiles {
		return 0, 0, false
	}
	return cy % rows, cx % cols, true
}

package testutil

import "time"

// positionData holds one cursor_positions row to be inserted.
type positionData struct {
	path      string
	line      int
	col       int
	updatedAt time.Time
}

func defaultPosition(path string) positionData {
	return positionData{
		path:      path,
		updatedAt: time.Unix(1_700_000_000, 0),
	}
}

// PositionOption configures a seeded position.
type PositionOption func(*positionData)

// AtLine sets the 0-based line.
func AtLine(line int) PositionOption {
	return func(p *positionData) { p.line = line }
}

// AtCol sets the 0-based column.
func AtCol(col int) PositionOption {
	return func(p *positionData) { p.col = col }
}

// UpdatedAt sets the row's timestamp, which orders pruning.
func UpdatedAt(t time.Time) PositionOption {
	return func(p *positionData) { p.updatedAt = t }
}

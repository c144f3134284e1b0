// Package edit implements reversible edit primitives (EditDiff) and the
// bounded undo/redo History that groups them into atomic changes.
package edit

import "github.com/kiro-editor/kiro/internal/row"

// Direction selects which way an EditDiff is replayed.
type Direction int

const (
	Undo Direction = iota
	Redo
)

// Kind tags which EditDiff variant a Diff carries.
type Kind int

const (
	InsertChar Kind = iota
	DeleteChar
	Insert
	Remove
	Append
	Truncate
	Newline
	InsertLine
	DeleteLine
)

// Diff is one reversible edit primitive. Only the fields relevant to Kind
// are meaningful; Str carries the payload for multi-character variants
// and Char carries it for single-character variants.
type Diff struct {
	Kind Kind
	X, Y int
	Char rune
	Str  string
}

// Apply replays d against rows in direction dir and returns the cursor
// position that results, mirroring the original editor's per-variant
// apply() semantics exactly.
func Apply(rows []*row.Row, d Diff, dir Direction) ([]*row.Row, int, int) {
	switch d.Kind {
	case InsertChar:
		if dir == Undo {
			rows[d.Y].DeleteChar(d.X)
			return rows, d.X, d.Y
		}
		rows[d.Y].InsertChar(d.X, d.Char)
		return rows, d.X + 1, d.Y

	case DeleteChar:
		if dir == Undo {
			rows[d.Y].InsertChar(d.X-1, d.Char)
			return rows, d.X, d.Y
		}
		rows[d.Y].DeleteChar(d.X - 1)
		return rows, d.X - 1, d.Y

	case Append:
		if dir == Undo {
			count := len([]rune(d.Str))
			ln := rows[d.Y].Len()
			rows[d.Y].Remove(ln-count, ln)
			return rows, rows[d.Y].Len(), d.Y
		}
		x := rows[d.Y].Len()
		rows[d.Y].Append(d.Str)
		return rows, x, d.Y

	case Truncate:
		if dir == Undo {
			rows[d.Y].Append(d.Str)
			x := rows[d.Y].Len() - len([]rune(d.Str))
			return rows, x, d.Y
		}
		count := len([]rune(d.Str))
		ln := rows[d.Y].Len()
		rows[d.Y].Truncate(ln - count)
		return rows, ln - count, d.Y

	case Insert:
		if dir == Undo {
			rows[d.Y].Remove(d.X, d.X+len([]rune(d.Str)))
			return rows, d.X, d.Y
		}
		rows[d.Y].InsertStr(d.X, d.Str)
		return rows, d.X, d.Y

	case Remove:
		if dir == Undo {
			count := len([]rune(d.Str))
			rows[d.Y].InsertStr(d.X-count, d.Str)
			return rows, d.X, d.Y
		}
		nextX := d.X - len([]rune(d.Str))
		rows[d.Y].Remove(nextX, d.X)
		return rows, nextX, d.Y

	case Newline:
		if dir == Undo {
			rows = rows[:len(rows)-1]
			return rows, 0, len(rows)
		}
		y := len(rows)
		rows = append(rows, row.Empty())
		return rows, 0, y

	case InsertLine:
		if dir == Undo {
			rows = append(rows[:d.Y], rows[d.Y+1:]...)
			y := d.Y - 1
			x := rows[y].Len()
			return rows, x, y
		}
		nr := row.New(d.Str)
		rows = append(rows, nil)
		copy(rows[d.Y+1:], rows[d.Y:])
		rows[d.Y] = nr
		return rows, 0, d.Y

	case DeleteLine:
		if dir == Undo {
			nr := row.New(d.Str)
			if d.Y == len(rows) {
				rows = append(rows, nr)
			} else {
				rows = append(rows, nil)
				copy(rows[d.Y+1:], rows[d.Y:])
				rows[d.Y] = nr
			}
			return rows, 0, d.Y
		}
		if d.Y == len(rows)-1 {
			rows = rows[:d.Y]
		} else {
			rows = append(rows[:d.Y], rows[d.Y+1:]...)
		}
		return rows, rows[d.Y-1].Len(), d.Y - 1

	default:
		return rows, d.X, d.Y
	}
}

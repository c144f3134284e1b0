package screen

import (
	"testing"

	"github.com/kiro-editor/kiro/internal/row"
	"github.com/kiro-editor/kiro/internal/termcolor"
)

func newTestScreen(numRows, numCols int) *Screen {
	return &Screen{
		numCols: numCols,
		numRows: numRows,
		ctx:     rerenderContext(),
		sig:     &sigwinchWatcher{},
		palette: termcolor.NewPalette(termcolor.Only16),
	}
}

func TestDoScrollKeepsCursorInsideWindow(t *testing.T) {
	s := newTestScreen(5, 20)
	rows := make([]*row.Row, 50)
	for i := range rows {
		rows[i] = row.New("line")
	}

	s.doScroll(rows, 0, 30)
	if 30 < s.rowoff || 30 >= s.rowoff+s.Rows() {
		t.Fatalf("cursor row 30 outside window [%d, %d)", s.rowoff, s.rowoff+s.Rows())
	}

	s.doScroll(rows, 0, 0)
	if s.rowoff != 0 {
		t.Fatalf("scrolling back up to row 0 should reset rowoff to 0, got %d", s.rowoff)
	}
}

func TestDoScrollHorizontalRespectsCharBoundary(t *testing.T) {
	s := newTestScreen(5, 10)
	rows := []*row.Row{row.New("一二三四五六七八九十")}

	s.doScroll(rows, 9, 0)
	if s.rx < s.coloff || s.rx >= s.coloff+s.numCols {
		t.Fatalf("cursor rx %d outside [coloff %d, coloff+cols %d)", s.rx, s.coloff, s.coloff+s.numCols)
	}
}

func TestMessageBarOpenCloseFold(t *testing.T) {
	s := newTestScreen(5, 20)
	s.ctx.clear()

	s.SetInfoMessage("hello")
	if s.ctx.drawMessage != Open {
		t.Fatalf("want Open after first message, got %v", s.ctx.drawMessage)
	}

	s.ctx.clear()
	s.SetInfoMessage("world")
	if s.ctx.drawMessage != Update {
		t.Fatalf("want Update after second message, got %v", s.ctx.drawMessage)
	}

	s.ctx.clear()
	s.UnsetMessage()
	if s.ctx.drawMessage != Close {
		t.Fatalf("want Close after unset, got %v", s.ctx.drawMessage)
	}
}

func TestRowsReservesMessageLine(t *testing.T) {
	s := newTestScreen(10, 20)
	s.SetInfoMessage("x")
	if s.Rows() != 10 {
		t.Fatalf("want 10 content rows with message shown, got %d", s.Rows())
	}
	s.UnsetMessage()
	if s.Rows() != 11 {
		t.Fatalf("want 11 content rows with no message, got %d", s.Rows())
	}
}

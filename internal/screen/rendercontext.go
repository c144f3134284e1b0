package screen

// DrawMessage states the message bar's Open/Close/Update/DoNothing state
// machine, folding across set_message calls within a single render tick.
type DrawMessage int

const (
	DoNothing DrawMessage = iota
	Open
	Close
	Update
)

// foldDrawMessage implements the table from the editor's message bar
// design: prior state (row) folded with a new event (column) yields the
// next state.
func foldDrawMessage(prior, next DrawMessage) DrawMessage {
	switch prior {
	case Open:
		switch next {
		case Close:
			return DoNothing
		default: // Open, Update, DoNothing all keep Open
			return Open
		}
	case Close:
		switch next {
		case Open:
			return Update
		default: // Close, Update, DoNothing keep Close
			return Close
		}
	case Update:
		switch next {
		case Close:
			return Close
		default: // Open, Update, DoNothing keep Update
			return Update
		}
	default: // DoNothing folds to whatever event just happened
		return next
	}
}

// renderContext tracks the per-tick mutable redraw state: the lowest dirty
// row, whether the cursor moved, and the folded message-bar transition.
type renderContext struct {
	dirtyStart  *int
	cursorMoved bool
	drawMessage DrawMessage
}

func rerenderContext() renderContext {
	zero := 0
	return renderContext{dirtyStart: &zero, cursorMoved: true, drawMessage: DoNothing}
}

// setDirtyStart stores min(current, line); a nil dirtyStart always accepts.
func (c *renderContext) setDirtyStart(line int) {
	if c.dirtyStart != nil && *c.dirtyStart <= line {
		return
	}
	l := line
	c.dirtyStart = &l
}

func (c *renderContext) clear() {
	c.dirtyStart = nil
	c.cursorMoved = false
	c.drawMessage = DoNothing
}

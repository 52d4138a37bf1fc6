// Package cursor tracks the selection and scroll offset of a list view.
package cursor

// Cursor holds a selected index and the first visible index. List length and
// viewport height are passed in on every call since both change as the
// library and the terminal do.
type Cursor struct {
	pos    int
	offset int
	margin int // rows kept visible above and below the selection
}

// New creates a cursor keeping margin rows of context around the selection.
func New(margin int) Cursor {
	return Cursor{margin: margin}
}

// Pos returns the selected index.
func (c Cursor) Pos() int {
	return c.pos
}

// Offset returns the first visible index.
func (c Cursor) Offset() int {
	return c.offset
}

// Move moves the selection by delta, clamped to the list.
func (c *Cursor) Move(delta, listLen, height int) {
	c.Jump(c.pos+delta, listLen, height)
}

// Jump selects pos, clamped to the list.
func (c *Cursor) Jump(pos, listLen, height int) {
	if listLen == 0 {
		c.pos, c.offset = 0, 0
		return
	}
	c.pos = clamp(pos, listLen-1)
	c.scroll(listLen, height)
}

func (c *Cursor) scroll(listLen, height int) {
	if height <= 0 {
		return
	}
	margin := min(c.margin, (height-1)/2)

	if c.pos < c.offset+margin {
		c.offset = c.pos - margin
	}
	if c.pos >= c.offset+height-margin {
		c.offset = c.pos - height + margin + 1
	}
	c.offset = clamp(c.offset, max(listLen-height, 0))
}

// VisibleRange returns the visible indices as [start, end).
func (c Cursor) VisibleRange(listLen, height int) (start, end int) {
	if listLen == 0 || height <= 0 {
		return 0, 0
	}
	return c.offset, min(c.offset+height, listLen)
}

// HandleKey applies the common list navigation keys and reports whether key
// was one of them: j/down, k/up, g/home, G/end, ctrl+d, ctrl+u.
func (c *Cursor) HandleKey(key string, listLen, height int) bool {
	switch key {
	case "j", "down":
		c.Move(1, listLen, height)
	case "k", "up":
		c.Move(-1, listLen, height)
	case "g", "home":
		c.Jump(0, listLen, height)
	case "G", "end":
		c.Jump(listLen-1, listLen, height)
	case "ctrl+d", "pgdown":
		c.Move(max(height/2, 1), listLen, height)
	case "ctrl+u", "pgup":
		c.Move(-max(height/2, 1), listLen, height)
	default:
		return false
	}
	return true
}

func clamp(v, maxVal int) int {
	return min(max(v, 0), maxVal)
}

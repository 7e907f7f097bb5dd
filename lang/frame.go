package lang

import (
	"log/slog"

	"github.com/edwingeng/deque"
)

// frame records one active function call.
type frame struct {
	name string
	pos  Position
}

// callStack tracks active calls so unbounded recursion is reported as
// [ErrStackOverflow] instead of exhausting the host stack.
type callStack struct {
	frames deque.Deque
	limit  int
}

func newCallStack(limit int) *callStack {
	return &callStack{frames: deque.NewDeque(), limit: limit}
}

func (c *callStack) depth() int { return c.frames.Len() }

// push records a call to name at pos, failing if the stack is full.
// A non-positive limit disables the limit.
func (c *callStack) push(name string, pos Position) error {
	if c.limit > 0 && c.frames.Len() >= c.limit {
		outer, _ := c.frames.Front().(frame)
		inner, _ := c.frames.Back().(frame)

		return ErrStackOverflow.WithPosition(pos).
			Wrapf("%d nested calls calling %s", c.limit, name).
			With(
				slog.Int("depth", c.frames.Len()),
				slog.String("outermost", outer.name+" at "+outer.pos.String()),
				slog.String("innermost", inner.name+" at "+inner.pos.String()),
			)
	}

	c.frames.PushBack(frame{name: name, pos: pos})

	return nil
}

func (c *callStack) pop() {
	if !c.frames.Empty() {
		c.frames.PopBack()
	}
}

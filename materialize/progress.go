package materialize

// Progress receives fractional completion updates while the scene is being
// built. This is an observability side channel: implementations must not
// influence construction.
type Progress interface {
	Progress(done, total int)
}

// ProgressFunc adapts a plain function to the Progress interface.
type ProgressFunc func(done, total int)

func (f ProgressFunc) Progress(done, total int) { f(done, total) }

type nopProgress struct{}

func (nopProgress) Progress(int, int) {}

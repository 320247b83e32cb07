package container

import (
	"io"
)

// namedCloser tags an io.Closer with a label so shutdown logs can say which
// resource failed to close.
type namedCloser struct {
	name string
	io.Closer
}

func closerFor(name string, c io.Closer) namedCloser {
	return namedCloser{name: name, Closer: c}
}

package corpus

import "fmt"

// NewErrNotBundled builds a custom ErrNotBundled and returns it
func NewErrNotBundled(path string, err error) error {
	return ErrNotBundled{path, err}
}

// ErrNotBundled is a custom error for when a file on disk can't be
// decoded as a bundled testcase
type ErrNotBundled struct {
	path string
	err  error
}

func (nb ErrNotBundled) Error() string {
	return fmt.Sprintf("'%v' is not a bundled testcase: %v", nb.path, nb.err)
}

func (nb ErrNotBundled) Unwrap() error {
	return nb.err
}

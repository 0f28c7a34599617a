package textfile

import (
	"io"
	"os"

	"github.com/citerank/citerank/linkgraph"
	"golang.org/x/xerrors"
)

// Compile-time check for ensuring FileSource implements linkgraph.Source.
var _ linkgraph.Source = (*FileSource)(nil)

// FileSource reads link records from a UTF-8 text file where each line has
// the form "<target> <source1> <source2> ... <sourceN>".
type FileSource struct {
	path string
}

// NewFileSource returns a FileSource that reads link records from path.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Path returns the path of the link file.
func (s *FileSource) Path() string { return s.path }

// Records implements linkgraph.Source. The file is kept open until Close is
// invoked on the returned iterator.
func (s *FileSource) Records() (linkgraph.RecordIterator, error) {
	f, err := os.Open(s.path)
	if err != nil {
		// A file that cannot be opened is reported as missing whatever
		// the cause (absent, no permission, bad path component).
		return nil, xerrors.Errorf("open %q: %v: %w", s.path, unwrapPathError(err), linkgraph.ErrNotFound)
	}

	return newRecordIterator(f, f), nil
}

func unwrapPathError(err error) error {
	if pErr, ok := err.(*os.PathError); ok {
		return pErr.Err
	}
	return err
}

// NewRecordIterator returns an iterator that parses link records from r. The
// caller retains ownership of r.
func NewRecordIterator(r io.Reader) linkgraph.RecordIterator {
	return newRecordIterator(r, nil)
}

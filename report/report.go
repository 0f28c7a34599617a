// Package report writes the results of a PageRank run: the per-pass
// perplexity trace, the final score of every page and the top-K summary
// printed by the command line tool.
package report

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

// ScoreVisitor is implemented by types that can enumerate page scores in a
// stable order. pagerank.Calculator satisfies this interface.
type ScoreVisitor interface {
	Scores(visitFn func(id int64, score float64) error) error
}

// WriteError is returned when an output file cannot be written. Results that
// are held in memory are not affected.
type WriteError struct {
	// The path of the output file.
	Path string

	// The underlying I/O error.
	Err error
}

// Error implements error.
func (e *WriteError) Error() string {
	return fmt.Sprintf("write %q: %v", e.Path, e.Err)
}

// Unwrap returns the underlying I/O error.
func (e *WriteError) Unwrap() error { return e.Err }

// FormatFloat returns the shortest decimal representation of v that parses
// back to the same value.
func FormatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// WritePerplexities writes one perplexity value per line to path, in the
// order they were observed.
func WritePerplexities(path string, perplexities []float64) error {
	return writeFile(path, func(w *bufio.Writer) error {
		for _, p := range perplexities {
			if _, err := w.WriteString(FormatFloat(p) + "\n"); err != nil {
				return err
			}
		}
		return nil
	})
}

// WriteScores writes a "<page_id> <score>" line to path for every page
// produced by src. Lines follow the visiting order of src.
func WriteScores(path string, src ScoreVisitor) error {
	return writeFile(path, func(w *bufio.Writer) error {
		return src.Scores(func(id int64, score float64) error {
			_, err := w.WriteString(strconv.FormatInt(id, 10) + " " + FormatFloat(score) + "\n")
			return err
		})
	})
}

func writeFile(path string, writeFn func(w *bufio.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return &WriteError{Path: path, Err: err}
	}

	w := bufio.NewWriter(f)
	err = writeFn(w)
	if err == nil {
		err = w.Flush()
	}
	if cErr := f.Close(); err == nil {
		err = cErr
	}

	if err != nil {
		return &WriteError{Path: path, Err: err}
	}
	return nil
}

// FormatIDs renders ids as a bracketed, comma separated list such as
// "[3, 1, 2]".
func FormatIDs(ids []int64) string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, id := range ids {
		if i != 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(strconv.FormatInt(id, 10))
	}
	sb.WriteByte(']')
	return sb.String()
}

// WriteSummary prints the top ranked pages and the total processing time.
func WriteSummary(w io.Writer, k int, ids []int64, elapsed time.Duration) error {
	_, err := fmt.Fprintf(w, "Top %d Pages are:\n%s\nProcessing time: %s seconds\n",
		k, FormatIDs(ids), FormatFloat(elapsed.Seconds()))
	return err
}

// Package output renders correlation results, either as one JSON object per
// line or as a labeled human-readable report.
package output

import (
	"context"
	"encoding/json"
	"fmt"
	"idresolve/pkg/domain"
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

// Sink consumes one result per resolved candidate. The returned bool tells
// the pipeline to stop looking at further candidates.
type Sink interface {
	Emit(ctx context.Context, res domain.CorrelationResult, target domain.Identity) (bool, error)
}

// Notifier is implemented by sinks that report an empty candidate search.
type Notifier interface {
	NoCandidates(ctx context.Context, name string)
}

// JSON writes each result as a single line of JSON.
type JSON struct {
	enc *json.Encoder
}

// NewJSON returns a JSON sink writing to w.
func NewJSON(w io.Writer) *JSON {
	return &JSON{enc: json.NewEncoder(w)}
}

// Emit writes res and stops the search on a HIGH match.
func (j *JSON) Emit(_ context.Context, res domain.CorrelationResult, _ domain.Identity) (bool, error) {
	if err := j.enc.Encode(res); err != nil {
		return false, fmt.Errorf("could not encode result: %w", err)
	}

	return res.StopSearch, nil
}

// ShouldColorize reports whether w is a terminal.
func ShouldColorize(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()

	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

var (
	_ Sink     = (*JSON)(nil)
	_ Sink     = (*Text)(nil)
	_ Notifier = (*Text)(nil)
)

package pkg

import (
	"io"

	"go.uber.org/multierr"
)

// CombinedWriter fans every write out to all of its writers, e.g. STDOUT and a rotated log file.
// A failing writer does not stop the others; its error is collected and returned.
type CombinedWriter struct {
	Writers []io.Writer
}

func NewCombinedWriter(writers ...io.Writer) *CombinedWriter {
	return &CombinedWriter{
		Writers: append([]io.Writer(nil), writers...),
	}
}

// Write reports len(p) as long as at least one writer took the whole payload.
func (cw *CombinedWriter) Write(p []byte) (int, error) {
	var (
		errs      error
		succeeded int
	)
	for _, w := range cw.Writers {
		written, err := w.Write(p)
		if err == nil && written < len(p) {
			err = io.ErrShortWrite
		}
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		succeeded++
	}

	if succeeded == 0 {
		return 0, errs
	}
	return len(p), errs
}

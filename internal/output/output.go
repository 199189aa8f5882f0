// Package output provides context-aware output for wt.
// Stdout is used for primary data output (lists, paths, JSON).
// Stderr (via log package) is used for diagnostics.
package output

import (
	"context"
	"fmt"
	"io"
	"os"
)

// CdFileEnv names the variable the shell wrapper sets to receive the
// directory it should change into.
const CdFileEnv = "WT_CD_FILE"

type ctxKey struct{}

// Printer writes primary output to stdout and hands directory changes to
// the shell wrapper.
type Printer struct {
	w      io.Writer
	cdFile string
}

// New creates a new Printer writing to the given writer.
// cdFile may be empty, in which case target paths are printed.
func New(w io.Writer, cdFile string) *Printer {
	return &Printer{w: w, cdFile: cdFile}
}

// WithPrinter attaches a Printer to the context.
func WithPrinter(ctx context.Context, p *Printer) context.Context {
	return context.WithValue(ctx, ctxKey{}, p)
}

// FromContext retrieves the Printer from context.
// Returns a Printer writing to os.Stdout if none is attached.
func FromContext(ctx context.Context) *Printer {
	if p, ok := ctx.Value(ctxKey{}).(*Printer); ok {
		return p
	}
	return &Printer{w: os.Stdout}
}

// Printf writes formatted output.
func (p *Printer) Printf(format string, a ...any) {
	fmt.Fprintf(p.w, format, a...)
}

// Println writes a line of output.
func (p *Printer) Println(a ...any) {
	fmt.Fprintln(p.w, a...)
}

// Writer returns the underlying writer.
func (p *Printer) Writer() io.Writer {
	return p.w
}

// Target publishes the directory the invoking shell should change into.
// With a cd file configured the path is written there, otherwise it is
// printed on its own line.
func (p *Printer) Target(path string) error {
	if path == "" {
		return nil
	}
	if p.cdFile == "" {
		p.Println(path)
		return nil
	}
	if err := os.WriteFile(p.cdFile, []byte(path+"\n"), 0o600); err != nil {
		return fmt.Errorf("write %s: %w", CdFileEnv, err)
	}
	return nil
}

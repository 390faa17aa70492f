// Package persist moves a buffer between memory and a single named file.
//
// All I/O is synchronous. The editor loop blocks for the duration of a read
// or write, which for local files is well under a frame; network mounts can
// stall the UI for as long as the filesystem takes to answer.
//
// Saves replace the target with a renamed temporary file. The result is a
// new inode owned by the saving user: hard links to the old file keep the old
// content, and ownership, ACLs and extended attributes other than the
// permission bits are not carried over.
package persist

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.opentelemetry.io/otel/attribute"

	"github.com/zjrosen/scrawl/internal/buffer"
	"github.com/zjrosen/scrawl/internal/log"
	"github.com/zjrosen/scrawl/internal/tracing"
)

// DefaultFileMode is used for files that do not exist yet.
const DefaultFileMode fs.FileMode = 0644

// Binding ties a buffer to a file name. The zero value is unbound.
//
// ReadOnly is set when the file exists but could not be read. The buffer then
// does not hold the file's content, so Save refuses to replace it.
type Binding struct {
	Name     string
	Bound    bool
	ReadOnly bool
}

// Bind returns the binding for name. An empty name is unbound.
func Bind(name string) Binding {
	return Binding{Name: name, Bound: name != ""}
}

// Display is the name shown to users.
func (b Binding) Display() string {
	if !b.Bound {
		return "[No Name]"
	}
	return b.Name
}

// Gateway reads and writes buffers.
type Gateway struct {
	mode    fs.FileMode
	onSaved []func(name string, data []byte)
}

// Option configures a Gateway.
type Option func(*Gateway)

// WithFileMode sets the permissions used when a save creates a new file.
func WithFileMode(mode fs.FileMode) Option {
	return func(g *Gateway) {
		g.mode = mode
	}
}

// WithSaveHook registers fn to run after every successful save with the
// bytes that were written.
func WithSaveHook(fn func(name string, data []byte)) Option {
	return func(g *Gateway) {
		g.onSaved = append(g.onSaved, fn)
	}
}

// NewGateway creates a Gateway.
func NewGateway(opts ...Option) *Gateway {
	g := &Gateway{mode: DefaultFileMode}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Open loads name into a new buffer.
//
// An empty name yields an empty unbound buffer. A missing file yields an
// empty buffer bound to name, so the first save creates it. Invalid UTF-8 is
// decoded with replacement characters and reported as *buffer.DecodeError
// alongside the usable buffer. Any other read failure is a *ReadError, again
// with an empty bound buffer whose binding is ReadOnly.
func (g *Gateway) Open(ctx context.Context, name string) (*buffer.Buffer, Binding, error) {
	binding := Bind(name)
	if !binding.Bound {
		return buffer.New(), binding, nil
	}

	_, span := tracing.Start(ctx, tracing.SpanOpen, attribute.String(tracing.AttrFileName, name))

	data, err := os.ReadFile(name) // #nosec G304 -- the user names the file to edit
	if errors.Is(err, fs.ErrNotExist) {
		span.SetAttributes(attribute.Bool(tracing.AttrFileExists, false))
		tracing.End(span, nil, "")
		log.Info(log.CatPersist, "New file", "name", name)
		return buffer.New(), binding, nil
	}
	if err != nil {
		rerr := &ReadError{Name: name, Err: err}
		tracing.End(span, rerr, "read")
		log.ErrorErr(log.CatPersist, "Open failed", err, "name", name)
		binding.ReadOnly = true
		return buffer.New(), binding, rerr
	}

	buf, err := buffer.Load(data)
	span.SetAttributes(
		attribute.Bool(tracing.AttrFileExists, true),
		attribute.Int(tracing.AttrFileBytes, len(data)),
		attribute.Int(tracing.AttrFileLines, buf.LineCount()),
	)
	if err != nil {
		tracing.End(span, err, "decode")
		log.Warn(log.CatPersist, "Lossy decode", "name", name, "error", err)
		return buf, binding, err
	}
	tracing.End(span, nil, "")
	log.Debug(log.CatPersist, "Opened", "name", name, "bytes", len(data), "lines", buf.LineCount())
	return buf, binding, nil
}

// Save writes buf to the bound file. The new content goes to a temporary
// file in the same directory which is then renamed over the target, so a
// failed save leaves the previous content intact.
func (g *Gateway) Save(ctx context.Context, buf *buffer.Buffer, binding Binding) (Summary, error) {
	if !binding.Bound {
		return Summary{}, ErrMissingFileName
	}
	name := binding.Name

	_, span := tracing.Start(ctx, tracing.SpanSave, attribute.String(tracing.AttrFileName, name))

	if binding.ReadOnly {
		werr := &WriteError{Name: name, Err: ErrUnreadable}
		tracing.End(span, werr, "readonly")
		log.Warn(log.CatPersist, "Save refused", "name", name)
		return Summary{}, werr
	}

	data := buf.Serialize()
	previous, created, mode, err := g.current(name)
	if err != nil {
		werr := &WriteError{Name: name, Err: err}
		tracing.End(span, werr, "previous")
		log.ErrorErr(log.CatPersist, "Save failed", err, "name", name)
		return Summary{}, werr
	}

	if err := writeAtomic(name, data, mode); err != nil {
		werr := &WriteError{Name: name, Err: err}
		tracing.End(span, werr, "write")
		log.ErrorErr(log.CatPersist, "Save failed", err, "name", name)
		return Summary{}, werr
	}

	for _, fn := range g.onSaved {
		fn(name, data)
	}

	summary := summarize(name, previous, data, buf.LineCount(), created)
	span.SetAttributes(
		attribute.Int(tracing.AttrFileBytes, summary.Bytes),
		attribute.Int(tracing.AttrFileLines, summary.Lines),
		attribute.Int(tracing.AttrLinesAdded, summary.Added),
		attribute.Int(tracing.AttrLinesGone, summary.Removed),
	)
	tracing.End(span, nil, "")
	log.Info(log.CatPersist, "Saved", "name", name, "bytes", summary.Bytes, "added", summary.Added, "removed", summary.Removed)
	return summary, nil
}

// current returns the on-disk content and mode of name, or the gateway's
// default mode and created=true when the file does not exist. An existing
// file that cannot be read is an error: it is never overwritten blind.
func (g *Gateway) current(name string) ([]byte, bool, fs.FileMode, error) {
	info, err := os.Stat(name)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, true, g.mode, nil
	}
	if err != nil {
		return nil, false, 0, err
	}
	if info.IsDir() {
		return nil, false, 0, fmt.Errorf("%s is a directory", name)
	}

	previous, err := os.ReadFile(name) // #nosec G304 -- same path the user opened
	if err != nil {
		return nil, false, 0, fmt.Errorf("%w: %w", ErrUnreadable, err)
	}
	return previous, false, info.Mode().Perm(), nil
}

func writeAtomic(name string, data []byte, mode fs.FileMode) error {
	dir := filepath.Dir(name)

	temp, err := os.CreateTemp(dir, "."+filepath.Base(name)+".tmp.*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tempPath := temp.Name()

	if _, err := temp.Write(data); err != nil {
		_ = temp.Close()
		_ = os.Remove(tempPath)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := temp.Chmod(mode); err != nil {
		_ = temp.Close()
		_ = os.Remove(tempPath)
		return fmt.Errorf("setting file mode: %w", err)
	}
	if err := temp.Close(); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tempPath, name); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

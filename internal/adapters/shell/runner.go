// Package shell provides the process runner adapter.
package shell

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"iter"
	"os/exec"
	"strings"

	"go.trai.ch/uccmake/internal/core/domain"
	"go.trai.ch/uccmake/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
)

var _ ports.ProcessRunner = (*Runner)(nil)

// Runner implements ports.ProcessRunner using os/exec.
type Runner struct {
	logger ports.Logger
}

// NewRunner creates a new Runner.
func NewRunner(logger ports.Logger) *Runner {
	return &Runner{logger: logger}
}

// Start launches cmd with stdout piped for line reading. Stderr lines are
// forwarded to the logger at warn level.
func (r *Runner) Start(cmd domain.Command) (ports.Process, error) {
	enc, err := lookupEncoding(cmd.Encoding)
	if err != nil {
		return nil, err
	}

	c := exec.Command(cmd.Executable, cmd.Args...) //nolint:gosec // workspace provided command
	c.Dir = cmd.Dir

	stdout, err := c.StdoutPipe()
	if err != nil {
		return nil, startError(cmd, err)
	}
	stderr, err := c.StderrPipe()
	if err != nil {
		return nil, startError(cmd, err)
	}

	if err := c.Start(); err != nil {
		return nil, startError(cmd, err)
	}

	p := &process{
		cmd:    c,
		stdout: bufio.NewReader(decode(stdout, enc)),
		done:   make(chan struct{}),
	}

	go func() {
		defer close(p.done)
		w := &logWriter{logger: r.logger}
		_, _ = io.Copy(w, decode(stderr, enc))
		w.Flush()
	}()

	return p, nil
}

func startError(cmd domain.Command, err error) error {
	return zerr.With(
		zerr.With(zerr.Wrap(domain.ErrProcessStartFailed, "cannot launch process"), "path", cmd.Executable),
		"reason", err.Error(),
	)
}

// lookupEncoding resolves an encoding name. An empty name means the output
// is used as is.
func lookupEncoding(name string) (encoding.Encoding, error) {
	if name == "" {
		return nil, nil
	}
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrUnsupportedEncoding, "cannot decode process output"), "encoding", name)
	}
	return enc, nil
}

func decode(r io.Reader, enc encoding.Encoding) io.Reader {
	if enc == nil {
		return r
	}
	return enc.NewDecoder().Reader(r)
}

type process struct {
	cmd     *exec.Cmd
	stdout  *bufio.Reader
	done    chan struct{}
	readErr error
}

// Lines implements ports.Process. The sequence can be consumed once.
func (p *process) Lines() iter.Seq[string] {
	return func(yield func(string) bool) {
		for {
			line, err := p.stdout.ReadString('\n')
			if line != "" {
				if !yield(trimLine(line)) {
					return
				}
			}
			if err != nil {
				if !errors.Is(err, io.EOF) {
					p.readErr = err
				}
				return
			}
		}
	}
}

// Wait implements ports.Process. Unread output is discarded.
func (p *process) Wait() (int, error) {
	if _, err := io.Copy(io.Discard, p.stdout); err != nil && p.readErr == nil {
		p.readErr = err
	}
	<-p.done

	err := p.cmd.Wait()
	code := p.cmd.ProcessState.ExitCode()

	var exitErr *exec.ExitError
	if err != nil && !errors.As(err, &exitErr) {
		return code, zerr.With(
			zerr.With(zerr.Wrap(domain.ErrProcessWaitFailed, "process did not exit cleanly"), "path", p.cmd.Path),
			"reason", err.Error(),
		)
	}

	if p.readErr != nil {
		return code, zerr.With(
			zerr.With(zerr.Wrap(domain.ErrProcessOutputFailed, "output stream broke"), "path", p.cmd.Path),
			"reason", p.readErr.Error(),
		)
	}

	return code, nil
}

func trimLine(line string) string {
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r")
}

// logWriter buffers partial writes and logs complete lines at warn level.
type logWriter struct {
	logger ports.Logger
	buf    []byte
}

func (w *logWriter) Write(p []byte) (int, error) {
	w.buf = append(w.buf, p...)
	for {
		i := bytes.IndexByte(w.buf, '\n')
		if i < 0 {
			break
		}
		w.emit(string(w.buf[:i]))
		w.buf = w.buf[i+1:]
	}
	return len(p), nil
}

// Flush logs any trailing line that had no terminator.
func (w *logWriter) Flush() {
	if len(w.buf) > 0 {
		w.emit(string(w.buf))
		w.buf = nil
	}
}

func (w *logWriter) emit(line string) {
	line = strings.TrimSuffix(line, "\r")
	if line == "" {
		return
	}
	w.logger.Warn(line)
}

package format

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"codefmt/internal/lang"
	"codefmt/internal/proc"
)

// ErrPrettierNotFound means neither prettier nor npx is on PATH.
var ErrPrettierNotFound = errors.New("prettier not found (install it or set prettier_path)")

// DefaultTimeout bounds a single prettier run. npx may need to download on first use.
const DefaultTimeout = 30 * time.Second

// maxErrorLines caps how much of prettier's stderr ends up in the UI.
const maxErrorLines = 8

// Prettier formats through the prettier CLI, reading source from stdin.
type Prettier struct {
	Command []string // e.g. ["prettier"] or ["npx", "--yes", "prettier"]
	Timeout time.Duration
	log     *log.Logger
}

// NewPrettier resolves the prettier command. An explicit path wins; then
// prettier on PATH; then npx.
func NewPrettier(path string, timeout time.Duration, logger *log.Logger) (*Prettier, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	var command []string
	switch {
	case strings.TrimSpace(path) != "":
		command = strings.Fields(path)
	case proc.FindBinary("prettier") != "":
		command = []string{proc.FindBinary("prettier")}
	case proc.FindBinary("npx") != "":
		command = []string{proc.FindBinary("npx"), "--yes", "prettier"}
	default:
		return nil, ErrPrettierNotFound
	}
	logger.Debug("prettier resolved", "command", strings.Join(command, " "))
	return &Prettier{Command: command, Timeout: timeout, log: logger}, nil
}

// Args returns the CLI flags for opts.
func (p *Prettier) Args(opts Options) []string {
	args := []string{"--parser", string(opts.Parser)}
	if opts.SingleQuote {
		args = append(args, "--single-quote")
	}
	if !opts.Semi {
		args = append(args, "--no-semi")
	}
	return args
}

func (p *Prettier) Format(ctx context.Context, src string, opts Options) (string, error) {
	// prettier's json parser tolerates trailing commas and comments; JSON
	// must stay strict whichever engine runs.
	if opts.Parser == lang.JSONP {
		if err := checkJSON(src); err != nil {
			return "", err
		}
	}
	ctx, cancel := context.WithTimeout(ctx, p.Timeout)
	defer cancel()

	argv := append(append([]string{}, p.Command...), p.Args(opts)...)
	res, err := proc.Run(ctx, argv, src)
	if err != nil {
		var ee *proc.ExitError
		if errors.As(err, &ee) {
			msg := cleanPrettierError(ee.Stderr)
			p.log.Info("format failed", "parser", opts.Parser, "code", ee.Code, "msg", firstLine(msg))
			return "", Failed(opts.Parser, msg)
		}
		if ctx.Err() != nil {
			return "", Failed(opts.Parser, fmt.Sprintf("prettier timed out after %s", p.Timeout))
		}
		return "", fmt.Errorf("prettier: %w", err)
	}
	p.log.Debug("formatted", "parser", opts.Parser, "bytes", len(res.Stdout), "elapsed", res.Elapsed)
	return res.Stdout, nil
}

// cleanPrettierError strips the "[error] " prefixes and the stdin label from
// prettier's stderr and keeps the first few lines (message plus code frame).
func cleanPrettierError(stderr string) string {
	var out []string
	for _, ln := range strings.Split(stderr, "\n") {
		ln = strings.TrimRight(ln, "\r ")
		ln = strings.TrimPrefix(ln, "[error] ")
		ln = strings.TrimPrefix(ln, "stdin: ")
		if strings.TrimSpace(ln) == "" {
			continue
		}
		out = append(out, ln)
		if len(out) == maxErrorLines {
			break
		}
	}
	return strings.Join(out, "\n")
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

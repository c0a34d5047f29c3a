// Copyright
// SPDX-License-Identifier: MIT
// codefmt: terminal code formatter (prettier or builtin engine) with an interactive TUI
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/log"

	"codefmt/internal/clipboard"
	"codefmt/internal/config"
	"codefmt/internal/format"
	"codefmt/internal/lang"
	"codefmt/internal/logging"
	"codefmt/internal/proc"
	"codefmt/internal/tui"
	"codefmt/internal/tui/util"
	"codefmt/internal/tui/widgets/diff"
)

const Version = "0.3.0"

// Exit codes for the format command.
const (
	exitOK      = 0
	exitChanged = 1 // --check found unformatted input; also setup errors
	exitFailed  = 2 // the formatter rejected the input
)

/* ---------- CLI ---------- */

func main() {
	if len(os.Args) < 2 {
		os.Exit(cmdUI(nil))
	}
	switch os.Args[1] {
	case "help", "-h", "--help":
		if len(os.Args) > 2 {
			helpTopic(os.Stdout, os.Args[2])
		} else {
			usage(os.Stdout)
		}
	case "version", "--version":
		fmt.Println("codefmt", Version)
	case "init":
		os.Exit(cmdInit(os.Args[2:], os.Stdout))
	case "doctor":
		os.Exit(cmdDoctor(os.Args[2:], os.Stdout))
	case "languages":
		cmdLanguages(os.Stdout)
	case "format", "fmt":
		os.Exit(cmdFormat(os.Args[2:], os.Stdin, os.Stdout, os.Stderr))
	case "ui":
		os.Exit(cmdUI(os.Args[2:]))
	default:
		// bare flags or a file name open the TUI
		if strings.HasPrefix(os.Args[1], "-") || fileExists(os.Args[1]) {
			os.Exit(cmdUI(os.Args[1:]))
		}
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", os.Args[1])
		usage(os.Stderr)
		os.Exit(exitFailed)
	}
}

func usage(w io.Writer) {
	fmt.Fprintln(w, `codefmt `+Version+`
Format JavaScript, TypeScript, JSX, HTML, CSS and JSON from the terminal.
USAGE
  codefmt [command] [options] [FILE]
COMMANDS
  ui           Interactive editor: paste or open code, pick a language, format, copy (default)
  format       Format FILE (or stdin) and print the result
  languages    List supported languages and the parser each one uses
  doctor       Check for prettier, npx and clipboard access
  init         Write a default .codefmt.json in the current directory
  help         Show help (try: codefmt help format)
  version      Print version
NOTES
  • Formatting uses prettier (semicolons on, single quotes). Without prettier the builtin
    engine still formats JSON and HTML.
  • The TUI owns the terminal; use --log-file with -v or -vv to capture logs.`)
}

func helpTopic(w io.Writer, name string) {
	switch name {
	case "ui":
		fmt.Fprintln(w, `USAGE
  codefmt ui [FILE] [--lang L] [--engine E] [--print] [--config PATH] [-v | -vv] [--log-file PATH]
DESCRIPTION
  Opens the editor seeded with FILE (language detected from its name and contents) or
  with a placeholder snippet. Keys: ctrl+f format, ctrl+y copy, ctrl+l language picker,
  ctrl+n next language, ctrl+p preview, ctrl+d diff of last format, ctrl+o open file,
  f1 help, esc back to editor, ctrl+q quit.
OPTIONS
  --lang L           javascript | typescript | jsx | html | css | json
  --engine E         auto | prettier | builtin (default from config: auto)
  --prettier CMD     prettier command, may include args (e.g. "npx --yes prettier")
  --theme NAME       chroma style for the preview pane
  --no-color         Disable colors (NO_COLOR is honoured too)
  --print            Write the final buffer to stdout on quit
  --config PATH      Config file (default: .codefmt.json/.yaml here or in the user config dir)
  -v                 INFO logs
  -vv                DEBUG logs
  --log-file PATH    Append logs to file (created if missing)`)
	case "format", "fmt":
		fmt.Fprintln(w, `USAGE
  codefmt format [FILE|-] [--lang L] [--engine E] [--write | --check | --diff] [-v | -vv]
DESCRIPTION
  Formats FILE (or stdin) with the parser mapped from the language and prints the result.
  Without --lang the language is detected from the file name, then the contents.
OPTIONS
  --write            Rewrite FILE in place
  --check            Exit 1 if the input is not formatted; print nothing else
  --diff             Print a diff of the changes instead of the output
EXIT STATUS
  0 ok, 1 --check found changes (or setup error), 2 formatter rejected the input`)
	case "config":
		fmt.Fprintln(w, `CONFIG
  .codefmt.json or .codefmt.yaml, searched in the working directory then the user
  config dir (codefmt/). Keys: engine, prettier_path, timeout, language, theme,
  log_file, no_color. Environment: CODEFMT_ENGINE, CODEFMT_PRETTIER, CODEFMT_TIMEOUT,
  CODEFMT_LANGUAGE, CODEFMT_THEME, CODEFMT_LOG_FILE, NO_COLOR. Flags win over both.`)
	default:
		usage(w)
	}
}

/* ---------- shared flags ---------- */

type commonFlags struct {
	config   *string
	lang     *string
	engine   *string
	prettier *string
	verbose  *bool
	debug    *bool
	logPath  *string
}

func addCommon(fs *flag.FlagSet) commonFlags {
	return commonFlags{
		config:   fs.String("config", "", "Config file path"),
		lang:     fs.String("lang", "", "Language: javascript|typescript|jsx|html|css|json"),
		engine:   fs.String("engine", "", "Formatter engine: auto|prettier|builtin"),
		prettier: fs.String("prettier", "", "prettier command (may include args)"),
		verbose:  fs.Bool("v", false, "Verbose logs (INFO)"),
		debug:    fs.Bool("vv", false, "Debug logs (DEBUG)"),
		logPath:  fs.String("log-file", "", "Append logs to file (created if missing)"),
	}
}

func (c commonFlags) verbosity() int {
	if *c.debug {
		return 2
	} else if *c.verbose {
		return 1
	}
	return 0
}

// loadConfig reads the config named by --config, or the first one found,
// and lays the command-line overrides on top.
func (c commonFlags) loadConfig() (*config.Config, error) {
	path := *c.config
	if path == "" {
		path = config.Find(config.SearchDirs()...)
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if *c.engine != "" {
		cfg.Engine = *c.engine
	}
	if *c.prettier != "" {
		cfg.PrettierPath = *c.prettier
	}
	if *c.lang != "" {
		cfg.Language = *c.lang
	}
	if *c.logPath != "" {
		cfg.LogFile = *c.logPath
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// parseArgs lets flags follow positional arguments ("format a.ts --write").
func parseArgs(fs *flag.FlagSet, args []string) ([]string, error) {
	var pos []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		if fs.NArg() == 0 {
			return pos, nil
		}
		pos = append(pos, fs.Arg(0))
		args = fs.Args()[1:]
	}
}

// resolveLanguage picks --lang, then detection, then the configured default.
func resolveLanguage(explicit bool, cfg *config.Config, filename string, src []byte) lang.Language {
	if explicit {
		return cfg.DefaultLanguage()
	}
	if l, ok := lang.Detect(filename, src); ok {
		return l
	}
	return cfg.DefaultLanguage()
}

func fileExists(p string) bool {
	fi, err := os.Stat(p)
	return err == nil && !fi.IsDir()
}

/* ---------- commands ---------- */

func cmdUI(args []string) int {
	fs := flag.NewFlagSet("ui", flag.ContinueOnError)
	fs.Usage = func() { helpTopic(os.Stderr, "ui") }
	common := addCommon(fs)
	theme := fs.String("theme", "", "Preview theme (chroma style)")
	noColor := fs.Bool("no-color", false, "Disable colors")
	printOnQuit := fs.Bool("print", false, "Print the final buffer on quit")
	pos, err := parseArgs(fs, args)
	if err != nil {
		return flagExit(err)
	}
	if len(pos) > 1 {
		fmt.Fprintln(os.Stderr, "ui takes at most one FILE")
		return exitFailed
	}

	cfg, err := common.loadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitChanged
	}
	if *theme != "" {
		cfg.Theme = *theme
	}
	if *noColor {
		cfg.NoColor = true
	}

	logger, closeLog, err := logging.OpenFile(cfg.LogFile, common.verbosity(), Version)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Could not open log file:", err)
	}
	defer func() { _ = closeLog() }()

	opts := tui.Options{Language: cfg.DefaultLanguage()}
	if len(pos) == 1 {
		data, err := os.ReadFile(pos[0])
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return exitChanged
		}
		opts.Buffer = string(data)
		opts.Filename = pos[0]
		opts.Language = resolveLanguage(*common.lang != "", cfg, pos[0], data)
	}

	settings := cfg.FormatSettings()
	settings.Logger = logger
	f, engine, err := format.New(settings)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitChanged
	}
	logger.Info("starting ui", "engine", engine, "language", opts.Language, "file", opts.Filename)

	res, err := tui.Run(tui.Deps{
		Formatter: f,
		Clipboard: clipboard.NewSystem(logger),
		Logger:    logger,
		Engine:    string(engine),
		Theme:     cfg.Theme,
		NoColor:   cfg.NoColor,
	}, opts)
	if err != nil {
		fmt.Fprintln(os.Stderr, "ui:", err)
		return exitChanged
	}
	if *printOnQuit {
		fmt.Print(res.Buffer)
	}
	return exitOK
}

func cmdFormat(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("format", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { helpTopic(stderr, "format") }
	common := addCommon(fs)
	write := fs.Bool("write", false, "Rewrite FILE in place")
	check := fs.Bool("check", false, "Exit 1 if the input would change")
	showDiff := fs.Bool("diff", false, "Print a diff instead of the output")
	noColor := fs.Bool("no-color", false, "Disable colors in --diff output")
	pos, err := parseArgs(fs, args)
	if err != nil {
		return flagExit(err)
	}
	if len(pos) > 1 {
		fmt.Fprintln(stderr, "format takes at most one FILE")
		return exitFailed
	}
	file := ""
	if len(pos) == 1 && pos[0] != "-" {
		file = pos[0]
	}
	if *write && file == "" {
		fmt.Fprintln(stderr, "--write needs a FILE")
		return exitFailed
	}

	cfg, err := common.loadConfig()
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitChanged
	}
	logger := logging.New(stderr, common.verbosity())
	if cfg.LogFile != "" {
		fl, closeLog, err := logging.OpenFile(cfg.LogFile, common.verbosity(), Version)
		if err != nil {
			logger.Warn("could not open log file", "err", err)
		} else {
			logger = fl
			defer func() { _ = closeLog() }()
		}
	}

	var src []byte
	if file != "" {
		src, err = os.ReadFile(file)
	} else {
		src, err = io.ReadAll(stdin)
	}
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitChanged
	}
	l := resolveLanguage(*common.lang != "", cfg, file, src)

	settings := cfg.FormatSettings()
	settings.Logger = logger
	f, engine, err := format.New(settings)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitChanged
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	out, err := formatSource(ctx, f, string(src), l, logger)
	if err != nil {
		fmt.Fprintln(stderr, format.Message(err))
		return exitFailed
	}
	logger.Info("formatted", "engine", engine, "language", l, "changed", out != string(src))

	name := file
	if name == "" {
		name = "<stdin>"
	}
	switch {
	case *showDiff:
		fmt.Fprint(stdout, diff.NewDiffView(util.NoColor(cfg.NoColor || *noColor)).View(string(src), out))
	case *check:
	case *write:
		if out != string(src) {
			if err := writeFilePreserveMode(file, []byte(out)); err != nil {
				fmt.Fprintln(stderr, err)
				return exitChanged
			}
			fmt.Fprintln(stderr, "formatted", name)
		}
	default:
		fmt.Fprint(stdout, out)
	}
	if *check && out != string(src) {
		fmt.Fprintln(stderr, name, "is not formatted")
		return exitChanged
	}
	return exitOK
}

// formatSource runs one format with the fixed options for l's parser.
func formatSource(ctx context.Context, f format.Formatter, src string, l lang.Language, logger *log.Logger) (string, error) {
	if !l.Valid() {
		return "", fmt.Errorf("%w: %q", lang.ErrUnknownLanguage, string(l))
	}
	p := l.Parser()
	logger.Debug("format", "language", l, "parser", p, "bytes", len(src))
	return f.Format(ctx, src, format.DefaultOptions(p))
}

func writeFilePreserveMode(path string, data []byte) error {
	mode := os.FileMode(0644)
	if fi, err := os.Stat(path); err == nil {
		mode = fi.Mode().Perm()
	}
	return os.WriteFile(path, data, mode)
}

func cmdLanguages(w io.Writer) {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("LANGUAGE", "LABEL", "PARSER")
	for _, l := range lang.Languages() {
		t.Row(string(l), l.Label(), string(l.Parser()))
	}
	fmt.Fprintln(w, t.String())
}

func cmdInit(args []string, w io.Writer) int {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	asYAML := fs.Bool("yaml", false, "Write .codefmt.yaml instead of JSON")
	if err := fs.Parse(args); err != nil {
		return flagExit(err)
	}
	path := config.FileNames[0]
	if *asYAML {
		path = config.FileNames[1]
	}
	if existing := config.Find("."); existing != "" {
		fmt.Fprintln(w, existing, "already exists; not overwriting")
		return exitOK
	}
	if err := config.Save(path, config.Default()); err != nil {
		fmt.Fprintln(w, "Could not write config:", err)
		return exitChanged
	}
	fmt.Fprintln(w, "Wrote", path)
	return exitOK
}

func cmdDoctor(args []string, w io.Writer) int {
	fs := flag.NewFlagSet("doctor", flag.ContinueOnError)
	common := addCommon(fs)
	if err := fs.Parse(args); err != nil {
		return flagExit(err)
	}
	ok := true
	mark := func(good bool, msg string) {
		if good {
			fmt.Fprintf(w, "  ✓ %s\n", msg)
		} else {
			fmt.Fprintf(w, "  ✗ %s\n", msg)
		}
	}

	fmt.Fprintln(w, "Dependency checks:")
	prettier := proc.FindBinary("prettier")
	mark(prettier != "", pathOrMissing("prettier", prettier))
	npx := proc.FindBinary("npx")
	mark(npx != "", pathOrMissing("npx", npx))
	mark(clipboard.Available(), "system clipboard (falls back to OSC 52 when missing)")

	cfg, err := common.loadConfig()
	if err != nil {
		ok = false
		mark(false, "config: "+err.Error())
	} else {
		src := config.Find(config.SearchDirs()...)
		if *common.config != "" {
			src = *common.config
		}
		if src == "" {
			src = "defaults"
		}
		mark(true, "config: "+src)
		settings := cfg.FormatSettings()
		settings.Logger = log.New(io.Discard)
		if _, engine, err := format.New(settings); err != nil {
			ok = false
			mark(false, "engine: "+err.Error())
		} else {
			mark(true, "engine: "+string(engine))
			if engine == format.EngineBuiltin {
				fmt.Fprintln(w, "    builtin engine formats json and html only; install prettier for the rest")
			}
		}
	}
	if prettier == "" && npx == "" {
		ok = false
	}
	if ok {
		fmt.Fprintln(w, "All checks passed.")
		return exitOK
	}
	fmt.Fprintln(w, "Problems detected. Fix the items marked ✗ and retry.")
	return exitChanged
}

func pathOrMissing(name, path string) string {
	if path == "" {
		return name + " not found in PATH"
	}
	return name + " found at " + filepath.Clean(path)
}

// flagExit maps a flag parse error to an exit code; -h is not a failure.
func flagExit(err error) int {
	if errors.Is(err, flag.ErrHelp) {
		return exitOK
	}
	return exitFailed
}

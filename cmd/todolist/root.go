package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"k8s.io/klog/v2"

	"github.com/phyten/todolist/internal/config"
	"github.com/phyten/todolist/internal/engine"
	engineopts "github.com/phyten/todolist/internal/engine/opts"
	"github.com/phyten/todolist/internal/output"
	"github.com/phyten/todolist/internal/termcolor"
	"github.com/phyten/todolist/internal/util"
)

// app carries the process environment so tests can replace it.
type app struct {
	stdout  io.Writer
	stderr  io.Writer
	getenv  func(string) string
	environ func() []string
	getwd   func() (string, error)
}

func newApp() *app {
	return &app{
		stdout:  os.Stdout,
		stderr:  os.Stderr,
		getenv:  os.Getenv,
		environ: os.Environ,
		getwd:   os.Getwd,
	}
}

type rootFlags struct {
	configPath string
	verbose    bool
	quiet      bool
	recurse    bool
	forceColor bool
	color      string
	output     string
	jobs       int
	excludes   []string
	tasks      []string
	fileTypes  []string
	progress   bool
	noProgress bool
	truncate   int
}

func newRootCommand(a *app) *cobra.Command {
	var f rootFlags
	cmd := &cobra.Command{
		Use:   "todolist [flags] <files or directories>...",
		Short: "List TODO, FIXME and other task markers in source files",
		Long: `todolist scans files, or every matching file in the given directories,
for task markers such as TODO and FIXME and prints where they occur.

Markers, their priorities and the scanned file types come from a
configuration file (see --config), TODOLIST_* environment variables,
and flags, in increasing order of precedence.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Usage()
			}
			return a.run(cmd, args, &f)
		},
	}
	cmd.SetOut(a.stdout)
	cmd.SetErr(a.stderr)

	fs := cmd.Flags()
	fs.StringVarP(&f.configPath, "config", "c", "", "config file, or a bare name looked up in $XDG_CONFIG_HOME/todolist")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "print scan statistics")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "hide the header")
	fs.BoolVarP(&f.recurse, "recurse", "r", false, "descend into subdirectories")
	fs.BoolVarP(&f.forceColor, "format", "f", false, "force colored output (same as --color=always)")
	fs.StringVar(&f.color, "color", "auto", "auto|always|never")
	fs.StringVarP(&f.output, "output", "o", "text", "text|md|json|ndjson|csv")
	fs.IntVarP(&f.jobs, "jobs", "j", engineopts.DefaultJobs(), "max parallel file scans (1-64)")
	fs.StringArrayVarP(&f.excludes, "exclude", "e", nil, "glob of paths to skip (repeatable, ** supported)")
	fs.StringArrayVarP(&f.tasks, "task", "t", nil, "task marker as TEXT[=PRIORITY] (repeatable, replaces configured tasks)")
	fs.StringArrayVar(&f.fileTypes, "types", nil, "file extensions to scan (repeatable, replaces configured types)")
	fs.BoolVar(&f.progress, "progress", false, "force progress on stderr even when piped")
	fs.BoolVar(&f.noProgress, "no-progress", false, "disable progress")
	fs.IntVar(&f.truncate, "truncate", 0, "truncate task text to N columns (0=unlimited)")
	addKlogFlags(fs)
	return cmd
}

// addKlogFlags exposes klog's flags; its -v becomes --log-level because -v
// is taken by --verbose.
func addKlogFlags(fs *pflag.FlagSet) {
	klogFlags := flag.NewFlagSet("klog", flag.ContinueOnError)
	klog.InitFlags(klogFlags)
	klogFlags.VisitAll(func(gf *flag.Flag) {
		pf := pflag.PFlagFromGoFlag(gf)
		if gf.Name == "v" {
			pf.Name = "log-level"
			pf.Shorthand = ""
		}
		fs.AddFlag(pf)
	})
}

func (a *app) run(cmd *cobra.Command, roots []string, f *rootFlags) error {
	scan, ui, err := a.settings(cmd, f)
	if err != nil {
		return err
	}

	opts := engineopts.Defaults(roots)
	scan.ApplyToOptions(&opts)
	if err := engineopts.NormalizeAndValidate(&opts); err != nil {
		return err
	}
	progress := util.NewProgress(a.stderr, util.ShouldShowProgress(f.progress, f.noProgress))
	opts.Observer = progress

	rep, err := engine.Run(cmd.Context(), opts)
	progress.Done()
	if err != nil {
		return err
	}
	for i := range rep.Errors {
		klog.Warningf("skipped %v", &rep.Errors[i])
	}
	for _, msg := range unlistedNotFound(rep, ui.Output) {
		klog.Warning(msg)
	}

	out := cmd.OutOrStdout()
	mode, err := termcolor.ParseMode(ui.Color)
	if err != nil {
		return err
	}
	stdout, _ := out.(*os.File)
	terminal := termcolor.Probe(mode, stdout, termcolor.EnvMap(a.environ()))
	textOpts := output.TextOptions{
		Color:    terminal.Enabled,
		Palette:  terminal.Palette(),
		Verbose:  ui.Verbose,
		Truncate: f.truncate,
	}
	if ui.Output == "text" && !ui.Quiet {
		if err := output.WriteHeader(out, Version, textOpts); err != nil {
			return err
		}
	}
	return output.Write(out, ui.Output, rep, textOpts)
}

// unlistedNotFound returns a notice per missing root for the formats that
// have no place for them; text and JSON reports include them already.
func unlistedNotFound(rep *engine.Report, format string) []string {
	if format == "text" || format == "json" {
		return nil
	}
	out := make([]string, 0, len(rep.NotFound))
	for _, root := range rep.NotFound {
		out = append(out, "no files found: "+root)
	}
	return out
}

// settings merges defaults, the config file, TODOLIST_* and flags.
func (a *app) settings(cmd *cobra.Command, f *rootFlags) (config.ScanSettings, config.UISettings, error) {
	var scan config.ScanSettings
	var ui config.UISettings

	fileCfg, err := a.loadConfigFile(f.configPath)
	if err != nil {
		return scan, ui, err
	}
	envCfg, err := config.FromEnv(a.getenv)
	if err != nil {
		return scan, ui, err
	}
	flagCfg, err := flagLayer(cmd.Flags(), f)
	if err != nil {
		return scan, ui, err
	}

	base := config.ScanSettings{Jobs: engineopts.DefaultJobs()}
	scan, ui = config.Merge(base, config.DefaultUISettings(), config.Default(), fileCfg, envCfg, flagCfg)
	if scan, err = config.NormalizeScan(scan); err != nil {
		return scan, ui, err
	}
	if ui, err = config.NormalizeUI(ui); err != nil {
		return scan, ui, err
	}
	return scan, ui, nil
}

func (a *app) loadConfigFile(explicit string) (config.Config, error) {
	if explicit == "" {
		explicit = a.getenv("TODOLIST_CONFIG")
	}
	cwd, err := a.getwd()
	if err != nil {
		return config.Config{}, err
	}
	path, source, err := config.Find(cwd, explicit, a.getenv("XDG_CONFIG_HOME"), a.getenv("HOME"))
	if err != nil {
		return config.Config{}, err
	}
	if path == "" {
		klog.V(1).Info("config: using built-in defaults")
		return config.Config{}, nil
	}
	klog.V(1).Infof("config: %s (%s)", path, source)
	return config.Load(path)
}

// flagLayer turns explicitly set flags into the top configuration layer.
func flagLayer(fs *pflag.FlagSet, f *rootFlags) (config.Config, error) {
	var cfg config.Config
	if fs.Changed("verbose") {
		cfg.UI.Verbose = &f.verbose
	}
	if fs.Changed("quiet") {
		cfg.UI.Quiet = &f.quiet
	}
	if fs.Changed("color") {
		cfg.UI.Color = &f.color
	} else if f.forceColor {
		always := termcolor.ModeAlways.String()
		cfg.UI.Color = &always
	}
	if fs.Changed("output") {
		cfg.UI.Output = &f.output
	}
	if fs.Changed("recurse") {
		cfg.Scan.Recurse = &f.recurse
	}
	if fs.Changed("jobs") {
		cfg.Scan.Jobs = &f.jobs
	}
	if fs.Changed("exclude") {
		excludes := append([]string(nil), f.excludes...)
		cfg.Scan.Excludes = &excludes
	}
	if fs.Changed("types") {
		types := engineopts.SplitMulti(f.fileTypes)
		cfg.Scan.FileTypes = &types
	}
	if fs.Changed("task") {
		tasks, err := engineopts.ParsePatterns(f.tasks)
		if err != nil {
			return cfg, fmt.Errorf("--task: %w", err)
		}
		cfg.Scan.Tasks = &tasks
	}
	return cfg, nil
}

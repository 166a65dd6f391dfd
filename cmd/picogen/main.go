package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"runtime/debug"
	"strings"

	"github.com/calumari/picolua/internal/config"
	"github.com/calumari/picolua/internal/fold"
	"github.com/calumari/picolua/internal/generator"
	"github.com/calumari/picolua/internal/logs"
)

// deriveVersion inspects build info for module version or vcs revision.
// preference order: module semantic version -> short commit hash -> "devel".
func deriveVersion() string {
	if bi, ok := debug.ReadBuildInfo(); ok {
		if bi.Main.Version != "" && bi.Main.Version != "(devel)" {
			return bi.Main.Version
		}
		var revision string
		for _, s := range bi.Settings {
			if s.Key == "vcs.revision" && s.Value != "" {
				revision = s.Value
				break
			}
		}
		if len(revision) >= 12 { // short hash for readability
			return revision[:12]
		}
		if revision != "" {
			return revision
		}
	}
	return "devel"
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		fmt.Fprintf(os.Stderr, "picogen: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("picogen", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		input        string
		output       string
		configPath   string
		hostTable    string
		varPrefix    string
		shortCircuit bool
		noNil        bool
		indent       bool
		list         bool
		verbose      bool
		logFile      string
	)
	fs.StringVar(&input, "input", "-", "Annotated program (YAML) to translate, - for stdin")
	fs.StringVar(&output, "output", "-", "Output Lua file, - for stdout")
	fs.StringVar(&configPath, "config", "", "Optional CUE file with generator settings; explicit flags win")
	fs.StringVar(&hostTable, "host", generator.DefaultHostTable, "Name of the Lua table holding user functions")
	fs.StringVar(&varPrefix, "prefix", generator.DefaultVarPrefix, "Prefix for mangled variable names (must start with __)")
	fs.BoolVar(&shortCircuit, "short-circuit", false, "Render and/or with native short-circuit operators")
	fs.BoolVar(&noNil, "no-nil", false, "Reject the null literal of optional references")
	fs.BoolVar(&indent, "indent", false, "Indent nested blocks")
	fs.BoolVar(&list, "list", false, "Print the host-callable function names instead of code")
	fs.BoolVar(&verbose, "v", false, "Log debug output")
	fs.StringVar(&logFile, "log-file", "", "Also write JSON logs to this file")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: picogen [flags]\n")
		fmt.Fprintf(stderr, "\nPicogen translates an annotated pico program into Lua.\n\n")
		fmt.Fprintf(stderr, "Flags:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nExample:\n")
		fmt.Fprintf(stderr, "  picogen -input=game.yaml -output=game.lua -indent\n")
	}
	if err := fs.Parse(args); err != nil {
		return err
	}

	level := new(slog.LevelVar)
	if verbose {
		level.Set(slog.LevelDebug)
	}
	var jsonOut io.Writer
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return err
		}
		defer f.Close()
		jsonOut = f
	}
	logger := logs.New(stderr, jsonOut, level)

	opts := config.Default()
	if configPath != "" {
		var err error
		if opts, err = config.Load(configPath, opts); err != nil {
			return err
		}
		logger.Debug("loaded config", "path", configPath)
	}
	// explicit flags override the config file
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "host":
			opts.Generator.HostTable = hostTable
		case "prefix":
			opts.Generator.VarPrefix = varPrefix
		case "short-circuit":
			opts.Generator.ShortCircuit = shortCircuit
		case "no-nil":
			opts.Generator.NullLiteral = !noNil
		case "indent":
			opts.Indent = indent
		}
	})

	gen, err := generator.New(opts.Generator)
	if err != nil {
		return err
	}

	in := stdin
	if input != "-" {
		f, err := os.Open(input)
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}
	file, err := fold.Decode(in)
	if err != nil {
		return err
	}

	if list {
		defs := fold.Definitions(file)
		for _, name := range defs.FunctionNames() {
			fmt.Fprintln(stdout, gen.FuncID(name))
		}
		return nil
	}

	var folderOpts []fold.Option
	folderOpts = append(folderOpts, fold.WithLogger(logger))
	if opts.Indent {
		folderOpts = append(folderOpts, fold.WithIndent())
	}
	code, err := fold.New(gen, folderOpts...).Program(ctx, file)
	if err != nil {
		return err
	}

	// build a simplified canonical command representation instead of raw argv
	cmdParts := []string{"picogen"}
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "log-file" || f.Name == "v" {
			return
		}
		cmdParts = append(cmdParts, "-"+f.Name+"="+f.Value.String())
	})
	header := "-- Code generated by picogen " + deriveVersion() + ". DO NOT EDIT.\n" +
		"-- " + strings.Join(cmdParts, " ") + "\n"

	out := stdout
	if output != "-" {
		f, err := os.Create(output)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}
	if _, err := io.WriteString(out, header+code); err != nil {
		return err
	}
	logger.Debug("generated", "functions", len(file.Functions), "statements", len(file.Main), "bytes", len(header)+len(code), "output", output)
	return nil
}

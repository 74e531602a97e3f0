package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/afero"
	jww "github.com/spf13/jwalterweatherman"
	"github.com/sunwei/templatehtml/common/loggers"
	"github.com/sunwei/templatehtml/config"
	"github.com/sunwei/templatehtml/hostlib"
	"github.com/sunwei/templatehtml/plugin"
	"github.com/sunwei/templatehtml/sitefs"
)

const (
	defaultConfigName = "templatehtml"
	defaultAddr       = ":5173"
)

func main() {
	fd := os.Stderr.Fd()
	color.NoColor = !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, sitefs.Os, os.Args[1:], os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, color.RedString("Error: %s", err))
		os.Exit(1)
	}
}

func usage(flags *flag.FlagSet) func() {
	return func() {
		fmt.Fprintf(flags.Output(), "Usage: templatehtml [flags] build|serve [-addr %s]\n\nFlags:\n", defaultAddr)
		flags.PrintDefaults()
	}
}

func run(ctx context.Context, fs afero.Fs, args []string, stderr io.Writer) error {
	flags := flag.NewFlagSet("templatehtml", flag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.Usage = usage(flags)

	var (
		configFile = flags.String("config", "", "config file (toml, yaml or json), default templatehtml.{toml,yaml,yml,json} in root")
		root       = flags.String("root", "", "project root")
		verbose    = flags.Bool("v", false, "verbose output")
		debug      = flags.Bool("debug", false, "debug output")
	)
	flags.String("mode", "", "mode, used to pick the .env.<mode> files")
	flags.String("base", "", "public base path")
	flags.String("outDir", "", "output directory, relative to root")
	if err := flags.Parse(args); err != nil {
		return err
	}

	threshold := jww.LevelWarn
	switch {
	case *debug:
		threshold = jww.LevelDebug
	case *verbose:
		threshold = jww.LevelInfo
	}
	logger := loggers.NewLogger(threshold, stderr)

	fileCfg, err := loadConfig(fs, *configFile, *root)
	if err != nil {
		return err
	}
	cfg := config.Layered(config.FromFlags(flags, "root", "mode", "base", "outDir"), fileCfg)

	cmd := flags.Arg(0)
	switch cmd {
	case hostlib.CommandBuild:
		h, err := newHost(cfg, fs, logger)
		if err != nil {
			return err
		}
		res, err := h.Build(ctx)
		if err != nil {
			return err
		}
		if n := logger.WarnCount(); n > 0 {
			logger.Warnf("Built with %d warnings", n)
		}
		fmt.Fprintf(stderr, "Built %d files\n", res.Published)
		return nil
	case hostlib.CommandServe:
		serveFlags := flag.NewFlagSet("serve", flag.ContinueOnError)
		serveFlags.SetOutput(stderr)
		serveFlags.String("addr", "", "listen address, default "+defaultAddr)
		if err := serveFlags.Parse(flags.Args()[1:]); err != nil {
			return err
		}
		cfg = config.Layered(config.FromFlags(serveFlags, "addr"), cfg)
		listen := cfg.GetString("addr")
		if listen == "" {
			listen = defaultAddr
		}

		h, err := newHost(cfg, fs, logger)
		if err != nil {
			return err
		}
		err = h.Serve(ctx, listen)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	case "":
		flags.Usage()
		return errors.New("missing command")
	default:
		flags.Usage()
		return fmt.Errorf("unknown command %q", cmd)
	}
}

// loadConfig loads filename, or the default config file in root if
// filename is empty. A missing default config file is an empty config.
func loadConfig(fs afero.Fs, filename, root string) (config.Provider, error) {
	if filename != "" {
		return config.FromFile(fs, filename)
	}
	return config.FromDir(fs, root, defaultConfigName)
}

func newHost(cfg config.Provider, fs afero.Fs, logger loggers.Logger) (*hostlib.Host, error) {
	opts, err := plugin.DecodeOptions(cfg.GetStringMap("plugin"))
	if err != nil {
		return nil, err
	}
	opts.Logger = logger
	opts.MinifyConfig = cfg

	plugins, err := plugin.New(opts)
	if err != nil {
		return nil, err
	}

	return hostlib.New(hostlib.HostConfig{
		Fs:        fs,
		Root:      cfg.GetString("root"),
		Mode:      cfg.GetString("mode"),
		Base:      cfg.GetString("base"),
		OutDir:    cfg.GetString("outDir"),
		Define:    cfg.GetStringMap("define"),
		EnvPrefix: config.GetStringSlicePreserveString(cfg, "envPrefix"),
		Logger:    logger,
	}, plugins...)
}

package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/rs/zerolog"

	"github.com/khalid-nowaf/searchtree/pkg/registry"
	"github.com/khalid-nowaf/searchtree/pkg/searchtree"
)

var ErrNotFound = errors.New("not found")

// Globals are the flags shared by every command.
type Globals struct {
	DB        string          `help:"Registry file, its extension selects JSON or YAML" default:"searchtree.json" env:"SEARCHTREE_DB" type:"path"`
	LogLevel  string          `help:"Log level" default:"info" enum:"trace,debug,info,warn,error" env:"SEARCHTREE_LOG_LEVEL"`
	LogFormat string          `help:"Log format" default:"text" enum:"text,json"`
	Cascade   bool            `help:"Remove keys left without record and children after a removal"`
	Config    kong.ConfigFlag `help:"Load flag values from a JSON file"`
}

type CLI struct {
	Globals

	Build  BuildCmd  `cmd:"" help:"Build a registry from CSV or JSON record files"`
	Lookup LookupCmd `cmd:"" help:"Find the record stored under a key"`
	Locate LocateCmd `cmd:"" help:"Find the key a record ID is stored under"`
	Remove RemoveCmd `cmd:"" help:"Remove keys from the registry"`
	Export ExportCmd `cmd:"" help:"Write all records to a CSV, TSV or JSON file"`
}

// Context is bound to every command's Run method.
type Context struct {
	*Globals
	Logger zerolog.Logger
	Out    io.Writer
}

// Run parses args and executes the selected command. Command output goes to
// stdout, logs and usage go to stderr.
func Run(args []string, stdout io.Writer, stderr io.Writer, options ...kong.Option) error {
	cli := &CLI{}

	parser, err := kong.New(cli, append([]kong.Option{
		kong.Name("searchtree"),
		kong.Description("Index records by key in a labeled-edge search tree."),
		kong.UsageOnError(),
		kong.Writers(stdout, stderr),
		kong.Configuration(kong.JSON),
	}, options...)...)
	if err != nil {
		return err
	}

	kctx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	logger, err := NewLogger(cli.LogLevel, cli.LogFormat, stderr)
	if err != nil {
		return err
	}

	return kctx.Run(&Context{
		Globals: &cli.Globals,
		Logger:  logger,
		Out:     stdout,
	})
}

func (ctx *Context) dbFormat() (searchtree.Format, error) {
	return searchtree.ParseFormat(filepath.Ext(ctx.DB))
}

func (ctx *Context) registryOptions(extra ...registry.Option) []registry.Option {
	opts := []registry.Option{
		registry.WithLogger(ctx.Logger),
	}
	if ctx.Cascade {
		opts = append(opts, registry.WithCascadePrune())
	}
	return append(opts, extra...)
}

// loadRegistry reads the registry from the db file
func (ctx *Context) loadRegistry(extra ...registry.Option) (*registry.Registry, error) {
	format, err := ctx.dbFormat()
	if err != nil {
		return nil, err
	}

	file, err := os.Open(ctx.DB)
	if err != nil {
		return nil, fmt.Errorf("can not open registry: %w", err)
	}
	defer file.Close()

	reg, err := registry.Load(file, format, ctx.registryOptions(extra...)...)
	if err != nil {
		return nil, fmt.Errorf("can not load registry %s: %w", ctx.DB, err)
	}
	return reg, nil
}

// saveRegistry writes the registry next to the db file and renames it into
// place, the old db stays intact when writing fails
func (ctx *Context) saveRegistry(reg *registry.Registry) error {
	format, err := ctx.dbFormat()
	if err != nil {
		return err
	}

	file, err := os.CreateTemp(filepath.Dir(ctx.DB), filepath.Base(ctx.DB)+".*.tmp")
	if err != nil {
		return fmt.Errorf("can not create registry: %w", err)
	}
	tmpPath := file.Name()

	err = reg.Save(file, format)
	if closeErr := file.Close(); err == nil && closeErr != nil {
		err = fmt.Errorf("failed to write registry: %w", closeErr)
	}
	if err == nil {
		err = os.Rename(tmpPath, ctx.DB)
	}
	if err != nil {
		_ = os.Remove(tmpPath)
		return err
	}

	ctx.Logger.Info().
		Str("db", ctx.DB).
		Int("records", reg.Len()).
		Msg("Saved registry")
	return nil
}

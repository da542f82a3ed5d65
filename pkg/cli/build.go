package cli

import (
	"errors"
	"io/fs"
	"os"

	"github.com/khalid-nowaf/searchtree/pkg/registry"
)

type BuildCmd struct {
	Files       []string `arg:"" type:"existingfile" help:"Input files with records in CSV, TSV or JSON format"`
	KeyCol      string   `help:"Column holding the record key" default:"key"`
	IdCol       string   `help:"Column holding the record ID" default:"id"`
	Segmenter   string   `help:"How keys are split into edges" default:"rune" enum:"rune,path,word"`
	OnDuplicate string   `help:"What to do with a record whose ID is stored under another key" default:"move" enum:"move,ignore"`
	Append      bool     `help:"Insert into the existing registry instead of starting a new one"`
}

// Run executes the build command.
func (cmd *BuildCmd) Run(ctx *Context) error {
	reg, err := cmd.openRegistry(ctx)
	if err != nil {
		return err
	}

	stats := &Stats{}
	for _, file := range cmd.Files {
		ctx.Logger.Info().Str("file", file).Msg("Reading records")
		if err := cmd.insertRows(ctx, reg, file, stats); err != nil {
			return err
		}
	}

	ctx.Logger.Info().Msgf("Build complete | %s", stats)

	return ctx.saveRegistry(reg)
}

func (cmd *BuildCmd) openRegistry(ctx *Context) (*registry.Registry, error) {
	segmenter, err := registry.SegmenterByName(cmd.Segmenter)
	if err != nil {
		return nil, err
	}

	policy := registry.MoveOnDuplicate
	if cmd.OnDuplicate == "ignore" {
		policy = registry.IgnoreOnDuplicate
	}

	if cmd.Append {
		if _, err := os.Stat(ctx.DB); err == nil {
			reg, err := ctx.loadRegistry(registry.WithIDConflictPolicy(policy))
			if err != nil {
				return nil, err
			}
			if reg.Segmenter().Name() != segmenter.Name() {
				ctx.Logger.Warn().
					Str("stored", reg.Segmenter().Name()).
					Str("requested", segmenter.Name()).
					Msg("Keeping the segmenter of the existing registry")
			}
			return reg, nil
		} else if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	return registry.New(ctx.registryOptions(
		registry.WithSegmenter(segmenter),
		registry.WithIDConflictPolicy(policy),
	)...), nil
}

// insertRows parses a file and inserts its records into the registry.
func (cmd *BuildCmd) insertRows(ctx *Context, reg *registry.Registry, file string, stats *Stats) error {
	return readRows(file, func(row Row) error {
		key, record, err := row.toRecord(cmd.KeyCol, cmd.IdCol)
		if err != nil {
			return err
		}
		stats.Input++

		result := reg.Insert(key, record)
		if result.Inserted() {
			stats.Inserted++
		} else {
			stats.Ignored++
		}

		if _, ok := result.ConflictType.(registry.NoConflict); ok {
			ctx.Logger.Debug().Msg(result.String())
			return nil
		}
		stats.Conflicts++
		ctx.Logger.Info().
			Str("conflict", result.ConflictType.String()).
			Msg(result.String())
		return nil
	})
}

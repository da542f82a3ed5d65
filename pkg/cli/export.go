package cli

import (
	"fmt"
	"os"
)

type ExportCmd struct {
	Out      string   `help:"Output file, its extension selects CSV, TSV or JSON" required:"" type:"path"`
	KeyCol   string   `help:"Column to write the record key to" default:"key"`
	IdCol    string   `help:"Column to write the record ID to" default:"id"`
	DropKeys []string `help:"Attributes to leave out"`
}

// Run executes the export command.
func (cmd *ExportCmd) Run(ctx *Context) error {
	reg, err := ctx.loadRegistry()
	if err != nil {
		return err
	}

	stats := &Stats{}
	writer, err := WriterFor(cmd.Out, Columns{
		KeyCol:   cmd.KeyCol,
		IdCol:    cmd.IdCol,
		DropKeys: cmd.DropKeys,
	}, stats)
	if err != nil {
		return err
	}

	file, err := os.Create(cmd.Out)
	if err != nil {
		return err
	}
	defer file.Close()

	if err := writer.Write(file, reg.Records()); err != nil {
		return fmt.Errorf("failed to write %s: %w", cmd.Out, err)
	}

	ctx.Logger.Info().Str("file", cmd.Out).Msgf("Export complete | %s", stats)
	return nil
}

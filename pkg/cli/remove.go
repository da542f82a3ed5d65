package cli

import (
	"github.com/khalid-nowaf/searchtree/pkg/registry"
)

type RemoveCmd struct {
	Keys []string `arg:"" help:"Keys to remove"`
}

// Run executes the remove command. Keys without a record are skipped.
func (cmd *RemoveCmd) Run(ctx *Context) error {
	reg, err := ctx.loadRegistry()
	if err != nil {
		return err
	}

	stats := &Stats{}
	for _, key := range cmd.Keys {
		result, err := reg.Remove(key)
		if err != nil {
			return err
		}
		if _, ignored := result.Action.(registry.IgnoreRemoval); ignored {
			ctx.Logger.Warn().Str("key", key).Msg("No record stored under key")
			continue
		}
		stats.Removed++
		ctx.Logger.Info().Msg(result.String())
	}

	ctx.Logger.Info().Msgf("Remove complete | %s", stats)
	return ctx.saveRegistry(reg)
}

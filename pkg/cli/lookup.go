package cli

import (
	"fmt"

	"github.com/goccy/go-json"

	"github.com/khalid-nowaf/searchtree/pkg/registry"
)

type LookupCmd struct {
	Key     string `arg:"" help:"Key to look up"`
	Prefix  bool   `help:"Fall back to the deepest key reached when the key is not stored" xor:"match"`
	Longest bool   `help:"Fall back to the longest stored prefix of the key" xor:"match"`
}

type lookupOutput struct {
	Key    string           `json:"key"`
	Exact  bool             `json:"exact"`
	Record *registry.Record `json:"record"`
}

// Run executes the lookup command.
func (cmd *LookupCmd) Run(ctx *Context) error {
	reg, err := ctx.loadRegistry()
	if err != nil {
		return err
	}

	var match *registry.LookupResult
	if cmd.Longest {
		match, err = reg.LongestMatch(cmd.Key)
	} else {
		match, err = reg.Lookup(cmd.Key, cmd.Prefix)
	}
	if err != nil {
		return err
	}
	if match == nil {
		return fmt.Errorf("key %q: %w", cmd.Key, ErrNotFound)
	}

	return printJson(ctx, lookupOutput{
		Key:    cmd.Key,
		Exact:  match.Exact,
		Record: match.Record,
	})
}

type LocateCmd struct {
	ID string `arg:"" help:"Record ID to locate"`
}

// Run executes the locate command.
func (cmd *LocateCmd) Run(ctx *Context) error {
	reg, err := ctx.loadRegistry()
	if err != nil {
		return err
	}

	located, found := reg.Locate(cmd.ID)
	if !found {
		return fmt.Errorf("id %q: %w", cmd.ID, ErrNotFound)
	}
	return printJson(ctx, located)
}

func printJson(ctx *Context, value any) error {
	encoder := json.NewEncoder(ctx.Out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(value)
}

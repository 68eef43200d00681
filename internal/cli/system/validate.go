package system

import (
	"fmt"

	"github.com/julianstephens/headcount/internal/cli"
	"github.com/julianstephens/headcount/internal/validation"
)

type ValidateCmd struct {
	Fix bool `help:"Remove duplicate records, keeping the first of each (date, service)."`
}

func (c *ValidateCmd) Run(ctx *cli.Context) error {
	recs, err := ctx.Store.GetAllRecords()
	if err != nil {
		return fmt.Errorf("failed to get records: %w", err)
	}

	result := validation.New().ValidateRecords(recs)
	ctx.Print(result.FormatReport())
	if !result.HasConflicts() {
		ctx.Println()
		return nil
	}

	if !c.Fix {
		return nil
	}

	fixed, actions := validation.AutoFixDuplicateRecords(result.Conflicts, recs)
	if len(actions) == 0 {
		ctx.Println("Nothing to fix automatically.")
		return nil
	}
	if err := ctx.Store.SaveRecords(fixed); err != nil {
		return fmt.Errorf("failed to save fixed records: %w", err)
	}

	ctx.Println()
	for _, a := range actions {
		ctx.Printf("✓ %s\n", a.Action)
	}
	return nil
}

package main

import (
	"encoding/json"
	"fmt"

	"github.com/fwojciec/ingest"
)

// Run executes the get command.
func (c *GetCmd) Run(deps *Dependencies) error {
	result, err := deps.Ingest.Ingest(deps.Ctx, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", ingest.ErrorMessage(err))
		return err
	}

	if c.JSON {
		enc := json.NewEncoder(deps.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	fmt.Fprintln(deps.Stdout, result.Title)
	fmt.Fprintln(deps.Stdout)
	fmt.Fprintln(deps.Stdout, result.Text)
	return nil
}

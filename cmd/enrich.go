package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/s0up4200/ziclient/contacts"
)

// enrichCmd groups the enrichment commands
var enrichCmd = &cobra.Command{
	Use:   "enrich",
	Short: "Enrich known ZoomInfo contacts",
}

// hasMovedCmd represents the has-moved check
var hasMovedCmd = &cobra.Command{
	Use:   "has-moved PERSON_ID...",
	Short: "Check whether people have left their listed company",
	Long: `Check whether one or more ZoomInfo person ids have changed employer.

Lookups run concurrently up to search.enrich_concurrency. A failed lookup is
reported alongside the others and makes the command exit non-zero.`,
	Args:    cobra.MinimumNArgs(1),
	PreRunE: initializeApp,
	RunE:    runHasMoved,
}

func init() {
	rootCmd.AddCommand(enrichCmd)
	enrichCmd.AddCommand(hasMovedCmd)

	hasMovedCmd.Flags().BoolVar(&jsonOutput, "json", false, "print results as JSON")
}

func runHasMoved(cmd *cobra.Command, args []string) error {
	ids := make([]contacts.ID, 0, len(args))
	for _, arg := range args {
		ids = append(ids, contacts.ID(arg))
	}

	result := service.CheckHasMovedBatch(cmd.Context(), ids)

	if jsonOutput {
		if err := printJSON(hasMovedJSON(result)); err != nil {
			return err
		}
	} else {
		fmt.Println(contacts.NewConsoleFormatter().FormatHasMoved(result))
	}

	if len(result.Failed) > 0 {
		return fmt.Errorf("%d of %d lookups failed", len(result.Failed), result.Requested)
	}
	return nil
}

type hasMovedFailure struct {
	PersonID contacts.ID `json:"personId"`
	Error    string      `json:"error"`
}

type hasMovedOutput struct {
	Results []contacts.HasMoved `json:"results"`
	Failed  []hasMovedFailure   `json:"failed,omitempty"`
}

func hasMovedJSON(result contacts.BatchHasMovedResult) hasMovedOutput {
	out := hasMovedOutput{Results: result.Results}
	if out.Results == nil {
		out.Results = []contacts.HasMoved{}
	}
	for _, f := range result.Failed {
		out.Failed = append(out.Failed, hasMovedFailure{PersonID: f.PersonID, Error: f.Err.Error()})
	}
	return out
}

package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leondli/npsboard/internal/adapter/repository"
	"github.com/leondli/npsboard/internal/adapter/seed"
	"github.com/leondli/npsboard/internal/usecase/dashboard"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Work with seed files",
}

var seedCheckCmd = &cobra.Command{
	Use:   "check <file>",
	Short: "Validate a seed file by loading it into an empty dashboard",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := seed.LoadFile(args[0])
		if err != nil {
			return err
		}
		dash := dashboard.New(repository.NewMemory(), nil)
		res, err := f.Apply(context.Background(), dash)
		if err != nil {
			return err
		}
		ov, err := dash.Overview(context.Background())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if jsonOutput {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(map[string]any{"result": res, "overview": ov})
		}
		fmt.Fprintf(out, "%s: ok\n", args[0])
		fmt.Fprintf(out, "  %d tags, %d respondents, %d surveys, %d responses, %d widgets\n",
			res.Tags, res.Respondents, res.Surveys, res.Responses, res.Widgets)
		fmt.Fprintf(out, "  overall NPS %d (%s)\n", ov.Overall.Score, ov.Overall.Band)
		return nil
	},
}

func init() {
	seedCmd.AddCommand(seedCheckCmd)
}

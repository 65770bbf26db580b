package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/leondli/npsboard/internal/domain/entity"
	"github.com/leondli/npsboard/internal/usecase/nps"
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorYellow = "\033[33m"
	colorGreen  = "\033[32m"
)

var npsCmd = &cobra.Command{
	Use:   "nps <score>...",
	Short: "Compute the Net Promoter Score of a list of 0-10 ratings",
	Example: `  npsboard nps 10 9 8 3
  npsboard nps --json 9 9 6`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		scores, err := parseScores(args)
		if err != nil {
			return err
		}
		b := nps.TallyScores(scores)
		if jsonOutput {
			return printScoreJSON(cmd.OutOrStdout(), b)
		}
		printScore(cmd.OutOrStdout(), b, shouldUseColor())
		return nil
	},
}

func parseScores(args []string) ([]int, error) {
	scores := make([]int, 0, len(args))
	for _, a := range args {
		// Accept "9,10,3" as well as separate arguments
		for _, part := range strings.Split(a, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			n, err := strconv.Atoi(part)
			if err != nil {
				return nil, fmt.Errorf("invalid score %q", part)
			}
			if n < entity.MinScore || n > entity.MaxScore {
				return nil, fmt.Errorf("score %d out of range %d-%d", n, entity.MinScore, entity.MaxScore)
			}
			scores = append(scores, n)
		}
	}
	return scores, nil
}

func printScoreJSON(w io.Writer, b nps.Breakdown) error {
	score := b.Score()
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(struct {
		nps.Breakdown
		Score int    `json:"score"`
		Band  string `json:"band"`
	}{b, score, nps.Band(score)})
}

func printScore(w io.Writer, b nps.Breakdown, color bool) {
	score := b.Score()
	band := nps.Band(score)
	if color {
		band = bandColor(score) + band + colorReset
	}
	fmt.Fprintf(w, "NPS %d (%s)\n", score, band)
	fmt.Fprintf(w, "  promoters  %d\n", b.Promoters)
	fmt.Fprintf(w, "  passives   %d\n", b.Passives)
	fmt.Fprintf(w, "  detractors %d\n", b.Detractors)
	fmt.Fprintf(w, "  responses  %d\n", b.Total)
}

func bandColor(score int) string {
	switch {
	case score < 0:
		return colorRed
	case score < 30:
		return colorYellow
	default:
		return colorGreen
	}
}

// shouldUseColor honours NO_COLOR and CLICOLOR_FORCE, then checks for a terminal.
func shouldUseColor() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if strings.TrimSpace(os.Getenv("CLICOLOR_FORCE")) == "1" {
		return true
	}
	return term.IsTerminal(int(os.Stdout.Fd()))
}

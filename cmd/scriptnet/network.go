package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/OFFIS-RIT/scriptnet/backend/pkg/graph"

	"github.com/spf13/cobra"
)

var networkCmd = &cobra.Command{
	Use:   "network <movie>",
	Short: "Print the character network figure of a movie",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		movie := args[0]
		showPairs, _ := cmd.Flags().GetBool("pairs")

		file, err := scriptApp.ScriptFile(ctx, movie)
		if err != nil {
			return err
		}

		if showPairs {
			result, err := scriptApp.Network.BuildNetworkPairs(ctx, file)
			if err != nil {
				return err
			}
			printPairs(os.Stdout, result)
			return nil
		}

		figs, err := scriptApp.Network.BuildNetworkFigure(ctx, file, movie)
		if err != nil {
			return err
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(figs)
	},
}

func init() {
	networkCmd.Flags().Bool("pairs", false, "print the character and pair tallies instead of the figure")
}

func printPairs(w io.Writer, result graph.PairResult) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CHARACTER\tLINES")
	for _, c := range result.TopCharacters.Sorted() {
		fmt.Fprintf(tw, "%s\t%d\n", c.Name, c.Count)
	}
	fmt.Fprintln(tw)
	fmt.Fprintln(tw, "PAIR\tEXCHANGES")
	for _, p := range result.Pairs.Sorted() {
		fmt.Fprintf(tw, "%s\t%d\n", p.Name, p.Count)
	}
	tw.Flush()
}

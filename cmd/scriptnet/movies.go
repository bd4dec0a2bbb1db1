package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var moviesCmd = &cobra.Command{
	Use:   "movies",
	Short: "List the movies in the registry",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		movies, err := scriptApp.Registry.ListMovies(cmd.Context())
		if err != nil {
			return err
		}

		if jsonOutput {
			enc := json.NewEncoder(os.Stdout)
			return enc.Encode(map[string][]string{"movies": movies})
		}
		for _, name := range movies {
			fmt.Println(name)
		}
		return nil
	},
}

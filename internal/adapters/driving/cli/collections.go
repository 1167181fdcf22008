package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var collectionsJSON bool

var collectionsCmd = &cobra.Command{
	Use:   "collections",
	Short: "List the searchable collections",
	Args:  cobra.NoArgs,
	RunE:  runCollections,
}

func init() {
	collectionsCmd.Flags().BoolVar(&collectionsJSON, "json", false, "output collections as JSON")
	rootCmd.AddCommand(collectionsCmd)
}

type collectionOutput struct {
	Name    string `json:"name"`
	Label   string `json:"label"`
	Default bool   `json:"default"`
}

func runCollections(cmd *cobra.Command, _ []string) error {
	d, err := searchDeps()
	if err != nil {
		return err
	}

	defaults := d.Search.Defaults()
	collections := d.Search.Collections()

	if collectionsJSON {
		out := make([]collectionOutput, len(collections))
		for i, c := range collections {
			out[i] = collectionOutput{Name: c.Name, Label: c.Label, Default: c.Name == defaults.Collection}
		}
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal collections: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if len(collections) == 0 {
		cmd.Println("No collections configured.")
		return nil
	}

	for _, c := range collections {
		marker := " "
		if c.Name == defaults.Collection {
			marker = "*"
		}
		cmd.Printf("%s %-20s %s\n", marker, c.Name, c.Label)
	}
	return nil
}

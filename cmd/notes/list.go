package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dukerupert/sharenote/internal/model"
)

func newListCmd(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all notes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.session(cmd.Context())
			if err != nil {
				return err
			}
			list := s.State().Notes

			if asJSON {
				if list == nil {
					list = []model.Note{}
				}
				enc := json.NewEncoder(a.out)
				enc.SetIndent("", "  ")
				return enc.Encode(list)
			}

			if len(list) == 0 {
				fmt.Fprintln(a.out, "No notes yet.")
				return nil
			}
			for _, n := range list {
				printNote(a, n)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "output as JSON")
	return cmd
}

func printNote(a *app, n model.Note) {
	title := n.Title
	if title == "" {
		title = "(untitled)"
	}
	fmt.Fprintf(a.out, "%d\t%s\n", n.ID, title)
	if c := strings.TrimSpace(n.Content); c != "" {
		for _, line := range strings.Split(c, "\n") {
			fmt.Fprintf(a.out, "\t%s\n", line)
		}
	}
}

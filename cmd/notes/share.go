package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dukerupert/sharenote/internal/notes"
)

func newShareCmd(a *app) *cobra.Command {
	var show bool

	cmd := &cobra.Command{
		Use:   "share ID",
		Short: "Print the public read-only link for a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			s, err := a.session(cmd.Context())
			if err != nil {
				return err
			}
			n, ok := s.State().Find(id)
			if !ok {
				return fmt.Errorf("note %d: %w", id, notes.ErrNotFound)
			}

			fmt.Fprintln(a.out, a.client.ShareURL(n.ShareID))
			if !show {
				return nil
			}

			shared, err := a.client.Shared(cmd.Context(), n.ShareID)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "\n%s\n\n%s\n", shared.Title, shared.Content)
			return nil
		},
	}
	cmd.Flags().BoolVar(&show, "show", false, "also fetch and print the shared view")
	return cmd
}

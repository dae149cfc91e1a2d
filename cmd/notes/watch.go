package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dukerupert/sharenote/internal/model"
	"github.com/dukerupert/sharenote/internal/notes"
)

func newWatchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Print changes made by any client as they happen",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			s, err := a.session(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "watching %s (%s)\n", a.cfg.Server, s.Status())

			return notes.Watch(ctx, a.client.WatchURL(), func(ev model.Event) error {
				if err := s.Refresh(ctx, ev); err != nil {
					return err
				}
				describe(a, s, ev)
				return nil
			})
		},
	}
}

func describe(a *app, s *notes.Session, ev model.Event) {
	n, ok := s.State().Find(ev.NoteID)
	switch {
	case ev.Action == model.ActionDeleted || !ok:
		fmt.Fprintf(a.out, "%s\t%d\n", ev.Action, ev.NoteID)
	default:
		fmt.Fprintf(a.out, "%s\t%d\t%s\n", ev.Action, n.ID, n.Title)
	}
}


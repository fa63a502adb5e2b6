package main

import (
	"fmt"
	"text/tabwriter"

	"portfolio_backend/internal/app"
	"portfolio_backend/internal/repositories"

	"github.com/spf13/cobra"
)

var messagesLimit int

var messagesCmd = &cobra.Command{
	Use:   "messages",
	Short: "List the most recent contact messages",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := app.OpenDatabase(cfg)
		if err != nil {
			return err
		}
		if sqlDB, err := db.DB(); err == nil {
			defer sqlDB.Close()
		}

		msgs, err := repositories.NewContactRepository().FindRecent(db.WithContext(cmd.Context()), messagesLimit)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tRECEIVED\tFROM\tSUBJECT")
		for _, m := range msgs {
			fmt.Fprintf(w, "%d\t%s\t%s <%s>\t%s\n", m.ID, m.CreatedAt.Format("2006-01-02 15:04"), m.Name, m.Email, m.Subject)
		}
		return w.Flush()
	},
}

func init() {
	messagesCmd.Flags().IntVar(&messagesLimit, "limit", 20, "number of messages to show")
}

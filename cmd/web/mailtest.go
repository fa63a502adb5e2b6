package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"portfolio_backend/internal/app"
	"portfolio_backend/internal/email"

	"github.com/spf13/cobra"
)

var mailTo string

var mailTestCmd = &cobra.Command{
	Use:   "mail-test",
	Short: "Send one test message through the configured mail provider",
	RunE: func(cmd *cobra.Command, args []string) error {
		if mailTo == "" {
			return errors.New("--to is required")
		}

		mailer, err := app.NewMailer(cfg)
		if err != nil {
			return err
		}
		defer mailer.Close()

		ctx, cancel := context.WithTimeout(cmd.Context(), time.Duration(cfg.Email.SendTimeout)*time.Second)
		defer cancel()

		err = mailer.Send(ctx, &email.Email{
			To:      []string{mailTo},
			Subject: "Test message from " + cfg.Site.OwnerName,
			Body:    "If you can read this, outgoing mail is configured correctly.",
		})
		if err != nil {
			return fmt.Errorf("send failed: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "sent via %s backend to %s\n", cfg.Email.Backend, mailTo)
		return nil
	},
}

func init() {
	mailTestCmd.Flags().StringVar(&mailTo, "to", "", "recipient address")
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	paymentview "github.com/zhouzirui/empathic-coach/client/internal/view/payment"
)

func newPaymentStatusCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "payment-status <session-id>",
		Short: "Verify the outcome of a checkout session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.ErrOrStderr(), paymentview.Render(paymentview.Outcome{Kind: paymentview.KindLoading}, a.width()))
			outcome := paymentview.Resolve(cmd.Context(), a.client, args[0], a.logger)
			fmt.Fprintln(cmd.OutOrStdout(), paymentview.Render(outcome, a.width()))
			return nil
		},
	}
}

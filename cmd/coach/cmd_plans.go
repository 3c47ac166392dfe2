package main

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/browser"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	pricingview "github.com/zhouzirui/empathic-coach/client/internal/view/pricing"
)

func newPlansCmd(a *app) *cobra.Command {
	var pick bool

	cmd := &cobra.Command{
		Use:   "plans",
		Short: "Show the subscription catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			if !pick {
				fmt.Fprintln(out, pricingview.Header())
				fmt.Fprintln(out)
				fmt.Fprintln(out, pricingview.Cards(a.plans.List(), -1, "", a.width()))
				fmt.Fprintln(out)
				fmt.Fprintln(out, pricingview.Footer())
				return nil
			}

			picker := pricingview.New(cmd.Context(), a.plans.List(), a.client, a.profile(), a.opener())
			final, err := tea.NewProgram(picker, tea.WithContext(cmd.Context())).Run()
			if err != nil {
				return err
			}
			if m, ok := final.(pricingview.Model); ok && m.CheckoutURL() != "" {
				fmt.Fprintln(out, m.CheckoutURL())
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&pick, "pick", false, "choose a plan interactively and start checkout")
	return cmd
}

func newCheckoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "checkout <plan>",
		Short: "Start a hosted checkout for a plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			planID := strings.TrimSpace(args[0])
			if _, err := a.plans.Require(planID); err != nil {
				return err
			}

			fmt.Fprintln(cmd.ErrOrStderr(), "⏳ Processando...")
			target, err := pricingview.Begin(cmd.Context(), a.client, a.profile(), planID)
			if err != nil {
				a.logger.Error("failed to create checkout session", zap.String("plan", planID), zap.Error(err))
				fmt.Fprintln(cmd.ErrOrStderr(), pricingview.Banner(pricingview.ErrorMessage(err), a.width()))
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), target)
			if open := a.opener(); open != nil {
				if err := open(target); err != nil {
					a.logger.Warn("failed to open browser", zap.Error(err))
				}
			}
			return nil
		},
	}
}

// opener returns the browser launcher, or nil when COACH_OPEN_BROWSER is off.
func (a *app) opener() pricingview.Opener {
	if !a.cfg.UI.OpenBrowser {
		return nil
	}
	return browser.OpenURL
}

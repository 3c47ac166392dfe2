package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/zhouzirui/empathic-coach/client/internal/view/components"
)

func newDoctorCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check configuration and backend connectivity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			who := a.profile()

			fmt.Fprintf(out, "api url:     %s\n", a.cfg.API.BaseURL)
			fmt.Fprintf(out, "public url:  %s\n", a.cfg.Server.PublicURL)
			fmt.Fprintf(out, "listen addr: %s\n", a.cfg.Server.Addr)
			fmt.Fprintf(out, "profile:     %s (%s, %s)\n", a.cfg.Profile.Path, who.UserID, who.UserEmail)
			fmt.Fprintf(out, "log file:    %s\n", a.cfg.Log.File)

			ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
			defer cancel()
			started := time.Now()
			health, err := a.client.Health(ctx)
			if err != nil {
				fmt.Fprintln(out, components.ErrorStyle.Render("✗ backend: "+err.Error()))
				return err
			}
			fmt.Fprintf(out, "✓ backend: %s (%s)\n", health.Status, time.Since(started).Round(time.Millisecond))
			return nil
		},
	}
}

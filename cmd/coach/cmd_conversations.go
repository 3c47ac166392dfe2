package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/zhouzirui/empathic-coach/client/internal/view/components"
	"github.com/zhouzirui/empathic-coach/client/internal/view/history"
)

func newConversationsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "conversations",
		Aliases: []string{"conv"},
		Short:   "List, show or delete stored conversations",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List recent conversations",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				items, err := a.client.ListConversations(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), history.List(items, time.Now()))
				return nil
			},
		},
		&cobra.Command{
			Use:   "show <id>",
			Short: "Show a conversation with its messages",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				detail, err := a.client.GetConversation(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				var md components.Markdown
				if a.cfg.UI.Markdown {
					if r, err := components.NewMarkdown("auto", a.width()-8); err == nil {
						md = r
					}
				}
				fmt.Fprintln(cmd.OutOrStdout(), history.Detail(*detail, time.Now(), a.width(), md))
				return nil
			},
		},
		&cobra.Command{
			Use:   "delete <id>",
			Short: "Delete a conversation",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				result, err := a.client.DeleteConversation(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", args[0], result.Status)
				return nil
			},
		},
	)
	return cmd
}

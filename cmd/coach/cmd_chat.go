package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	chatsvc "github.com/zhouzirui/empathic-coach/client/internal/service/chat"
	"github.com/zhouzirui/empathic-coach/client/internal/service/identity"
	chatview "github.com/zhouzirui/empathic-coach/client/internal/view/chat"
	"github.com/zhouzirui/empathic-coach/client/internal/view/components"
)

func newChatCmd(a *app) *cobra.Command {
	var resume string

	cmd := &cobra.Command{
		Use:         "chat",
		Short:       "Start an empathic conversation in the terminal",
		Annotations: map[string]string{annotationTUI: "true"},
		Args:        cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			svc := chatsvc.NewService(a.client, identity.NewStore(), chatsvc.WithLogger(a.logger.Named("chat")))

			if resume != "" {
				detail, err := a.client.GetConversation(ctx, resume)
				if err != nil {
					return fmt.Errorf("failed to load conversation %s: %w", resume, err)
				}
				if err := svc.Resume(*detail); err != nil {
					return err
				}
			}

			opts := []chatview.Option{
				chatview.WithContext(ctx),
				chatview.WithTimeout(a.timeout),
				chatview.WithLogger(a.logger.Named("tui")),
				chatview.WithMaxWidth(a.width()),
			}
			if a.cfg.UI.Markdown {
				opts = append(opts, chatview.WithMarkdown(func(width int) (components.Markdown, error) {
					return components.NewMarkdown("dark", width)
				}))
			}

			program := tea.NewProgram(chatview.New(svc, opts...), tea.WithAltScreen(), tea.WithContext(ctx))
			if _, err := program.Run(); err != nil {
				a.logger.Error("chat program stopped", zap.Error(err))
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&resume, "resume", "", "continue a stored conversation by id")
	return cmd
}

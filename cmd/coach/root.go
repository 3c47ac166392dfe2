package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/zhouzirui/empathic-coach/client/internal/config"
	"github.com/zhouzirui/empathic-coach/client/internal/logging"
	"github.com/zhouzirui/empathic-coach/client/internal/metrics"
	"github.com/zhouzirui/empathic-coach/client/internal/model/plan"
	"github.com/zhouzirui/empathic-coach/client/internal/service/api"
	"github.com/zhouzirui/empathic-coach/client/internal/service/profile"
)

// annotationTUI marks commands that take over the terminal; their logs go to
// the log file instead of stderr.
const annotationTUI = "tui"

// app carries what every command needs once flags and environment are read.
type app struct {
	cfg     *config.Config
	logger  *zap.Logger
	metrics *metrics.Metrics
	client  *api.Client
	plans   plan.Store

	apiURL   string
	logLevel string
	timeout  time.Duration
}

func newRootCmd() *cobra.Command {
	root, _ := newRoot()
	return root
}

func newRoot() (*cobra.Command, *app) {
	a := &app{plans: plan.NewMemoryStore(plan.Seed())}

	root := &cobra.Command{
		Use:   "coach",
		Short: "Empathic AI Coach - conversa empática no terminal",
		Long: `coach talks to the Empathic AI Coach backend.

Run "coach chat" to start a conversation, "coach plans" to see the
subscription catalog and "coach serve" to run the payment pages the hosted
checkout returns to.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	root.PersistentFlags().StringVar(&a.apiURL, "api-url", "", "backend origin (overrides COACH_API_URL)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level (overrides COACH_LOG_LEVEL)")
	root.PersistentFlags().DurationVar(&a.timeout, "timeout", 0, "per-request timeout (0 keeps the transport default)")

	root.AddCommand(
		newChatCmd(a),
		newPlansCmd(a),
		newCheckoutCmd(a),
		newServeCmd(a),
		newConversationsCmd(a),
		newPaymentStatusCmd(a),
		newDoctorCmd(a),
	)
	return root, a
}

func (a *app) init(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if a.apiURL != "" {
		cfg.API.BaseURL = a.apiURL
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}
	a.cfg = cfg

	logCfg := logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format}
	if cmd.Annotations[annotationTUI] == "true" {
		logCfg.File = cfg.Log.File
	}
	a.logger, err = logging.New(logCfg)
	if err != nil {
		return err
	}
	zap.ReplaceGlobals(a.logger)

	a.metrics = metrics.New()
	a.client = api.NewClient(cfg.API.BaseURL,
		api.WithHTTPClient(a.httpClient()),
		api.WithLogger(a.logger.Named("api")),
		api.WithMetrics(a.metrics),
	)
	return nil
}

// httpClient has no deadline unless --timeout is given.
func (a *app) httpClient() *http.Client {
	return &http.Client{Timeout: a.timeout}
}

func (a *app) profile() profile.Profile {
	p, err := profile.Load(a.cfg.Profile.Path)
	if err != nil {
		a.logger.Warn("failed to read profile, continuing as guest", zap.String("path", a.cfg.Profile.Path), zap.Error(err))
		return profile.Guest()
	}
	return p
}

func (a *app) width() int {
	if a.cfg.UI.Width > 0 {
		return a.cfg.UI.Width
	}
	return 100
}

package cli

import (
	"net/http"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/mealbadge/mealbadge-go/internal/config"
	"github.com/mealbadge/mealbadge-go/internal/gateway"
	"github.com/mealbadge/mealbadge-go/internal/pkg/logger"
	"github.com/mealbadge/mealbadge-go/internal/session"
)

// App carries the shared dependencies of all CLI commands
type App struct {
	Config  *config.Config
	Session *session.Store
	Gateway *gateway.Client
	Logger  zerolog.Logger
}

// NewRootCommand builds the mealbadge command tree
func NewRootCommand() *cobra.Command {
	app := &App{}
	var configPath string

	root := &cobra.Command{
		Use:           "mealbadge",
		Short:         "Client for the MealBadge school rewards platform",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				return err
			}

			logger.Configure(logger.Config{
				Level:  logger.LogLevel(cfg.Logging.Level),
				Pretty: cfg.Logging.Format == "pretty",
			})

			app.Config = cfg
			app.Logger = logger.Default()
			app.Session = session.NewStore(cfg.Session.TokenPath, app.Logger)
			app.Gateway = gateway.NewClient(gateway.Options{
				BaseURL:         cfg.API.BaseURL,
				HTTPClient:      &http.Client{Timeout: cfg.APITimeout()},
				Session:         app.Session,
				ServerPaginates: cfg.API.ServerPaginates,
				Logger:          app.Logger,
			})
			return nil
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", "mealbadge.yaml", "path to the config file")

	root.AddCommand(
		newLoginCommand(app),
		newLogoutCommand(app),
		newSignupCommand(app),
		newCheckInCommand(app),
		newUploadCommand(app),
		newShopCommand(app),
		newAdminCommand(app),
	)

	return root
}

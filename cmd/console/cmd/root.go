package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/muhammadnuman-eng/school-managment-crm-sub001/internal/console/client"
	"github.com/muhammadnuman-eng/school-managment-crm-sub001/internal/console/config"
	"github.com/muhammadnuman-eng/school-managment-crm-sub001/internal/console/resources"
	"github.com/muhammadnuman-eng/school-managment-crm-sub001/internal/console/session"
	"github.com/muhammadnuman-eng/school-managment-crm-sub001/pkg/events"
	"github.com/muhammadnuman-eng/school-managment-crm-sub001/pkg/logger"
)

const version = "1.0.0"

// rootCmd is the base command for the school management console
var rootCmd = &cobra.Command{
	Use:   "console",
	Short: "School management admin console",
	Long: `Command line console for the school management platform.
Talks to the backend API with the active tenant's scope and the
logged-in session's credentials.`,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("api-url", "", "Backend API base URL")
	rootCmd.PersistentFlags().String("config", "", "Path to a config file")
}

// console bundles the wired application for command handlers.
type console struct {
	cfg    *config.Config
	log    *logger.Logger
	creds  *session.FileStore
	tenant session.TenantStore
	bus    events.EventBus

	auth          resources.AuthService
	hostels       resources.HostelService
	students      resources.StudentService
	fees          resources.FeeService
	inventory     resources.InventoryService
	transport     resources.TransportService
	attendance    resources.AttendanceService
	communication resources.CommunicationService
	dashboard     resources.DashboardService
}

// buildConsole loads configuration and wires the full client stack.
func buildConsole(cmd *cobra.Command) (*console, error) {
	var cfg *config.Config
	var err error
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		cfg, err = config.LoadWithPath(path)
	} else {
		cfg, err = config.NewLoader().Load()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if apiURL, _ := cmd.Flags().GetString("api-url"); apiURL != "" {
		cfg.BaseURL = apiURL
	}

	log := logger.New(logger.LoggerConfig{
		Level:     logger.LogLevel(cfg.LogLevel),
		Format:    logger.OutputFormat(cfg.LogFormat),
		Component: "console",
		Version:   version,
	})

	store, err := session.NewFileStore(cfg.CredentialsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open credential store: %w", err)
	}
	tenant := store.TenantView()

	bus := events.NewGookitEventBus(log)

	// The CLI is the outer shell: it observes the effects the invalidator
	// publishes so a mid-command 401 is visible, not a silent session reset.
	if _, err := bus.Subscribe(events.TypeSessionInvalidated, func(_ context.Context, event events.Event) error {
		if inv, ok := event.(*events.SessionInvalidated); ok && inv.Reason != "" {
			fmt.Printf("Session ended: %s\n", inv.Reason)
		}
		return nil
	}); err != nil {
		return nil, fmt.Errorf("failed to subscribe to session events: %w", err)
	}
	if _, err := bus.Subscribe(events.TypeNavigationReplace, func(_ context.Context, event events.Event) error {
		if nav, ok := event.(*events.NavigationReplace); ok {
			fmt.Printf("Your session has expired. Log in again at %s\n", nav.Path)
		}
		return nil
	}); err != nil {
		return nil, fmt.Errorf("failed to subscribe to navigation events: %w", err)
	}

	apiClient := client.New(client.Options{
		BaseURL:       cfg.BaseURL,
		APIPrefix:     cfg.APIPrefix,
		TenantHeader:  cfg.TenantHeader,
		Timeout:       time.Duration(cfg.TimeoutMs) * time.Millisecond,
		RetryAttempts: cfg.RetryAttempts,
		RetryDelay:    time.Duration(cfg.RetryDelayMs) * time.Millisecond,
		Credentials:   store,
		Tenant:        tenant,
		Logger:        log,
	})

	auth := resources.NewAuthService(apiClient, store, tenant, log.Logger)

	// The invalidator's server-logout call goes back through the client, so
	// the client learns about the invalidator only after both exist.
	invalidator := session.NewInvalidator(session.InvalidatorConfig{
		Credentials:     store,
		Tenant:          tenant,
		Bus:             bus,
		Logger:          log,
		Notify:          auth.ServerLogout,
		SchoolLoginPath: cfg.SchoolLoginPath,
		AdminLoginPath:  cfg.AdminLoginPath,
	})
	apiClient.SetInvalidator(invalidator)

	hostels := resources.NewHostelService(apiClient, log.Logger)

	return &console{
		cfg:           cfg,
		log:           log,
		creds:         store,
		tenant:        tenant,
		bus:           bus,
		auth:          auth,
		hostels:       hostels,
		students:      resources.NewStudentService(apiClient, log.Logger),
		fees:          resources.NewFeeService(apiClient, log.Logger),
		inventory:     resources.NewInventoryService(apiClient, log.Logger),
		transport:     resources.NewTransportService(apiClient, log.Logger),
		attendance:    resources.NewAttendanceService(apiClient, log.Logger),
		communication: resources.NewCommunicationService(apiClient, log.Logger),
		dashboard:     resources.NewDashboardService(hostels, log.Logger),
	}, nil
}

// fail prints the error and exits, the shared terminal path for commands.
func fail(err error) {
	fmt.Printf("Error: %v\n", err)
	os.Exit(1)
}

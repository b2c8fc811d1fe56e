package main

import (
	"fmt"

	auth "github.com/GianMarcoC/Taller-Notas-de-Estudiantes"
	"github.com/GianMarcoC/Taller-Notas-de-Estudiantes/client"
	"github.com/spf13/cobra"
)

var (
	configPath string
	baseURL    string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "notas",
	Short: "Client for the academic management backend",
	Long: `notas is a command line client for the academic management backend.

It handles login, token refresh, and role-gated access to grades (notas),
the student roster, user accounts, and the audit log. Sessions persist
across invocations in the configured storage scope.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a yaml config file")
	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", "", "backend base URL (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log auth activity events")
}

// app bundles everything a command needs.
type app struct {
	cfg     *auth.Config
	service *auth.Service
	guard   *auth.Guard
	api     *client.Client
}

func buildApp() (*app, error) {
	cfg := auth.DefaultConfig()
	if configPath != "" {
		loaded, err := auth.LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}

	store, err := cfg.OpenStore()
	if err != nil {
		return nil, fmt.Errorf("failed to open session store: %w", err)
	}

	service := auth.NewService(cfg, store)
	if verbose {
		service.WithActivitySink(auth.LoggerActivitySink(nil))
	}
	guard := auth.NewGuard(service, cfg.Routes, cfg.LoginRoute, cfg.HomeRoute)
	api := client.New(cfg.BaseURL, service)

	return &app{cfg: cfg, service: service, guard: guard, api: api}, nil
}

// guardRoute enforces the same navigation rule the SPA applied: denied
// navigations never reach the backend.
func (a *app) guardRoute(route string) error {
	decision := a.guard.Decide(route)
	if decision.Allowed {
		return nil
	}
	if decision.RedirectTo == a.cfg.LoginRoute {
		return fmt.Errorf("not logged in, run `notas login` first")
	}
	return fmt.Errorf("your role is not allowed to access %q", route)
}

package main

import (
	"encoding/json"
	"fmt"
	"log"

	"MemeIQ/internal/di"
	"MemeIQ/internal/handler/api"
	"MemeIQ/pkg/config"
	xhttp "MemeIQ/pkg/http"

	"github.com/spf13/cobra"
)

func serveCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(*configPath)
		},
	}
}

func runServe(configPath string) error {
	cfg, err := config.LoadWithEnv(configPath)
	if err != nil {
		return fmt.Errorf("config load failed: %w", err)
	}
	log.Printf("env=%s port=%d events=%t redis=%t", cfg.Environment, cfg.Server.Port, cfg.Events.Enabled, cfg.Cache.Redis.Enabled)

	app, cleanup, err := di.InitializeApp(cfg)
	if err != nil {
		return fmt.Errorf("app initialization failed: %w", err)
	}
	defer cleanup()

	return app.Run()
}

func analyzeCmd(configPath *string) *cobra.Command {
	var pretty bool
	cmd := &cobra.Command{
		Use:   "analyze <address>",
		Short: "Analyze one token and print the response envelope as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadWithEnv(*configPath)
			if err != nil {
				return fmt.Errorf("config load failed: %w", err)
			}
			// Keep stdout clean for the JSON envelope.
			cfg.Log.Output = "stderr"

			uc, cleanup, err := di.InitializeAnalyzer(cfg)
			if err != nil {
				return fmt.Errorf("analyzer initialization failed: %w", err)
			}
			defer cleanup()

			enc := json.NewEncoder(cmd.OutOrStdout())
			if pretty {
				enc.SetIndent("", "  ")
			}

			rec, err := uc.Analyze(cmd.Context(), args[0])
			if err != nil {
				env := xhttp.Envelope{OK: false, Error: err.Error()}
				if appErr, ok := xhttp.AsAppError(err); ok {
					env.Error = appErr.Message
					if cfg.Debug.IncludeUpstreamPayload {
						env.Debug = appErr.Diagnostic
					}
				}
				if encErr := enc.Encode(env); encErr != nil {
					return encErr
				}
				return err
			}
			return enc.Encode(api.AnalyzeResponse{Envelope: xhttp.Envelope{OK: true}, Token: rec})
		},
	}
	cmd.Flags().BoolVar(&pretty, "pretty", false, "indent JSON output")
	return cmd
}

func keysCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "keys",
		Short: "Report which provider credentials are configured",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadWithEnv(*configPath)
			if err != nil {
				return fmt.Errorf("config load failed: %w", err)
			}
			for _, c := range cfg.Credentials() {
				state := "missing"
				if c.Configured {
					state = "configured"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%-20s %s\n", c.Env, state)
			}
			return nil
		},
	}
}

package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	_ = godotenv.Load() // .env is optional

	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		log.Printf("memeiq: %v", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "memeiq",
		Short:         "Meme-coin token analysis API",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(configPath)
		},
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file path (defaults only when empty)")

	root.AddCommand(
		serveCmd(&configPath),
		analyzeCmd(&configPath),
		keysCmd(&configPath),
	)
	return root
}

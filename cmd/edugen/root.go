package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/yungbote/neurobridge-edugen/internal/edugen/config"
)

var rootCmd = &cobra.Command{
	Use:          "edugen",
	Short:        "Educational content generation service",
	Long:         "edugen serves MCQ generation over HTTP, backed by an LLM engine (Groq by default).",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd)
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to a config file (overrides EDUGEN_CONFIG_PATH)")
	rootCmd.PersistentFlags().String("engine", "", "Engine type: groq, openai, gemini, anthropic or mock")
	rootCmd.PersistentFlags().String("model", "", "Upstream model id")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(generateMCQCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig resolves configuration with persistent flags applied on top.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	if p, _ := cmd.Flags().GetString("config"); p != "" {
		if err := os.Setenv("EDUGEN_CONFIG_PATH", p); err != nil {
			return nil, err
		}
	}
	engineType, _ := cmd.Flags().GetString("engine")
	model, _ := cmd.Flags().GetString("model")
	return config.Load(
		config.WithOverride("engine.type", engineType),
		config.WithOverride("engine.model", model),
		config.WithOverride("telemetry.version", stampedVersion()),
	)
}

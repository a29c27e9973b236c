// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the pdf-to-md CLI.
package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/omriariav/pdf-to-md/internal/config"
	"github.com/omriariav/pdf-to-md/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the pdf-to-md CLI.
var rootCmd = &cobra.Command{
	Use:   "pdf-to-md",
	Short: "Convert PDFs to Markdown, one file or a watched directory at a time",
	Long: `pdf-to-md converts PDF files into Markdown documents for downstream
consumption (AI agents, RAG pipelines, note apps).

Use convert for one-off conversions, watch to monitor a directory and
convert new PDFs as they arrive, and config to manage the configuration
file.`,
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file (default: ./pdf-to-md.yaml or ~/.config/pdf-to-md/pdf-to-md.yaml)")
}

// loadSettings reads the config file selected by the --config flag.
func loadSettings() (*types.Settings, error) {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	return config.Load(cfgFile)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

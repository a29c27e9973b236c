// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/omriariav/pdf-to-md/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the pdf-to-md configuration file",
	Long: `Config manages the YAML configuration file. Use init to create a
commented example config, and show to print the effective settings after
defaults, file values, and environment overrides are merged.`,
}

// --- init subcommand ---

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a commented example config file",
	RunE:  runConfigInit,
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path, _ := rootCmd.PersistentFlags().GetString("config")
	if path == "" {
		path = config.DefaultPath()
	}
	force, _ := cmd.Flags().GetBool("force")

	if err := config.WriteExample(path, force); err != nil {
		return err
	}
	fmt.Printf("Wrote %s\n", path)
	return nil
}

// --- show subcommand ---

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective settings as YAML",
	RunE:  runConfigShow,
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	set, err := loadSettings()
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(set)
	if err != nil {
		return fmt.Errorf("marshaling settings: %w", err)
	}
	_, err = os.Stdout.Write(data)
	return err
}

func init() {
	configInitCmd.Flags().Bool("force", false, "overwrite an existing config file")

	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)

	rootCmd.AddCommand(configCmd)
}

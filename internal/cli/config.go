package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tessro/parrot/internal/config"
)

var configInitForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long:  `Commands for viewing and creating the parrot configuration file.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long:  `Display the configuration after defaults, .env and PARROT_* overrides are applied.`,
	RunE:  runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration",
	Long:  `Create a new configuration file with default values.`,
	// The file may not exist yet, so skip loading it.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	RunE:              runConfigInit,
}

var configPathCmd = &cobra.Command{
	Use:               "path",
	Short:             "Print the configuration file path",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	RunE:              runConfigPath,
}

func init() {
	configInitCmd.Flags().BoolVarP(&configInitForce, "force", "f", false, "overwrite an existing file")

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	if JSONOutput() {
		return writeJSON(cmd.OutOrStdout(), cfg)
	}

	data, err := config.Encode(cfg)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := configPath()
	if err := config.Init(path, configInitForce); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if JSONOutput() {
		return writeJSON(out, map[string]string{
			"status": "created",
			"path":   path,
		})
	}

	_, _ = fmt.Fprintf(out, "Created config file: %s\n", path)
	_, _ = fmt.Fprintln(out, "\nNext steps:")
	_, _ = fmt.Fprintln(out, "  1. Set player.binary if mpv is not on your PATH")
	_, _ = fmt.Fprintln(out, "  2. Adjust transcript.languages to the languages you are learning")
	return nil
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	path := configPath()
	if JSONOutput() {
		return writeJSON(cmd.OutOrStdout(), map[string]string{"path": path})
	}
	_, err := fmt.Fprintln(cmd.OutOrStdout(), path)
	return err
}

package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/invopop/jsonschema"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/matheuskafuri/classicnews/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration with keys masked",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := oneShot(cmd)
		if err != nil {
			return err
		}
		return writeConfig(cmd.OutOrStdout(), cfg)
	},
}

var schemaCmd = &cobra.Command{
	Use:   "schema [file]",
	Short: "Write the JSON schema of the config file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := configSchema()
		if err != nil {
			return err
		}
		if len(args) == 0 {
			_, err = cmd.OutOrStdout().Write(append(data, '\n'))
			return err
		}
		if err := os.WriteFile(args[0], data, 0o600); err != nil { //nolint:gosec // schema file is not sensitive
			return fmt.Errorf("writing schema: %w", err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Schema written to %s\n", args[0])
		return nil
	},
}

func writeConfig(w io.Writer, cfg *config.Config) error {
	masked := cfg.Masked()
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&masked); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return enc.Close()
}

func configSchema() ([]byte, error) {
	schema := jsonschema.Reflect(&config.Config{})
	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	return data, nil
}

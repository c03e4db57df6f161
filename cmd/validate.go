package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"firestige.xyz/framedump/internal/config"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a configuration file",
	Long: `Validate a framedump configuration file without decoding anything.

Environment overrides (FRAMEDUMP_*) are applied before validation, so the
result matches what decode would run with.

Examples:
  framedump validate -f framedump.yml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runValidate(validateConfigFile, cmd.OutOrStdout())
	},
}

var validateConfigFile string

func init() {
	validateCmd.Flags().StringVarP(&validateConfigFile, "file", "f", "",
		"configuration file to validate (required)")
	validateCmd.MarkFlagRequired("file")
}

func runValidate(path string, out io.Writer) error {
	cfg, err := config.Load(path)
	if err != nil {
		fmt.Fprintf(out, "INVALID: %v\n", err)
		return err
	}

	fmt.Fprintf(out, "VALID: input=%s report=%s output=%s workers=%d\n",
		cfg.Input.Format,
		cfg.Report.Format,
		cfg.Report.Output,
		cfg.Workers,
	)
	return nil
}

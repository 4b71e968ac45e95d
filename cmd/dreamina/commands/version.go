package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/haivivi/dreamina/cmd/dreamina/internal/build"
	"github.com/haivivi/dreamina/pkg/cli"
)

var versionFormat string

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	RunE: func(cmd *cobra.Command, args []string) error {
		switch versionFormat {
		case "", "text":
			fmt.Println(build.String())
			if verbose {
				if cfg, err := getConfig(); err == nil {
					fmt.Printf("  config: %s\n", cfg.Path())
				} else {
					fmt.Printf("  config: (unavailable: %v)\n", err)
				}
			}
			return nil
		default:
			return cli.Output(build.Get(), cli.OutputOptions{
				Format: cli.OutputFormat(versionFormat),
				Writer: os.Stdout,
			})
		}
	},
}

func init() {
	versionCmd.Flags().StringVar(&versionFormat, "format", "text", "output format: text, json, yaml")
}

// Package cli provides common CLI utilities for the dreamina command-line
// tool.
//
// This package includes:
//   - Configuration management (named contexts holding token and defaults)
//   - Output formatting (JSON, YAML, jq-filtered JSON)
//   - Request file loading (YAML/JSON)
//   - Terminal printing with lipgloss styles, disabled off-terminal
//
// Configuration is stored in ~/.giztoy/<app>/config.yaml, supporting
// multiple contexts similar to kubectl. GIZTOY_CONFIG_DIR overrides the
// ~/.giztoy base directory.
//
// Example usage:
//
//	cfg, err := cli.LoadConfig("dreamina")
//	ctx, err := cfg.ResolveContext("")
//
//	p := cli.NewPrinter(os.Stdout)
//	p.Success("downloaded %d images", n)
//
//	cli.Output(summary, cli.OutputOptions{
//	    Format: cli.FormatJSON,
//	    Query:  ".artifacts[].path",
//	})
package cli

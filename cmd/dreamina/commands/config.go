package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/haivivi/dreamina/pkg/cli"
	"github.com/haivivi/dreamina/pkg/dreamina"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage CLI configuration",
	Long: `Manage CLI configuration and contexts.

A context stores a session token and optional defaults (api, output
directory, ratio), similar to kubectl's context management.

Configuration is stored in ~/.giztoy/dreamina/config.yaml`,
}

var configAddContextCmd = &cobra.Command{
	Use:   "add-context <name>",
	Short: "Add a new context",
	Long: `Add a new context with the specified name.

Example:
  dreamina config add-context dev --token YOUR_SESSION_ID
  dreamina config add-context remote --token ID --api http://gw.example.com:5200 --ratio 16:9`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]

		flagToken, err := cmd.Flags().GetString("token")
		if err != nil {
			return fmt.Errorf("failed to read 'token' flag: %w", err)
		}
		if flagToken == "" {
			return fmt.Errorf("--token is required")
		}
		api, err := cmd.Flags().GetString("api")
		if err != nil {
			return fmt.Errorf("failed to read 'api' flag: %w", err)
		}
		output, err := cmd.Flags().GetString("output")
		if err != nil {
			return fmt.Errorf("failed to read 'output' flag: %w", err)
		}
		flagRatio, err := cmd.Flags().GetString("ratio")
		if err != nil {
			return fmt.Errorf("failed to read 'ratio' flag: %w", err)
		}
		if flagRatio != "" {
			if _, err := dreamina.ParseRatio(flagRatio); err != nil {
				return err
			}
		}

		cfg, err := getConfig()
		if err != nil {
			return err
		}
		if err := cfg.AddContext(name, &cli.Context{
			Token:  flagToken,
			API:    api,
			Output: output,
			Ratio:  flagRatio,
		}); err != nil {
			return err
		}

		cli.NewPrinter(os.Stdout).Success("Context %q added successfully", name)
		return nil
	},
}

var configDeleteContextCmd = &cobra.Command{
	Use:   "delete-context <name>",
	Short: "Delete a context",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]

		cfg, err := getConfig()
		if err != nil {
			return err
		}
		if err := cfg.DeleteContext(name); err != nil {
			return err
		}

		cli.NewPrinter(os.Stdout).Success("Context %q deleted", name)
		return nil
	},
}

var configUseContextCmd = &cobra.Command{
	Use:   "use-context <name>",
	Short: "Set the current context",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]

		cfg, err := getConfig()
		if err != nil {
			return err
		}
		if err := cfg.UseContext(name); err != nil {
			return err
		}

		cli.NewPrinter(os.Stdout).Success("Switched to context %q", name)
		return nil
	},
}

var configGetContextCmd = &cobra.Command{
	Use:   "get-context",
	Short: "Display the current context",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := getConfig()
		if err != nil {
			return err
		}

		if cfg.CurrentContext == "" {
			fmt.Println("No current context set")
			return nil
		}

		fmt.Println(cfg.CurrentContext)
		return nil
	},
}

var configListContextsCmd = &cobra.Command{
	Use:     "list-contexts",
	Aliases: []string{"get-contexts"},
	Short:   "List all contexts",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := getConfig()
		if err != nil {
			return err
		}

		if len(cfg.Contexts) == 0 {
			fmt.Println("No contexts configured")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "CURRENT\tNAME\tAPI\tRATIO")

		for _, name := range cfg.ListContexts() {
			ctx := cfg.Contexts[name]
			current := ""
			if name == cfg.CurrentContext {
				current = "*"
			}
			api := ctx.API
			if api == "" {
				api = "(default)"
			}
			r := ctx.Ratio
			if r == "" {
				r = "(default)"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", current, name, api, r)
		}

		return w.Flush()
	},
}

var configViewCmd = &cobra.Command{
	Use:   "view",
	Short: "View the current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := getConfig()
		if err != nil {
			return err
		}

		fmt.Printf("Config file: %s\n", cfg.Path())
		fmt.Printf("Current context: %s\n", cfg.CurrentContext)
		fmt.Printf("Contexts: %d\n", len(cfg.Contexts))

		for _, name := range cfg.ListContexts() {
			ctx := cfg.Contexts[name]
			fmt.Printf("\n  %s:\n", name)
			fmt.Printf("    Token: %s\n", cli.MaskToken(ctx.Token))
			if ctx.API != "" {
				fmt.Printf("    API: %s\n", ctx.API)
			}
			if ctx.Output != "" {
				fmt.Printf("    Output: %s\n", ctx.Output)
			}
			if ctx.Ratio != "" {
				fmt.Printf("    Ratio: %s\n", ctx.Ratio)
			}
		}

		return nil
	},
}

func init() {
	configAddContextCmd.Flags().String("token", "", "Dreamina session ID (required)")
	configAddContextCmd.Flags().String("api", "", "gateway address")
	configAddContextCmd.Flags().String("output", "", "default output directory")
	configAddContextCmd.Flags().String("ratio", "", "default aspect ratio")

	configCmd.AddCommand(configAddContextCmd)
	configCmd.AddCommand(configDeleteContextCmd)
	configCmd.AddCommand(configUseContextCmd)
	configCmd.AddCommand(configGetContextCmd)
	configCmd.AddCommand(configListContextsCmd)
	configCmd.AddCommand(configViewCmd)
}

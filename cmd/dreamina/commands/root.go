package commands

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/haivivi/dreamina/pkg/cli"
	"github.com/haivivi/dreamina/pkg/dreamina"
)

const appName = "dreamina"

var (
	// Global flags
	cfgFile     string
	contextName string
	verbose     bool

	// Generation flags
	prompt     string
	token      string
	ratio      string
	outputDir  string
	apiURL     string
	inputFile  string
	outputJSON bool
	jqQuery    string

	// Global configuration (loaded at init time)
	globalConfig  *cli.Config
	configLoadErr error
)

var rootCmd = &cobra.Command{
	Use:   "dreamina",
	Short: "Generate images through a Dreamina gateway",
	Long: `dreamina - submit an image generation request and download the results.

The request is sent once to {api}/v1/images/generations with the session ID
as a bearer token. Every returned image URL is downloaded into the output
directory as dreamina_<unix-time>_<index>.<ext>.

Supported ratios: ` + dreamina.RatioList() + `

Contexts (stored in ~/.giztoy/dreamina/config.yaml) can hold the token, api
address, output directory and ratio so they need not be repeated.

Examples:
  # One-off generation
  dreamina --prompt "an apple on a table" --token YOUR_SESSION_ID

  # Wide image into ./out
  dreamina -p "city skyline at dusk" -t YOUR_SESSION_ID -r 16:9 -o ./out

  # Use a saved context and a request file
  dreamina config add-context dev --token YOUR_SESSION_ID
  dreamina config use-context dev
  dreamina -f request.yaml

  # Print only the downloaded paths
  dreamina -p "a cat" --jq '.artifacts[].path'`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogging()
	},
	RunE: runGenerate,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.giztoy/dreamina/config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&contextName, "context", "c", "", "context name to use")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.Flags().StringVarP(&prompt, "prompt", "p", "", "image description (required)")
	rootCmd.Flags().StringVarP(&token, "token", "t", "", "Dreamina session ID (required unless the context has one)")
	rootCmd.Flags().StringVarP(&ratio, "ratio", "r", string(dreamina.DefaultRatio), "aspect ratio: "+dreamina.RatioList())
	rootCmd.Flags().StringVarP(&outputDir, "output", "o", ".", "output directory")
	rootCmd.Flags().StringVar(&apiURL, "api", dreamina.DefaultBaseURL, "gateway address")
	rootCmd.Flags().StringVarP(&inputFile, "file", "f", "", "request file (YAML or JSON with prompt and ratio)")
	rootCmd.Flags().BoolVar(&outputJSON, "json", false, "print the run summary as JSON (status lines go to stderr)")
	rootCmd.Flags().StringVar(&jqQuery, "jq", "", "filter the JSON run summary with a jq expression")

	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

func initConfig() {
	globalConfig, configLoadErr = cli.LoadConfigWithPath(appName, cfgFile)
}

// getConfig returns the global configuration.
func getConfig() (*cli.Config, error) {
	if globalConfig == nil {
		if configLoadErr != nil {
			return nil, fmt.Errorf("config not available: %w", configLoadErr)
		}
		return nil, fmt.Errorf("configuration not initialized")
	}
	return globalConfig, nil
}

// getContext returns the context selected by -c or the current one. It may
// return nil when no context is configured.
func getContext() (*cli.Context, error) {
	cfg, err := getConfig()
	if err != nil {
		// A broken config only matters when a context was asked for.
		if contextName != "" {
			return nil, err
		}
		slog.Warn("ignoring unreadable config", "error", err)
		return nil, nil
	}
	return cfg.ResolveContext(contextName)
}

func setupLogging() {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

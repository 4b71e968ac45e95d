package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/haivivi/dreamina/pkg/cli"
	"github.com/haivivi/dreamina/pkg/dreamina"
)

// ErrNoImages is returned when a run ends without a single downloaded
// image. The reason has already been printed.
var ErrNoImages = errors.New("no images downloaded")

// generateOptions is the resolved input of one run. Precedence, lowest
// first: built-in defaults, context, request file, flags.
type generateOptions struct {
	Prompt  string
	Token   string
	Ratio   dreamina.Ratio
	Output  string
	API     string
	Context string
}

type downloadFailure struct {
	Index int    `json:"index"`
	URL   string `json:"url"`
	Error string `json:"error"`
}

// runSummary is what --json prints.
type runSummary struct {
	API               string              `json:"api"`
	Output            string              `json:"output"`
	Context           string              `json:"context,omitempty"`
	Prompt            string              `json:"prompt"`
	Ratio             string              `json:"ratio"`
	RequestID         string              `json:"request_id,omitempty"`
	GenerationSeconds float64             `json:"generation_seconds"`
	Requested         int                 `json:"requested"`
	Downloaded        int                 `json:"downloaded"`
	Artifacts         []dreamina.Artifact `json:"artifacts"`
	Failures          []downloadFailure   `json:"failures,omitempty"`
	Error             string              `json:"error,omitempty"`
}

func resolveOptions(cmd *cobra.Command) (*generateOptions, error) {
	opts := &generateOptions{
		Ratio:  dreamina.DefaultRatio,
		Output: ".",
		API:    dreamina.DefaultBaseURL,
	}
	rawRatio := string(dreamina.DefaultRatio)

	cctx, err := getContext()
	if err != nil {
		return nil, err
	}
	if cctx != nil {
		opts.Context = cctx.Name
		if cctx.Token != "" {
			opts.Token = cctx.Token
		}
		if cctx.API != "" {
			opts.API = cctx.API
		}
		if cctx.Output != "" {
			opts.Output = cctx.Output
		}
		if cctx.Ratio != "" {
			rawRatio = cctx.Ratio
		}
	}

	if inputFile != "" {
		var req dreamina.GenerateRequest
		if err := cli.LoadRequest(inputFile, &req); err != nil {
			return nil, err
		}
		if req.Prompt != "" {
			opts.Prompt = req.Prompt
		}
		if req.Ratio != "" {
			rawRatio = string(req.Ratio)
		}
	}

	flags := cmd.Flags()
	if flags.Changed("prompt") {
		opts.Prompt = prompt
	}
	if flags.Changed("token") {
		opts.Token = token
	}
	if flags.Changed("ratio") {
		rawRatio = ratio
	}
	if flags.Changed("output") {
		opts.Output = outputDir
	}
	if flags.Changed("api") {
		opts.API = apiURL
	}

	if opts.Prompt == "" {
		return nil, fmt.Errorf("--prompt is required")
	}
	if opts.Token == "" {
		return nil, fmt.Errorf("--token is required")
	}
	r, err := dreamina.ParseRatio(rawRatio)
	if err != nil {
		return nil, err
	}
	opts.Ratio = r

	return opts, nil
}

func runGenerate(cmd *cobra.Command, args []string) error {
	opts, err := resolveOptions(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	jsonMode := outputJSON || jqQuery != ""
	var status io.Writer = os.Stdout
	if jsonMode {
		status = os.Stderr
	}
	p := cli.NewPrinter(status)

	dir, err := filepath.Abs(opts.Output)
	if err != nil {
		return fmt.Errorf("resolve output directory: %w", err)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	client := dreamina.NewClient(opts.Token,
		dreamina.WithBaseURL(opts.API),
		dreamina.WithLogger(slog.Default()),
	)

	p.Banner("Dreamina image generation")
	p.Println("API: %s", client.BaseURL())
	p.Println("Output: %s", dir)
	if opts.Context != "" {
		p.Println("Context: %s", opts.Context)
	}
	p.Blank()

	summary := &runSummary{
		API:       opts.API,
		Output:    dir,
		Context:   opts.Context,
		Prompt:    opts.Prompt,
		Ratio:     string(opts.Ratio),
		Artifacts: []dreamina.Artifact{},
	}

	p.Stage("generate", "submitting generation request...")
	p.Field("Prompt", opts.Prompt)
	p.Field("Ratio", opts.Ratio)

	start := time.Now()
	resp, err := client.Image.Generate(ctx, &dreamina.GenerateRequest{
		Prompt: opts.Prompt,
		Ratio:  opts.Ratio,
	})
	elapsed := time.Since(start)
	summary.GenerationSeconds = math.Round(elapsed.Seconds()*10) / 10

	if err != nil {
		reportGenerateError(p, err, client.Timeout())
		summary.Error = err.Error()
	} else {
		summary.RequestID = resp.RequestID
		p.Stage("generate", "success, got %d images", len(resp.Images))
	}

	urls := resp.URLs()
	summary.Requested = len(urls)
	if len(urls) == 0 {
		p.Blank()
		p.Stage("failed", "no images were generated")
		if err := writeSummary(summary); err != nil {
			return err
		}
		return ErrNoImages
	}

	p.Blank()
	p.Stage("time", "generation took %s", cli.FormatDuration(elapsed))

	p.Blank()
	p.Stage("download", "downloading %d images...", len(urls))

	artifacts := client.DownloadAll(ctx, urls, dir, dreamina.DownloadHooks{
		OnStart: func(i int, _ string) {
			p.Printf("  [%d] downloading... ", i+1)
		},
		OnDone: func(r dreamina.DownloadResult) {
			if r.Err != nil {
				p.Println("%s: %v", p.Bad("failed"), r.Err)
				summary.Failures = append(summary.Failures, downloadFailure{
					Index: r.Index,
					URL:   r.URL,
					Error: r.Err.Error(),
				})
				return
			}
			p.Println("%s (%.1f KB) -> %s", p.Good("done"), float64(r.Artifact.Size)/1024, filepath.Base(r.Artifact.Path))
		},
	})
	summary.Artifacts = artifacts
	summary.Downloaded = len(artifacts)

	p.Blank()
	p.Rule()
	p.Stage("done", "downloaded %d/%d images", len(artifacts), len(urls))
	p.Stage("location", "%s", dir)
	p.Rule()

	if len(artifacts) > 0 {
		p.Blank()
		p.Println("Generated images:")
		for _, a := range artifacts {
			p.Println("  - %s (%s)", a.Path, cli.FormatBytes(a.Size))
		}
	}

	if err := writeSummary(summary); err != nil {
		return err
	}
	if len(artifacts) == 0 {
		return ErrNoImages
	}
	return nil
}

func reportGenerateError(p *cli.Printer, err error, timeout time.Duration) {
	switch {
	case dreamina.IsTimeout(err):
		p.Stage("error", "request timed out (%s)", timeoutText(timeout))
	case errors.Is(err, context.Canceled):
		p.Stage("error", "request interrupted")
	case errors.Is(err, dreamina.ErrUnexpectedResponse):
		p.Stage("error", "%v", err)
	default:
		p.Stage("error", "request failed: %v", err)
		if e, ok := dreamina.AsError(err); ok {
			if e.Detail != nil {
				p.Println("  Detail: %s", e.DetailText())
			} else if e.Body != "" {
				p.Println("  Response: %s", e.DetailText())
			}
			switch {
			case e.IsUnauthorized():
				p.Warning("session token rejected, check --token or the context token")
			case e.IsRateLimit():
				p.Warning("rate limited by the gateway, try again later")
			case e.IsServerError():
				p.Info("the gateway failed upstream, request id %s", e.RequestID)
			}
		}
	}
}

func writeSummary(summary *runSummary) error {
	if !outputJSON && jqQuery == "" {
		return nil
	}
	return cli.Output(summary, cli.OutputOptions{
		Format: cli.FormatJSON,
		Query:  jqQuery,
		Writer: os.Stdout,
	})
}

func timeoutText(d time.Duration) string {
	if d >= time.Minute && d%time.Minute == 0 {
		return fmt.Sprintf("%d minutes", int(d/time.Minute))
	}
	return cli.FormatDuration(d)
}

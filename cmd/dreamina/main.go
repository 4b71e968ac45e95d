// Package main provides the dreamina CLI tool.
//
// Usage:
//
//	dreamina --prompt "an apple" --token SESSION_ID [--ratio 16:9] [--output DIR] [--api URL]
//	dreamina config <command>
//	dreamina version
//
// The root command submits one image generation request to a Dreamina
// gateway and downloads every returned image into the output directory.
// It exits 0 if at least one image was downloaded, 1 otherwise.
//
// Configuration:
//
//	Contexts are stored in ~/.giztoy/dreamina/config.yaml.
//	Use 'dreamina config' commands to manage them.
package main

import (
	"errors"
	"os"

	"github.com/haivivi/dreamina/cmd/dreamina/commands"
	"github.com/haivivi/dreamina/pkg/cli"
)

func main() {
	if err := commands.Execute(); err != nil {
		// Generation failures were already reported on stdout.
		if !errors.Is(err, commands.ErrNoImages) {
			cli.PrintError("%v", err)
		}
		os.Exit(1)
	}
}

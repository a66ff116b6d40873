package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/sevigo/pr-gatekeeper/internal/core"
	"github.com/sevigo/pr-gatekeeper/internal/wire"
)

var replayEventType string

var replayCmd = &cobra.Command{
	Use:   "replay <payload.json>",
	Short: "Run a recorded issue_comment delivery through the command engine",
	Long: `Reads a GitHub issue_comment webhook payload from a file (or "-" for stdin)
and processes it exactly as the server would, using the configured commands,
CI backends and authorization lists.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		payload, err := readPayload(args[0])
		if err != nil {
			return err
		}
		event, err := core.NewEvent(replayEventType, "replay", payload)
		if err != nil {
			return err
		}

		processor, cleanup, err := wire.InitializeProcessor(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to initialize processor: %w", err)
		}
		defer cleanup()

		titleColor.Printf("replaying %s\n", args[0])
		if err := processor.ProcessComment(cmd.Context(), event); err != nil {
			if errors.Is(err, core.ErrMalformedEvent) {
				return fmt.Errorf("payload is not a usable comment event: %w", err)
			}
			return err
		}
		successColor.Println("processed")
		return nil
	},
}

func readPayload(path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read payload from stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read payload: %w", err)
	}
	return data, nil
}

func init() { //nolint:gochecknoinits // Cobra's init function for command registration
	replayCmd.Flags().StringVar(&replayEventType, "event-type", "issue_comment", "Value of the X-GitHub-Event header the payload was delivered with")
	rootCmd.AddCommand(replayCmd)
}

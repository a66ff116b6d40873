package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/sevigo/pr-gatekeeper/internal/config"
	"github.com/sevigo/pr-gatekeeper/internal/logger"
	"github.com/sevigo/pr-gatekeeper/internal/storage"
)

var (
	listName   string
	outputJSON bool
)

var whitelistCmd = &cobra.Command{
	Use:   "whitelist",
	Short: "Inspect and edit the authorization lists",
}

var whitelistListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the members of a list in insertion order",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		lists, cleanup, err := openLists()
		if err != nil {
			return err
		}
		defer cleanup()

		list, err := lists.ByName(listName)
		if err != nil {
			return err
		}
		entries, err := list.Entries(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to read %s list: %w", listName, err)
		}

		if outputJSON {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			return encoder.Encode(entries)
		}

		titleColor.Printf("%s list (%d)\n", listName, len(entries))
		if len(entries) == 0 {
			dimColor.Println("  (empty)")
		}
		for _, name := range entries {
			fmt.Printf("  %s\n", name)
		}
		return nil
	},
}

var whitelistAddCmd = &cobra.Command{
	Use:   "add <username>",
	Short: "Add a user to a list",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		lists, cleanup, err := openLists()
		if err != nil {
			return err
		}
		defer cleanup()

		list, err := lists.ByName(listName)
		if err != nil {
			return err
		}
		added, err := list.Add(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("failed to add %s to %s list: %w", args[0], listName, err)
		}
		if added {
			successColor.Printf("added %s to the %s list\n", args[0], listName)
		} else {
			warnColor.Printf("%s is already on the %s list\n", args[0], listName)
		}
		return nil
	},
}

var whitelistCheckCmd = &cobra.Command{
	Use:   "check <username>",
	Short: "Show which lists a user is on and whether they may run CI",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		lists, cleanup, err := openLists()
		if err != nil {
			return err
		}
		defer cleanup()

		name := args[0]
		onUser, err := lists.User.Contains(cmd.Context(), name)
		if err != nil {
			return err
		}
		onAdmin, err := lists.Admin.Contains(cmd.Context(), name)
		if err != nil {
			return err
		}

		fmt.Printf("user list:  %v\n", onUser)
		fmt.Printf("admin list: %v\n", onAdmin)
		if onUser || onAdmin {
			successColor.Printf("%s may run CI\n", name)
		} else {
			warnColor.Printf("%s may not run CI\n", name)
		}
		return nil
	},
}

// openLists loads the configuration and opens the lists the server uses.
func openLists() (*storage.Lists, func(), error) {
	cfg, err := config.LoadCLIConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	log := cliLogger(cfg)
	lists, cleanup, err := storage.Open(cfg, log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open authorization lists: %w", err)
	}
	return lists, cleanup, nil
}

func cliLogger(cfg *config.Config) *slog.Logger {
	return logger.NewLogger(cfg.Logging, os.Stderr)
}

func init() { //nolint:gochecknoinits // Cobra's init function for command registration
	whitelistCmd.PersistentFlags().StringVarP(&listName, "list", "l", storage.UserListName, "List to operate on (user or admin)")
	whitelistListCmd.Flags().BoolVar(&outputJSON, "json", false, "Output entries as JSON")

	whitelistCmd.AddCommand(whitelistListCmd, whitelistAddCmd, whitelistCheckCmd)
	rootCmd.AddCommand(whitelistCmd)
}

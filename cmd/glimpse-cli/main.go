package main

import (
	"fmt"
	"os"
	"strings"

	"glimpse/internal/collection"
	"glimpse/internal/sequence"

	"github.com/spf13/cobra"
)

var (
	dirFlag  string
	extsFlag []string
	mgr      *collection.Manager
)

func cliLogger(msg string) {
	fmt.Fprintf(os.Stderr, "[glimpse-cli] %s\n", msg)
}

// runScan walks the given roots to completion and returns the terminal
// result.
func runScan(roots, exts []string) sequence.Result {
	s := sequence.Start(sequence.Config{Roots: roots, Extensions: exts})
	for {
		select {
		case _, ok := <-s.Progress():
			if !ok {
				return <-s.Done()
			}
		case res := <-s.Done():
			return res
		}
	}
}

// NewRootCmd creates the root command for the CLI application. It takes a
// function responsible for initializing the collection manager, so tests can
// point it at a temporary directory.
func NewRootCmd(getManager func(dir string, logger collection.LoggerFunc) (*collection.Manager, error)) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "glimpse-cli",
		Short: "Glimpse CLI - manage image collections",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			mgr, err = getManager(dirFlag, cliLogger)
			if err != nil {
				return fmt.Errorf("failed to initialize collection manager: %w", err)
			}
			return nil
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List saved collections",
		RunE: func(cmd *cobra.Command, args []string) error {
			all, err := mgr.All()
			if err != nil {
				return err
			}
			if len(all) == 0 {
				cmd.Println("No collections found.")
				return nil
			}
			for _, c := range all {
				cmd.Printf("%s (%d folders, %d images)\n", c.Name, len(c.Paths), c.ImageCount)
			}
			return nil
		},
	}
	rootCmd.AddCommand(listCmd)

	createCmd := &cobra.Command{
		Use:   "create [name] [folder...]",
		Short: "Create a collection from one or more folders",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			paths := args[1:]
			c, err := mgr.Create(name, paths)
			if err != nil {
				return err
			}
			// Count the images up front so list output is meaningful.
			res := runScan(c.Paths, nil)
			switch res.Status {
			case sequence.StatusSuccess, sequence.StatusPartial:
				c.ImageCount = len(res.Images)
				if err := mgr.Save(c); err != nil {
					return err
				}
			}
			cmd.Printf("Created collection '%s' with %d images.\n", c.Name, c.ImageCount)
			for _, w := range res.Warnings {
				cmd.Printf("Warning: %s: %v\n", w.Path, w.Err)
			}
			return nil
		},
	}
	rootCmd.AddCommand(createCmd)

	showCmd := &cobra.Command{
		Use:   "show [name]",
		Short: "Show a collection's folders",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := mgr.Load(args[0])
			if err != nil {
				return err
			}
			cmd.Printf("Collection: %s\n", c.Name)
			cmd.Printf("Created: %s\n", c.CreatedDate)
			if c.LastUsed != "" {
				cmd.Printf("Last used: %s\n", c.LastUsed)
			}
			cmd.Printf("Images: %d\n", c.ImageCount)
			cmd.Println("Folders:")
			for _, p := range c.Paths {
				cmd.Printf("  %s\n", p)
			}
			return nil
		},
	}
	rootCmd.AddCommand(showCmd)

	deleteCmd := &cobra.Command{
		Use:   "delete [name]",
		Short: "Delete a collection (image files are not touched)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !mgr.Exists(args[0]) {
				return fmt.Errorf("no collection named %q", args[0])
			}
			if err := mgr.Delete(args[0]); err != nil {
				return err
			}
			cmd.Printf("Deleted collection '%s'.\n", args[0])
			return nil
		},
	}
	rootCmd.AddCommand(deleteCmd)

	scanCmd := &cobra.Command{
		Use:   "scan [folder...]",
		Short: "Count the images a set of folders would contribute",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res := runScan(args, extsFlag)
			switch res.Status {
			case sequence.StatusFailed:
				return res.Err
			case sequence.StatusPartial:
				cmd.Printf("Found %d images (partial - %d location(s) unreadable).\n", len(res.Images), len(res.Warnings))
				for _, w := range res.Warnings {
					cmd.Printf("Warning: %s: %v\n", w.Path, w.Err)
				}
			default:
				cmd.Printf("Found %d images.\n", len(res.Images))
			}
			return nil
		},
	}
	scanCmd.Flags().StringSliceVar(&extsFlag, "ext", nil,
		"image extensions to match (default "+strings.Join(sequence.DefaultExtensions, ",")+")")
	rootCmd.AddCommand(scanCmd)

	rootCmd.PersistentFlags().StringVar(&dirFlag, "collections-dir", "", "Path to the collections directory")

	return rootCmd
}

func main() {
	rootCmd := NewRootCmd(collection.NewManager)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

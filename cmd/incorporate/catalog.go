package main

import (
	"context"
	"fmt"
	"os"

	"github.com/aretw0/incorporate/internal/presentation/graph"
	"github.com/aretw0/incorporate/pkg/catalog"
	"github.com/spf13/cobra"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect question catalogs",
}

var catalogPrintCmd = &cobra.Command{
	Use:   "print",
	Short: "Print the active catalog (built-in unless --catalog is set)",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("catalog")
		format, _ := cmd.Flags().GetString("format")

		c := catalog.Default()
		if path != "" {
			var err error
			if c, err = catalog.LoadFile(path); err != nil {
				return err
			}
		}
		return catalog.Encode(os.Stdout, c.Definition(), catalog.Format(format))
	},
}

var catalogValidateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Validate a catalog file and report every integrity error",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := catalog.LoadFile(args[0])
		if err != nil {
			for _, e := range catalog.IntegrityErrors(err) {
				fmt.Fprintf(os.Stderr, "  - %v\n", e)
			}
			return err
		}
		fmt.Printf("%s: ok (%d questions)\n", args[0], c.Size())
		return nil
	},
}

var catalogGraphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Render the question flow as a Mermaid flowchart",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		a, err := newApp(ctx, cmd)
		if err != nil {
			return err
		}
		defer a.Close(ctx)

		var overlay *graph.Overlay
		if id, _ := cmd.Flags().GetString("session"); id != "" {
			s, err := a.sessions.Load(ctx, id)
			if err != nil {
				return err
			}
			overlay = graph.OverlayFor(s)
		}

		out, err := graph.Mermaid(a.engine.Catalog(), overlay)
		if err != nil {
			return err
		}
		fmt.Print(out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(catalogCmd)
	catalogCmd.AddCommand(catalogPrintCmd, catalogValidateCmd, catalogGraphCmd)
	catalogGraphCmd.Flags().String("session", "", "Highlight the progress of a stored session")
	catalogPrintCmd.Flags().StringP("format", "f", string(catalog.FormatYAML), "Output format: yaml or json")
}

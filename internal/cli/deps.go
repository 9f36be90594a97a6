package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/majo33/atom/internal/core/resources"
)

var ErrUnavailable = errors.New("resources unavailable")

// DepsEntry is one line of deps output.
type DepsEntry struct {
	Name      string   `json:"name"`
	Available bool     `json:"available"`
	Sources   []string `json:"sources,omitempty"`
}

// NewDepsCommand creates the deps command.
func NewDepsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "deps <resource>...",
		Short: "Load resources and print what each depends on",
		Long: `Load every named resource ("<tag>:<name>", e.g. texture:brick) and print
its recorded sources: upstream resources and files, transitively closed.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDeps(cmd, rootOpts, args)
		},
	}
}

func runDeps(cmd *cobra.Command, rootOpts *RootOptions, names []string) error {
	cfg, err := loadConfig(rootOpts)
	if err != nil {
		return err
	}
	svc := resources.NewService(
		resources.WithFS(os.DirFS(cfg.Resources.Root)),
		resources.WithPaths(cfg.Resources.Paths()),
	)

	entries := make([]DepsEntry, 0, len(names))
	missing := 0
	for _, name := range names {
		r, ok := svc.Get(name)
		if !ok {
			missing++
			entries = append(entries, DepsEntry{Name: name})
			continue
		}
		entries = append(entries, DepsEntry{Name: name, Available: true, Sources: r.Sources()})
	}

	if err := writeDeps(cmd.OutOrStdout(), rootOpts.Format, entries); err != nil {
		return err
	}
	if missing > 0 {
		return fmt.Errorf("%w: %d of %d", ErrUnavailable, missing, len(names))
	}
	return nil
}

func writeDeps(w io.Writer, format string, entries []DepsEntry) error {
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}
	for _, e := range entries {
		if !e.Available {
			fmt.Fprintf(w, "%s (unavailable)\n", e.Name)
			continue
		}
		fmt.Fprintln(w, e.Name)
		for _, s := range e.Sources {
			fmt.Fprintf(w, "  %s\n", s)
		}
	}
	return nil
}

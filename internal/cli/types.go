package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/majo33/atom/internal/core/components"
	"github.com/majo33/atom/internal/core/models"
)

// NewTypesCommand creates the types command.
func NewTypesCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List the registered component types",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			types := models.NewTypeRegistry()
			if err := components.RegisterBuiltins(types); err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if rootOpts.Format == "json" {
				type entry struct {
					ID   models.ComponentID `json:"id"`
					Name string             `json:"name"`
				}
				var out []entry
				for _, t := range types.Types() {
					out = append(out, entry{ID: t.ID, Name: t.Name})
				}
				return json.NewEncoder(w).Encode(out)
			}
			for _, t := range types.Types() {
				fmt.Fprintf(w, "%d\t%s\n", t.ID, t.Name)
			}
			return nil
		},
	}
}

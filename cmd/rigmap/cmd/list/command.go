// Package list implements the list command.
package list

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hamcat/rigmap/cmd/application"
	"github.com/hamcat/rigmap/internal/cmd/output"
	"github.com/hamcat/rigmap/pkg/catalogs"
	"github.com/hamcat/rigmap/pkg/normalize"
)

// NewCommand creates the list command with app dependencies.
func NewCommand(app application.Application) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list [resource]",
		GroupID: "core",
		Short:   "List radios or brands from the catalog",
		Long: `List displays resources from the stored catalog.

Available subcommands:
  radios   - canonical radio records
  brands   - brand identities and their grantee codes`,
		Example: `  rigmap list radios --brand baofeng
  rigmap list radios --search uv-5 -o wide
  rigmap list brands -o yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return fmt.Errorf("unknown resource: %s", args[0])
		},
	}

	cmd.AddCommand(NewRadiosCommand(app))
	cmd.AddCommand(NewBrandsCommand(app))

	return cmd
}

// RadioFlags holds the radio list filters.
type RadioFlags struct {
	Brand  string
	Search string
	Limit  int
}

// NewRadiosCommand creates the list radios subcommand.
func NewRadiosCommand(app application.Application) *cobra.Command {
	flags := &RadioFlags{}

	cmd := &cobra.Command{
		Use:     "radios",
		Aliases: []string{"radio"},
		Short:   "List radio records",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			st, err := app.Store(ctx)
			if err != nil {
				return err
			}
			cat, err := st.Load(ctx)
			if err != nil {
				return err
			}

			radios := FilterRadios(cat.Radios().List(), flags)
			format := output.DetectFormat(app.OutputFormat())
			data := output.RadiosToTableData(radios, format == output.FormatWide)
			return output.Write(cmd.OutOrStdout(), string(format), radios, data)
		},
	}

	cmd.Flags().StringVar(&flags.Brand, "brand", "", "only radios of this brand (case-insensitive)")
	cmd.Flags().StringVarP(&flags.Search, "search", "s", "", "only radios whose model or FCC ID contains this text")
	cmd.Flags().IntVarP(&flags.Limit, "limit", "l", 0, "maximum number of radios to show")

	return cmd
}

// FilterRadios applies the list filters and sorts by normalized key.
func FilterRadios(radios []catalogs.Radio, flags *RadioFlags) []catalogs.Radio {
	brand := normalize.Brand(flags.Brand)
	search := strings.ToLower(strings.TrimSpace(flags.Search))

	out := make([]catalogs.Radio, 0, len(radios))
	for _, r := range radios {
		if brand != "" && normalize.Brand(r.Brand) != brand {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(r.Model), search) &&
			!strings.Contains(strings.ToLower(r.FCCID), search) {
			continue
		}
		out = append(out, r)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Key().String() < out[j].Key().String()
	})
	if flags.Limit > 0 && len(out) > flags.Limit {
		out = out[:flags.Limit]
	}
	return out
}

// NewBrandsCommand creates the list brands subcommand.
func NewBrandsCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:     "brands",
		Aliases: []string{"brand"},
		Short:   "List brand identities",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			st, err := app.Store(ctx)
			if err != nil {
				return err
			}
			cat, err := st.Load(ctx)
			if err != nil {
				return err
			}

			brands := cat.Brands().List()
			return output.Write(cmd.OutOrStdout(), app.OutputFormat(), brands, output.BrandsToTableData(brands))
		},
	}
}

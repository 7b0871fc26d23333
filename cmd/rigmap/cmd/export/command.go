// Package export implements the export command.
package export

import (
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hamcat/rigmap/cmd/application"
	"github.com/hamcat/rigmap/internal/cmd/output"
	"github.com/hamcat/rigmap/pkg/catalogs"
	"github.com/hamcat/rigmap/pkg/constants"
	"github.com/hamcat/rigmap/pkg/errors"
)

// Export formats.
const (
	TypeYAML     = "yaml"
	TypeJSON     = "json"
	TypeMarkdown = "markdown"
)

// NewCommand creates the export command.
func NewCommand(app application.Application) *cobra.Command {
	var typ string

	cmd := &cobra.Command{
		Use:     "export [FILE]",
		GroupID: "core",
		Short:   "Export the catalog as a YAML, JSON or markdown snapshot",
		Long: `Export writes the stored catalog to FILE, or to stdout when FILE is
omitted. The type is taken from --type, then from the file extension,
and defaults to YAML. Markdown exports carry the brand and radio tables.`,
		Example: `  rigmap export catalog.yaml
  rigmap export --type json > catalog.json
  rigmap export radios.md`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, err := app.Store(ctx)
			if err != nil {
				return err
			}
			cat, err := st.Load(ctx)
			if err != nil {
				return err
			}

			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			t, err := resolveType(typ, path)
			if err != nil {
				return err
			}

			if path == "" {
				return Write(cmd.OutOrStdout(), cat, t)
			}
			if err := writeFile(path, cat, t); err != nil {
				return err
			}
			app.Logger().Info().
				Str("path", path).
				Int("radios", cat.Radios().Len()).
				Int("brands", cat.Brands().Len()).
				Msg("Catalog exported")
			return nil
		},
	}

	cmd.Flags().StringVarP(&typ, "type", "t", "", "export type: yaml, json, markdown")
	return cmd
}

func resolveType(typ, path string) (string, error) {
	switch t := strings.ToLower(typ); t {
	case TypeYAML, TypeJSON, TypeMarkdown:
		return t, nil
	case "md":
		return TypeMarkdown, nil
	case "":
	default:
		return "", &errors.ValidationError{Field: "type", Value: typ, Message: "must be yaml, json or markdown"}
	}

	lower := strings.ToLower(path)
	if strings.HasSuffix(lower, ".md") || strings.HasSuffix(lower, ".markdown") {
		return TypeMarkdown, nil
	}
	return string(catalogs.FormatFromPath(path)), nil
}

// Write renders cat to w.
func Write(w io.Writer, cat catalogs.Reader, typ string) error {
	if typ != TypeMarkdown {
		return catalogs.SnapshotOf(cat).Encode(w, catalogs.Format(typ))
	}
	return output.Write(w, string(output.FormatMarkdown), nil,
		output.BrandsToTableData(cat.Brands().List()),
		output.RadiosToTableData(cat.Radios().List(), true),
	)
}

func writeFile(path string, cat catalogs.Reader, typ string) error {
	if typ != TypeMarkdown && catalogs.Format(typ) == catalogs.FormatFromPath(path) {
		return catalogs.SaveSnapshot(cat, path)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, constants.FilePermissions) //nolint:gosec // path comes from the operator
	if err != nil {
		return errors.WrapIO("create", path, err)
	}
	if err := Write(f, cat, typ); err != nil {
		_ = f.Close()
		return err
	}
	return errors.WrapIO("close", path, f.Close())
}

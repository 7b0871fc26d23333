// Package grantees implements the grantees command.
package grantees

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hamcat/rigmap/cmd/application"
	"github.com/hamcat/rigmap/internal/cmd/output"
	"github.com/hamcat/rigmap/pkg/errors"
	"github.com/hamcat/rigmap/pkg/grantee"
)

// NewCommand creates the grantees command.
func NewCommand(app application.Application) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "grantees",
		GroupID: "core",
		Short:   "Inspect the grantee code table",
		Long: `The grantee table maps FCC grantee codes to brand names. It is built from
the curated list (embedded, or grantees.file) plus every code recorded on a
stored brand. Load the FCC grantee extract with "rigmap import --type grantees".`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(NewListCommand(app))
	cmd.AddCommand(NewParseCommand(app))

	return cmd
}

// NewListCommand creates the grantees list subcommand.
func NewListCommand(app application.Application) *cobra.Command {
	var brand string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List grantee codes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			table, err := app.Table(cmd.Context())
			if err != nil {
				return err
			}

			entries := table.Entries()
			if brand != "" {
				codes := make(map[string]bool)
				for _, c := range table.CodesFor(brand) {
					codes[c] = true
				}
				filtered := entries[:0]
				for _, e := range entries {
					if codes[e.Code] {
						filtered = append(filtered, e)
					}
				}
				entries = filtered
			}
			return output.Write(cmd.OutOrStdout(), app.OutputFormat(), entries, output.GranteesToTableData(entries))
		},
	}

	cmd.Flags().StringVar(&brand, "brand", "", "only codes owned by this brand")
	return cmd
}

// Parsed is the outcome of parsing one FCC ID.
type Parsed struct {
	FCCID       string `json:"fcc_id" yaml:"fcc_id"`
	GranteeCode string `json:"grantee_code,omitempty" yaml:"grantee_code,omitempty"`
	Brand       string `json:"brand,omitempty" yaml:"brand,omitempty"`
	Model       string `json:"model,omitempty" yaml:"model,omitempty"`
	Error       string `json:"error,omitempty" yaml:"error,omitempty"`
}

// NewParseCommand creates the grantees parse subcommand.
func NewParseCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:     "parse FCCID...",
		Short:   "Split FCC IDs into grantee code, brand and model",
		Example: `  rigmap grantees parse 2AJGM-UV5R 2AJGMUV5R AFJ-IC-705`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := app.Table(cmd.Context())
			if err != nil {
				return err
			}

			results := Parse(table, args)
			data := output.Data{
				Headers: []string{"FCC ID", "Code", "Brand", "Model", "Error"},
			}
			for _, r := range results {
				data.Rows = append(data.Rows, []string{r.FCCID, r.GranteeCode, r.Brand, r.Model, r.Error})
			}
			return output.Write(cmd.OutOrStdout(), app.OutputFormat(), results, data)
		},
	}
}

// Parse resolves every id through table. Unresolved IDs carry the reason
// and the display guess for their code.
func Parse(table *grantee.Table, ids []string) []Parsed {
	out := make([]Parsed, 0, len(ids))
	for _, id := range ids {
		res, err := table.Parse(id)
		p := Parsed{FCCID: res.FCCID, GranteeCode: res.GranteeCode, Brand: res.Brand, Model: res.Model}
		if p.FCCID == "" {
			p.FCCID = id
		}
		if err != nil {
			var unresolved *errors.UnresolvedGranteeError
			if errors.As(err, &unresolved) && p.GranteeCode == "" {
				if code, _ := grantee.GuessCode(id); code != "" {
					p.Error = fmt.Sprintf("%s (code looks like %s)", unresolved.Reason, code)
				}
			}
			if p.Error == "" {
				p.Error = err.Error()
			}
		}
		out = append(out, p)
	}
	return out
}

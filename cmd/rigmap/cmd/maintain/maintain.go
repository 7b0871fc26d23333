// Package maintain implements the catalog maintenance commands: dedupe,
// rename, clean-prefix and sync-brands. Each runs as one store transaction.
package maintain

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/hamcat/rigmap/cmd/application"
	"github.com/hamcat/rigmap/internal/cmd/history"
	"github.com/hamcat/rigmap/internal/cmd/output"
	"github.com/hamcat/rigmap/internal/store"
	"github.com/hamcat/rigmap/pkg/logging"
	"github.com/hamcat/rigmap/pkg/reconcile"
)

// operation runs one store mutation with the reconcile options of the run.
type operation func(cmd *cobra.Command, st *store.Store, opts []reconcile.Option) (*reconcile.Result, error)

// runOperation opens the store, runs op, records metrics and prints the
// result. rec may be nil for operations that merge no fields.
func runOperation(cmd *cobra.Command, app application.Application, name string, rec *history.Recorder, op operation) error {
	ctx := logging.WithOperation(cmd.Context(), name)
	cmd.SetContext(ctx)

	st, err := app.Store(ctx)
	if err != nil {
		return err
	}

	var opts []reconcile.Option
	if t := rec.Tracker(); t != nil {
		opts = append(opts, reconcile.WithProvenance(t))
	}

	start := time.Now()
	res, err := op(cmd, st, opts)
	m := app.Metrics()
	m.RecordOperation(name, time.Since(start), err)
	if err != nil {
		return err
	}
	m.RecordResult(res)

	logging.FromContext(ctx).Info().
		Int("records", len(res.Records)).
		Dur("duration", res.Metadata.Duration).
		Msg(res.Summary())

	if err := printResult(cmd, app, res); err != nil {
		return err
	}
	return rec.Finish(cmd.OutOrStdout(), output.DetectFormat(app.OutputFormat()), false)
}

func printResult(cmd *cobra.Command, app application.Application, res *reconcile.Result) error {
	w := cmd.OutOrStdout()
	format := output.DetectFormat(app.OutputFormat())
	if format == output.FormatTable || format == output.FormatWide {
		fmt.Fprintln(w, res.Summary())
	}

	tables := []output.Data{output.ResultToTableData(res)}
	if len(res.CreatedBrands) > 0 {
		tables = append(tables, output.BrandsToTableData(res.CreatedBrands))
	}
	return output.Write(w, string(format), res.Metadata, tables...)
}

// NewDedupeCommand creates the dedupe command.
func NewDedupeCommand(app application.Application) *cobra.Command {
	var brand string

	cmd := &cobra.Command{
		Use:     "dedupe",
		GroupID: "maintenance",
		Short:   "Merge stored radios that share a brand and model",
		Long: `Dedupe groups the stored radios by normalized brand and model and merges
each group into its most complete record. No field value is lost: blank
fields are filled from the other records and their notes are appended.`,
		Example: `  rigmap dedupe
  rigmap dedupe --brand baofeng`,
		Args: cobra.NoArgs,
	}
	rec := history.AddFlag(cmd)
	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		return runOperation(cmd, app, "dedupe", rec, func(cmd *cobra.Command, st *store.Store, opts []reconcile.Option) (*reconcile.Result, error) {
			if brand != "" {
				opts = append(opts, reconcile.WithPartition(brand))
			}
			return st.Deduplicate(cmd.Context(), opts...)
		})
	}

	cmd.Flags().StringVar(&brand, "brand", "", "only deduplicate radios of this brand")
	return cmd
}

// NewRenameCommand creates the rename command.
func NewRenameCommand(app application.Application) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "rename OLD NEW",
		GroupID: "maintenance",
		Short:   "Rename a brand and merge its radios into the new name",
		Long: `Rename moves every radio whose brand is exactly OLD to NEW, merges radios
that now collide with existing NEW records, folds the OLD brand identity into
NEW and points OLD's grantee codes at NEW.

--provenance appends the moved and merged field values to a YAML file.`,
		Example: `  rigmap rename Baofeng Pofung
  rigmap rename --provenance provenance.yaml Btech Baofeng`,
		Args: cobra.ExactArgs(2),
	}
	rec := history.AddFlag(cmd)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runOperation(cmd, app, "rename", rec, func(cmd *cobra.Command, st *store.Store, opts []reconcile.Option) (*reconcile.Result, error) {
			table, err := app.Table(cmd.Context())
			if err != nil {
				return nil, err
			}
			return st.RenameBrand(cmd.Context(), table, args[0], args[1], opts...)
		})
	}
	return cmd
}

// NewCleanPrefixCommand creates the clean-prefix command.
func NewCleanPrefixCommand(app application.Application) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "clean-prefix BRAND CODE",
		GroupID: "maintenance",
		Short:   "Strip a grantee code that leaked into model names",
		Long: `Clean-prefix removes a leading CODE (with or without "-") from the model
names of BRAND's radios, for rows whose model was copied from an FCC ID,
and merges the records that become duplicates.`,
		Example: `  rigmap clean-prefix Baofeng 2AJGM`,
		Args:    cobra.ExactArgs(2),
	}
	rec := history.AddFlag(cmd)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runOperation(cmd, app, "clean-prefix", rec, func(cmd *cobra.Command, st *store.Store, opts []reconcile.Option) (*reconcile.Result, error) {
			return st.CleanGranteePrefix(cmd.Context(), args[0], args[1], opts...)
		})
	}
	return cmd
}

// NewSyncBrandsCommand creates the sync-brands command.
func NewSyncBrandsCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:     "sync-brands",
		GroupID: "maintenance",
		Short:   "Create brand identities for every radio brand",
		Long: `Sync-brands creates a brand identity for every brand used by a stored radio
that has none yet, taking its grantee code from the grantee table when the
code is not already owned by another brand.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runOperation(cmd, app, "sync-brands", nil, func(cmd *cobra.Command, st *store.Store, _ []reconcile.Option) (*reconcile.Result, error) {
				table, err := app.Table(cmd.Context())
				if err != nil {
					return nil, err
				}
				return st.SyncBrands(cmd.Context(), table)
			})
		},
	}
}

// Package importer implements the import command.
package importer

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hamcat/rigmap/cmd/application"
	"github.com/hamcat/rigmap/internal/cmd/history"
	"github.com/hamcat/rigmap/internal/cmd/output"
	"github.com/hamcat/rigmap/internal/ingest"
	"github.com/hamcat/rigmap/pkg/catalogs"
	"github.com/hamcat/rigmap/pkg/differ"
	"github.com/hamcat/rigmap/pkg/errors"
	"github.com/hamcat/rigmap/pkg/pipeline"
	"github.com/hamcat/rigmap/pkg/reconcile"
)

// Flags holds the import command flags.
type Flags struct {
	Type       string
	Unresolved string
	Backfill   bool
	DryRun     bool
}

// Summary is the machine-readable outcome of an import.
type Summary struct {
	RunID   string                   `json:"run_id" yaml:"run_id"`
	DryRun  bool                     `json:"dry_run" yaml:"dry_run"`
	Records int                      `json:"records" yaml:"records"`
	Stats   pipeline.Stats           `json:"stats" yaml:"stats"`
	Merge   reconcile.Statistics     `json:"merge" yaml:"merge"`
	Skipped map[ingest.Kind]int      `json:"skipped,omitempty" yaml:"skipped,omitempty"`
	Changes *differ.ChangesetSummary `json:"changes,omitempty" yaml:"changes,omitempty"`
}

// NewCommand creates the import command.
func NewCommand(app application.Application) *cobra.Command {
	flags := &Flags{}

	cmd := &cobra.Command{
		Use:     "import FILE...",
		GroupID: "core",
		Short:   "Import and reconcile source files into the catalog",
		Long: `Import reads catalog sheets, brand sheets, FCC grant extracts and the FCC
grantee extract, resolves FCC IDs to brands, merges every row with the
records already stored and writes the result in one transaction.

The input type is taken from the file extension (.csv, .md, .xml) unless
--type is given. Brand sheets (brands) and grantee extracts (grantees)
always need --type.

--provenance appends the source of every merged field value to a YAML
file and prints a provenance report with table output.`,
		Example: `  rigmap import radios.csv notes.md
  rigmap import --type grantees grantees.xml
  rigmap import --type fcc --unresolved drop grants.xml
  rigmap import --dry-run radios.csv
  rigmap import --provenance provenance.yaml radios.csv`,
		Args: cobra.MinimumNArgs(1),
	}
	rec := history.AddFlag(cmd)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return run(cmd, app, flags, rec, args)
	}

	cmd.Flags().StringVarP(&flags.Type, "type", "t", "", "input type: csv, markdown, brands, fcc, grantees")
	cmd.Flags().StringVar(&flags.Unresolved, "unresolved", "", "unresolved FCC IDs: keep or drop (overrides config)")
	cmd.Flags().BoolVar(&flags.Backfill, "backfill-fcc-ids", false, "compose FCC IDs for radios of brands with a known grantee code")
	cmd.Flags().BoolVar(&flags.DryRun, "dry-run", false, "reconcile without writing to the store")

	return cmd
}

func run(cmd *cobra.Command, app application.Application, flags *Flags, rec *history.Recorder, paths []string) error {
	ctx := cmd.Context()
	logger := app.Logger()

	batch, err := readAll(ctx, flags.Type, paths)
	if err != nil {
		return err
	}
	logger.Debug().Int("rows", batch.Len()).Strs("files", paths).Msg("Read input files")

	st, err := app.Store(ctx)
	if err != nil {
		return err
	}
	table, err := app.Table(ctx)
	if err != nil {
		return err
	}

	opts, err := pipelineOptions(cmd, app, flags, rec)
	if err != nil {
		return err
	}
	work := table.Clone()
	p, err := pipeline.New(work, opts...)
	if err != nil {
		return err
	}

	var (
		result  *pipeline.Result
		changes *differ.Changeset
	)
	if flags.DryRun {
		cat, err := st.Load(ctx)
		if err != nil {
			return err
		}
		before, err := cat.Copy()
		if err != nil {
			return err
		}
		if result, err = p.Run(ctx, cat, batch); err != nil {
			return err
		}
		changes = differ.New(differ.WithValueWidth(changeValueWidth)).Catalogs(before, cat)
	} else {
		_, err = st.Apply(ctx, func(ctx context.Context, cat catalogs.Catalog) (*reconcile.Result, error) {
			res, err := p.Run(ctx, cat, batch)
			if err != nil {
				return nil, err
			}
			result = res
			return res.Reconcile, nil
		})
		if err != nil {
			return err
		}
		table.ReplaceWith(work)
	}

	if err := printResult(cmd, app, result, changes); err != nil {
		return err
	}
	return rec.Finish(cmd.OutOrStdout(), output.DetectFormat(app.OutputFormat()), flags.DryRun)
}

// changeValueWidth caps old and new values in the dry-run change table.
const changeValueWidth = 40

// readAll reads every file into one batch. A file that cannot be opened or
// decoded as a whole fails the import; bad rows only land in the report.
func readAll(ctx context.Context, typ string, paths []string) (*ingest.Batch, error) {
	var explicit ingest.Format
	if typ != "" {
		f, err := ingest.ParseFormat(typ)
		if err != nil {
			return nil, err
		}
		explicit = f
	}

	batch := ingest.NewBatch(strings.Join(paths, ","))
	for _, path := range paths {
		format := explicit
		if format == "" {
			f, ok := ingest.FormatFromPath(path)
			if !ok {
				return nil, &errors.ValidationError{
					Field:   "type",
					Value:   path,
					Message: fmt.Sprintf("cannot tell the input type of %s, use --type", path),
				}
			}
			format = f
		}
		b, err := ingest.ReadFile(ctx, path, format)
		if err != nil {
			return nil, err
		}
		batch.Append(b)
	}
	return batch, nil
}

func pipelineOptions(cmd *cobra.Command, app application.Application, flags *Flags, rec *history.Recorder) ([]pipeline.Option, error) {
	opts := app.PipelineOptions()
	if cmd.Flags().Changed("unresolved") {
		policy, err := pipeline.ParseUnresolvedPolicy(flags.Unresolved)
		if err != nil {
			return nil, err
		}
		opts = append(opts, pipeline.WithUnresolvedPolicy(policy))
	}
	if cmd.Flags().Changed("backfill-fcc-ids") {
		opts = append(opts, pipeline.WithFCCIDBackfill(flags.Backfill))
	}
	if t := rec.Tracker(); t != nil {
		opts = append(opts, pipeline.WithProvenance(t))
	}
	return opts, nil
}

func printResult(cmd *cobra.Command, app application.Application, result *pipeline.Result, changes *differ.Changeset) error {
	dryRun := changes != nil
	summary := Summary{
		RunID:   result.RunID,
		DryRun:  dryRun,
		Records: len(result.Reconcile.Records),
		Stats:   result.Stats,
		Merge:   result.Reconcile.Metadata.Stats,
		Skipped: result.Report.Counts,
	}
	if dryRun {
		summary.Changes = &changes.Summary
	}

	w := cmd.OutOrStdout()
	format := output.DetectFormat(app.OutputFormat())
	if format == output.FormatTable || format == output.FormatWide {
		prefix := ""
		if dryRun {
			prefix = "dry run: "
		}
		fmt.Fprintf(w, "%s%d rows read, %d accepted; %d records, %d resolved, %d unresolved, %d dropped\n",
			prefix, result.Report.Rows, result.Report.Accepted, summary.Records,
			result.Stats.Resolved, result.Stats.Unresolved, result.Stats.Dropped)
		if dryRun {
			fmt.Fprintf(w, "would apply: %s\n", changes)
		}
	}

	tables := []output.Data{output.ResultToTableData(result.Reconcile)}
	if result.Report.Total() > 0 {
		tables = append(tables, output.ReportToTableData(result.Report))
	}
	if dryRun && changes.HasChanges() {
		tables = append(tables, output.ChangesetToTableData(changes))
	}
	return output.Write(w, string(format), summary, tables...)
}

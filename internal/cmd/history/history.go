// Package history wires the --provenance flag of the commands that change
// the catalog.
package history

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/hamcat/rigmap/internal/cmd/output"
	"github.com/hamcat/rigmap/pkg/provenance"
)

// Recorder collects field provenance for one command run.
type Recorder struct {
	path    string
	tracker provenance.Tracker
}

// AddFlag registers --provenance on cmd and returns the recorder it fills.
func AddFlag(cmd *cobra.Command) *Recorder {
	r := &Recorder{}
	cmd.Flags().StringVar(&r.path, "provenance", "", "append field provenance to this YAML file and print a report")
	return r
}

// Enabled reports whether --provenance was given. A nil Recorder is disabled.
func (r *Recorder) Enabled() bool {
	return r != nil && r.path != ""
}

// Tracker returns the run's tracker, or nil when recording is off.
func (r *Recorder) Tracker() provenance.Tracker {
	if !r.Enabled() {
		return nil
	}
	if r.tracker == nil {
		r.tracker = provenance.NewTracker(true)
	}
	return r.tracker
}

// Finish appends what the run recorded to the provenance file and, for
// table output, writes a report to w. A dry run only prints.
func (r *Recorder) Finish(w io.Writer, format output.Format, dryRun bool) error {
	if !r.Enabled() || r.tracker == nil {
		return nil
	}
	m := r.tracker.Map()
	if !dryRun {
		if err := provenance.Append(r.path, m); err != nil {
			return err
		}
	}
	if len(m) == 0 || (format != output.FormatTable && format != output.FormatWide) {
		return nil
	}
	_, err := fmt.Fprint(w, "\n", provenance.GenerateReport(m).String())
	return err
}

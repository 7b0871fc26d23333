package metrics

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hamcat/rigmap/pkg/catalogs"
	"github.com/hamcat/rigmap/pkg/reconcile"
)

func TestRecordRows(t *testing.T) {
	m, err := New()
	require.NoError(t, err)

	m.RecordRows("catalog_csv", OutcomeAccepted, 10)
	m.RecordRows("catalog_csv", OutcomeMalformed, 2)
	m.RecordRows("catalog_csv", OutcomeMalformed, 0)
	m.RecordRows("fcc_grant", OutcomeUnresolved, 1)

	assert.InDelta(t, 10, testutil.ToFloat64(m.rowsTotal.WithLabelValues("catalog_csv", OutcomeAccepted)), 0)
	assert.InDelta(t, 2, testutil.ToFloat64(m.rowsTotal.WithLabelValues("catalog_csv", OutcomeMalformed)), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.rowsTotal.WithLabelValues("fcc_grant", OutcomeUnresolved)), 0)
}

func TestRecordOperationAndResult(t *testing.T) {
	m, err := New()
	require.NoError(t, err)

	m.RecordOperation("dedupe", 20*time.Millisecond, nil)
	m.RecordOperation("dedupe", time.Millisecond, errors.New("boom"))
	assert.InDelta(t, 1, testutil.ToFloat64(m.operationsTotal.WithLabelValues("dedupe", "success")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.operationsTotal.WithLabelValues("dedupe", "error")), 0)

	res := &reconcile.Result{
		Operation: "rename",
		Records:   make([]catalogs.Radio, 14),
		Metadata: reconcile.ResultMetadata{Stats: reconcile.Statistics{
			Absorbed: 1, Renamed: 12, FieldsAdopted: 3, NotesAppended: 1,
		}},
	}
	m.RecordResult(res)
	m.RecordResult(nil)

	assert.InDelta(t, 1, testutil.ToFloat64(m.recordsAbsorbed.WithLabelValues("rename")), 0)
	assert.InDelta(t, 12, testutil.ToFloat64(m.renamedTotal), 0)
	assert.InDelta(t, 3, testutil.ToFloat64(m.fieldsTotal.WithLabelValues("adopted")), 0)
	assert.InDelta(t, 14, testutil.ToFloat64(m.catalogRecords), 0)
}

func TestNilMetricsAreNoops(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.RecordRows("x", OutcomeAccepted, 1)
		m.RecordOperation("x", time.Second, nil)
		m.RecordResult(&reconcile.Result{})
	})
}

func TestDuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewWithRegistry(reg)
	require.NoError(t, err)
	_, err = NewWithRegistry(reg)
	assert.Error(t, err)
}

func TestWriteTextfile(t *testing.T) {
	m, err := New()
	require.NoError(t, err)
	m.RecordRows("markdown", OutcomeAccepted, 5)

	path := filepath.Join(t.TempDir(), "rigmap.prom")
	require.NoError(t, m.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `rigmap_rows_total{outcome="accepted",source="markdown"} 5`)
}

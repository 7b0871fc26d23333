package importer

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hamcat/rigmap/internal/cmd/application"
	"github.com/hamcat/rigmap/internal/store"
	"github.com/hamcat/rigmap/pkg/errors"
	"github.com/hamcat/rigmap/pkg/grantee"
	"github.com/hamcat/rigmap/pkg/provenance"
)

func setup(t *testing.T) (*application.Mock, *store.Store, *grantee.Table) {
	t.Helper()
	st, err := store.Open(context.Background(), store.Config{Driver: store.DriverSQLite, DSN: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	table := grantee.NewTable()
	table.Seed(&grantee.Curated{Grantees: []grantee.Entry{{Brand: "Baofeng", Code: "2AJGM"}}})

	return &application.Mock{
		StoreFunc: func(context.Context) (*store.Store, error) { return st, nil },
		TableFunc: func(context.Context) (*grantee.Table, error) { return table, nil },
	}, st, table
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func execute(cmd *cobra.Command, args ...string) (string, error) {
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestImportCSV(t *testing.T) {
	app, st, _ := setup(t)
	path := writeFile(t, "radios.csv", "Brand,Model,Notes\nBaofeng,UV-5R,first\nbaofeng,uv-5r,second\nIcom,IC-705,\n")

	out, err := execute(NewCommand(app), path)
	require.NoError(t, err)
	assert.Contains(t, out, "3 rows read, 3 accepted; 2 records")

	cat, err := st.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, cat.Radios().Len())
}

func TestImportDryRunLeavesStoreUntouched(t *testing.T) {
	app, st, _ := setup(t)
	path := writeFile(t, "radios.csv", "Brand,Model\nIcom,IC-705\n")

	out, err := execute(NewCommand(app), "--dry-run", path)
	require.NoError(t, err)
	assert.Contains(t, out, "dry run: 1 rows read")
	assert.Contains(t, out, "would apply: Radios: 1 added")

	cat, err := st.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, cat.Radios().Len())
}

func TestImportGranteesUpdatesTable(t *testing.T) {
	app, st, table := setup(t)
	path := writeFile(t, "grantees.xml", `<Results>
<Row><grantee_code>2AYGE</grantee_code><grantee_name>Tidradio</grantee_name></Row>
</Results>`)

	_, err := execute(NewCommand(app), "--type", "grantees", path)
	require.NoError(t, err)

	name, ok := table.Lookup("2AYGE")
	require.True(t, ok)
	assert.Equal(t, "Tidradio", name)

	cat, err := st.Load(context.Background())
	require.NoError(t, err)
	brand, err := cat.Brand("Tidradio")
	require.NoError(t, err)
	assert.Equal(t, "2AYGE", brand.GranteeCode)
}

func TestImportRejectsUnknownPolicy(t *testing.T) {
	app, _, table := setup(t)
	grantees := writeFile(t, "grantees.xml", `<Results>
<Row><grantee_code>2AYGE</grantee_code><grantee_name>Tidradio</grantee_name></Row>
</Results>`)

	_, err := execute(NewCommand(app), "--type", "grantees", "--unresolved", "maybe", grantees)
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))

	_, ok := table.Lookup("2AYGE")
	assert.False(t, ok)
}

func TestImportUnknownExtension(t *testing.T) {
	app, _, _ := setup(t)
	path := writeFile(t, "radios.txt", "Brand,Model\n")

	_, err := execute(NewCommand(app), path)
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
}

func TestImportJSONSummary(t *testing.T) {
	app, _, _ := setup(t)
	app.OutputFormatFunc = func() string { return "json" }
	path := writeFile(t, "radios.csv", "Brand,Model\nIcom,IC-705\n")

	out, err := execute(NewCommand(app), path)
	require.NoError(t, err)
	assert.Contains(t, out, `"records": 1`)
	assert.Contains(t, out, `"run_id"`)
	assert.NotContains(t, out, "rows read")
}

func TestReadAllExplicitType(t *testing.T) {
	path := writeFile(t, "radios.txt", "Brand,Model\nIcom,IC-705\n")

	batch, err := readAll(context.Background(), "csv", []string{path})
	require.NoError(t, err)
	assert.Equal(t, 1, batch.Len())

	_, err = readAll(context.Background(), "pdf", []string{path})
	assert.Error(t, err)
}

func TestImportProvenance(t *testing.T) {
	app, _, _ := setup(t)
	path := writeFile(t, "radios.csv", "Brand,Model,Notes\nBaofeng,UV-5R,first\nbaofeng,uv-5r,second\n")
	record := filepath.Join(t.TempDir(), "provenance.yaml")

	out, err := execute(NewCommand(app), "--provenance", record, path)
	require.NoError(t, err)
	assert.Contains(t, out, "Provenance Report")
	assert.Contains(t, out, "(appended from catalog_csv)")

	saved, err := provenance.Load(record)
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.NotEmpty(t, saved.Provenance)
}

func TestImportProvenanceDryRunWritesNothing(t *testing.T) {
	app, _, _ := setup(t)
	path := writeFile(t, "radios.csv", "Brand,Model,Notes\nBaofeng,UV-5R,first\nbaofeng,uv-5r,second\n")
	record := filepath.Join(t.TempDir(), "provenance.yaml")

	out, err := execute(NewCommand(app), "--dry-run", "--provenance", record, path)
	require.NoError(t, err)
	assert.Contains(t, out, "Provenance Report")

	_, err = os.Stat(record)
	assert.True(t, os.IsNotExist(err))
}

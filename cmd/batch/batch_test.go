package batch

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"fjacquet/credit-report/cmd/root"
	"fjacquet/credit-report/internal/batch"
	"fjacquet/credit-report/internal/config"
	"fjacquet/credit-report/internal/container"
	"fjacquet/credit-report/internal/logging"
	"fjacquet/credit-report/internal/models"
	"fjacquet/credit-report/internal/parsererror"
	"fjacquet/credit-report/internal/store"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)


func setup(t *testing.T, f Flags) (*container.Container, *cobra.Command, *bytes.Buffer) {
	t.Helper()
	c, err := container.NewContainerWithLogger(config.Default(), logging.NewMockLogger())
	require.NoError(t, err)

	prevContainer, prevFlags := root.AppContainer, flags
	root.AppContainer = c
	flags = f
	t.Cleanup(func() {
		root.AppContainer = prevContainer
		flags = prevFlags
		_ = c.Close()
	})

	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)
	cmd.SetContext(t.Context())
	return c, cmd, &out
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0600))
}

func TestImportCommand_Metadata(t *testing.T) {
	assert.Equal(t, "import", Cmd.Use)
	assert.NotNil(t, Cmd.Flags().Lookup("dir"))
	assert.NotNil(t, Cmd.Flags().Lookup("workers"))
}

func TestImport_AllFilesStored(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.xml", "<INProfileResponse><CreditProfileHeader><ReportNumber>1</ReportNumber></CreditProfileHeader></INProfileResponse>")
	writeFile(t, dir, "b.XML", "<INProfileResponse><CreditProfileHeader><ReportNumber>2</ReportNumber></CreditProfileHeader></INProfileResponse>")
	writeFile(t, dir, "notes.txt", "ignored")

	c, cmd, out := setup(t, Flags{InputDir: dir, Workers: 2})

	require.NoError(t, importFunc(cmd, nil))

	result, err := c.GetStore().List(t.Context(), store.ListOptions{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), result.Total)
	assert.Contains(t, out.String(), "Imported 2, failed 0")
	assert.NotContains(t, out.String(), "notes.txt")
}

func TestImport_FailureIsReported(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "good.xml", "<INProfileResponse><CreditProfileHeader><ReportNumber>1</ReportNumber></CreditProfileHeader></INProfileResponse>")
	writeFile(t, dir, "bad.xml", "<INProfileResponse>")

	_, cmd, out := setup(t, Flags{InputDir: dir})

	err := importFunc(cmd, nil)
	assert.EqualError(t, err, "1 of 2 files failed to import")
	assert.Contains(t, out.String(), "Imported 1, failed 1")
	assert.Contains(t, out.String(), "malformed_input")
}

func TestImport_MissingDirectory(t *testing.T) {
	_, cmd, _ := setup(t, Flags{InputDir: filepath.Join(t.TempDir(), "missing")})
	assert.Error(t, importFunc(cmd, nil))
}

func TestPrintSummary(t *testing.T) {
	summary := batch.Summary{
		Results: []batch.FileResult{
			{Path: "a.xml", ReportID: "id-1", ReportNumber: "42", CreditScore: models.IntPtr(720)},
			{Path: "b.xml", ReportID: "id-2", ReportNumber: "43"},
			{Path: "c.xml", Err: errors.New("XML parsing failed"), Kind: parsererror.KindMalformedInput},
		},
		Imported: 2,
		Failed:   1,
		Duration: 1500 * time.Microsecond,
	}

	var buf bytes.Buffer
	require.NoError(t, printSummary(&buf, summary))

	text := buf.String()
	assert.Contains(t, text, "FILE")
	assert.Regexp(t, `a\.xml\s+ok\s+id-1\s+720\s+42`, text)
	assert.Regexp(t, `b\.xml\s+ok\s+id-2\s+-\s+43`, text)
	assert.Regexp(t, `c\.xml\s+malformed_input\s+-\s+-\s+XML parsing failed`, text)
	assert.Contains(t, text, "Imported 2, failed 1, in 2ms")
}

package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"hrm_records_go/internal/app"
	"hrm_records_go/internal/config"
	"hrm_records_go/internal/service"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	cfg := fmt.Sprintf(`
log:
  level: "error"
  format: "console"
database:
  driver: "sqlite"
  sqlite:
    path: %q
storage:
  data_dir: %q
  uploads_dir: %q
jwt:
  secret: "cli-test"
`, filepath.Join(dir, "data", "database.sqlite"), filepath.Join(dir, "data"), filepath.Join(dir, "data", "uploads"))
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(cfg), 0o644))
	return dir, path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func seed(t *testing.T, cfgPath string) {
	t.Helper()
	var cfg config.Config
	require.NoError(t, config.Load(cfgPath, &cfg))
	a, err := app.New(cfg, false)
	require.NoError(t, err)
	defer a.Close()

	dept, err := a.Departments.Create(nil, "Finance", "")
	require.NoError(t, err)
	for i, name := range []string{"An", "Binh", "Chi"} {
		stt := (i + 1) * 10
		_, err := a.Members.Create(nil, service.MemberInput{DepartmentID: dept.ID, FullName: name, STT: &stt})
		require.NoError(t, err)
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	dir, cfgPath := writeConfig(t)
	seed(t, cfgPath)

	book := filepath.Join(dir, "out.xlsx")
	out, err := run(t, "--config", cfgPath, "export", book)
	require.NoError(t, err)
	require.Contains(t, out, "exported to")
	require.FileExists(t, book)

	out, err = run(t, "--config", cfgPath, "import", "--clear-first", book)
	require.NoError(t, err)
	require.Contains(t, out, "departments=1 members=3")
}

func TestImportMissingSource(t *testing.T) {
	dir, cfgPath := writeConfig(t)
	_, err := run(t, "--config", cfgPath, "import", filepath.Join(dir, "nope.xlsx"))
	require.ErrorIs(t, err, service.ErrImportSourceMissing)
}

func TestRenumber(t *testing.T) {
	_, cfgPath := writeConfig(t)
	seed(t, cfgPath)

	out, err := run(t, "--config", cfgPath, "renumber", "--all")
	require.NoError(t, err)
	require.Contains(t, out, "3 members renumbered")

	_, err = run(t, "--config", cfgPath, "renumber")
	require.Error(t, err)
	_, err = run(t, "--config", cfgPath, "renumber", "abc")
	require.Error(t, err)
}

func TestBackupRestoreAndReset(t *testing.T) {
	dir, cfgPath := writeConfig(t)
	seed(t, cfgPath)

	bundle := filepath.Join(dir, "bundle.zip")
	_, err := run(t, "--config", cfgPath, "backup", bundle)
	require.NoError(t, err)
	require.FileExists(t, bundle)

	backupBook := filepath.Join(dir, "before-reset.xlsx")
	out, err := run(t, "--config", cfgPath, "reset", "--backup", backupBook)
	require.NoError(t, err)
	require.Contains(t, out, "database cleared")
	require.FileExists(t, backupBook)

	out, err = run(t, "--config", cfgPath, "restore", bundle)
	require.NoError(t, err)
	require.Contains(t, out, "restored 1 files")

	var cfg config.Config
	require.NoError(t, config.Load(cfgPath, &cfg))
	a, err := app.New(cfg, false)
	require.NoError(t, err)
	defer a.Close()
	depts, err := a.Departments.List()
	require.NoError(t, err)
	require.Len(t, depts, 1)
}

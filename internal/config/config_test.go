package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromPathKeepsDefaultsForMissingKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `base_url = "https://lms.example.edu/courses/demo/instructor/api"
lang = "es"

[endpoints]
section_names = "/custom/sections"

[enrollment]
merge_unenroll_current = true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := NewConfigService().LoadFromPath(path)
	require.NoError(t, err)

	assert.Equal(t, "https://lms.example.edu/courses/demo/instructor/api", cfg.BaseURL)
	assert.Equal(t, "es", cfg.Lang)
	assert.Equal(t, "/custom/sections", cfg.Endpoints.SectionNames)
	assert.Equal(t, DefaultConfig().Endpoints.AssignmentNames, cfg.Endpoints.AssignmentNames)
	assert.True(t, cfg.Enrollment.MergeUnenrollCurrent)
	assert.True(t, cfg.Enrollment.OverloadUnenrollCurrent, "unset keys keep their default")
	assert.Equal(t, FormatCSV, cfg.ExportFormat)
}

func TestEnvironmentOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`base_url = "http://file.example"`), 0644))

	t.Setenv("GRADEBOOK_BASE_URL", "http://env.example:9000")
	t.Setenv("GRADEBOOK_EXPORT_FORMAT", "xlsx")

	cfg, err := NewConfigService().LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, "http://env.example:9000", cfg.BaseURL)
	assert.Equal(t, FormatXLSX, cfg.ExportFormat)
}

func TestSaveAndReload(t *testing.T) {
	svc := NewConfigService()
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	cfg := DefaultConfig()
	cfg.Endpoints.ExportAssignmentGradesCSV = "/export.csv"
	require.NoError(t, svc.SaveToPath(cfg, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "version = 1")

	loaded, err := svc.LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	cfg.BaseURL = "not a url"
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.ExportFormat = "pdf"
	assert.Error(t, cfg.Validate())
}

func TestLoadFromPathMissingFile(t *testing.T) {
	_, err := NewConfigService().LoadFromPath(filepath.Join(t.TempDir(), "absent.toml"))
	assert.Error(t, err)
}

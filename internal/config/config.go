package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/pelletier/go-toml/v2"
)

// Export formats
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// EnvPrefix is prepended to the env tags below, e.g. GRADEBOOK_BASE_URL.
const EnvPrefix = "GRADEBOOK_"

// Config represents the application configuration
type Config struct {
	Version      int        `toml:"version"`
	BaseURL      string     `toml:"base_url" env:"BASE_URL"`
	Lang         string     `toml:"lang" env:"LANG"`
	LogFile      string     `toml:"log_file" env:"LOG_FILE"`
	ExportDir    string     `toml:"export_dir" env:"EXPORT_DIR"`
	ExportFormat string     `toml:"export_format" env:"EXPORT_FORMAT"`
	Endpoints    Endpoints  `toml:"endpoints"`
	Enrollment   Enrollment `toml:"enrollment"`
}

// Endpoints holds the URL of every selection input and command control.
// Relative values are resolved against BaseURL.
type Endpoints struct {
	SectionNames                      string `toml:"section_names"`
	AssignmentNames                   string `toml:"assignment_names"`
	ListRemoteEnrolledStudents        string `toml:"list_remote_enrolled_students"`
	ListRemoteStudentsInSection       string `toml:"list_remote_students_in_section"`
	MergeEnrolledStudentsInSection    string `toml:"merge_enrolled_students_in_section"`
	OverloadEnrolledStudentsInSection string `toml:"overload_enrolled_students_in_section"`
	OverloadEnrolledUsers             string `toml:"overload_enrolled_users"`
	ListRemoteAssignments             string `toml:"list_remote_assignments"`
	ListCourseAssignments             string `toml:"list_course_assignments"`
	DisplayAssignmentGrades           string `toml:"display_assignment_grades"`
	ExportAssignmentGradesToRG        string `toml:"export_assignment_grades_to_rg"`
	ExportAssignmentGradesCSV         string `toml:"export_assignment_grades_csv"`
}

// Enrollment holds the static unenroll_current flag of each enrollment control
type Enrollment struct {
	MergeUnenrollCurrent    bool `toml:"merge_unenroll_current"`
	OverloadUnenrollCurrent bool `toml:"overload_unenroll_current"`
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	Path() string
}

// configService is the concrete implementation
type configService struct {
	filePath string
}

// NewConfigService creates a config service rooted in the user config directory
func NewConfigService() ConfigService {
	configDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to home directory
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}

	return &configService{
		filePath: filepath.Join(configDir, "gradebook", "config.toml"),
	}
}

// Path returns the default config file location
func (cs *configService) Path() string {
	return cs.filePath
}

// Load loads the configuration from the default location. A missing file
// yields the defaults; environment overrides apply in both cases.
func (cs *configService) Load() (*Config, error) {
	if _, err := os.Stat(cs.filePath); errors.Is(err, os.ErrNotExist) {
		cfg := DefaultConfig()
		if err := applyEnv(cfg); err != nil {
			return nil, err
		}
		return cfg, cfg.Validate()
	}
	return cs.LoadFromPath(cs.filePath)
}

// LoadFromPath loads configuration from a specific path. Keys absent from the
// file keep their default values.
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("failed to read environment: %w", err)
	}
	return nil
}

// Validate checks the values the panel cannot run without
func (c *Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid base_url %q", c.BaseURL)
	}
	switch c.ExportFormat {
	case FormatCSV, FormatXLSX:
	default:
		return fmt.Errorf("unsupported export_format %q", c.ExportFormat)
	}
	return nil
}

// DefaultConfig returns the default configuration. Endpoint paths match the
// development backend.
func DefaultConfig() *Config {
	return &Config{
		Version:      1,
		BaseURL:      "http://127.0.0.1:8080",
		Lang:         "en",
		LogFile:      "gradebook.log",
		ExportDir:    ".",
		ExportFormat: FormatCSV,
		Endpoints: Endpoints{
			SectionNames:                      "/remote_gradebook/section_names",
			AssignmentNames:                   "/remote_gradebook/assignment_names",
			ListRemoteEnrolledStudents:        "/remote_gradebook/list_remote_enrolled_students",
			ListRemoteStudentsInSection:       "/remote_gradebook/list_remote_students_in_section",
			MergeEnrolledStudentsInSection:    "/remote_gradebook/merge_enrolled_students_in_section",
			OverloadEnrolledStudentsInSection: "/remote_gradebook/overload_enrolled_students_in_section",
			OverloadEnrolledUsers:             "/remote_gradebook/enrolled_non_remote_users",
			ListRemoteAssignments:             "/remote_gradebook/list_remote_assignments",
			ListCourseAssignments:             "/remote_gradebook/list_course_assignments",
			DisplayAssignmentGrades:           "/remote_gradebook/display_assignment_grades",
			ExportAssignmentGradesToRG:        "/remote_gradebook/export_assignment_grades_to_rg",
			ExportAssignmentGradesCSV:         "/remote_gradebook/export_assignment_grades_csv",
		},
		Enrollment: Enrollment{
			MergeUnenrollCurrent:    false,
			OverloadUnenrollCurrent: true,
		},
	}
}

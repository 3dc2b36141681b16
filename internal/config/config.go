package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"resultsgen/internal/domain"
)

// Config holds all application configuration.
type Config struct {
	Input   InputConfig
	Output  OutputConfig
	Report  ReportConfig
	NameMap NameMapConfig
	Log     LogConfig
}

// InputConfig describes the tabular results source.
type InputConfig struct {
	Path   string            `mapstructure:"path"`
	Sheet  string            `mapstructure:"sheet"`
	Header domain.HeaderMode `mapstructure:"header"`
}

// OutputConfig describes where the report is written.
type OutputConfig struct {
	Path    string `mapstructure:"path"`
	CSVPath string `mapstructure:"csv_path"`
}

// ReportConfig holds the fixed values stamped on the region report.
// Turnout is supplied by the operator; it is not derived from the input.
type ReportConfig struct {
	RegionID   string  `mapstructure:"region_id"`
	ElectionID string  `mapstructure:"election_id"`
	Turnout    float64 `mapstructure:"turnout"`
}

// NameMapConfig points at an optional operator-maintained name table.
type NameMapConfig struct {
	Path          string `mapstructure:"path"`
	ExtendDefault bool   `mapstructure:"extend_default"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// envBindings maps config keys to their environment variables.
var envBindings = map[string]string{
	"input.path":              "RESULTSGEN_INPUT_PATH",
	"input.sheet":             "RESULTSGEN_INPUT_SHEET",
	"input.header":            "RESULTSGEN_INPUT_HEADER",
	"output.path":             "RESULTSGEN_OUTPUT_PATH",
	"output.csv_path":         "RESULTSGEN_OUTPUT_CSV_PATH",
	"report.region_id":        "RESULTSGEN_REPORT_REGION_ID",
	"report.election_id":      "RESULTSGEN_REPORT_ELECTION_ID",
	"report.turnout":          "RESULTSGEN_REPORT_TURNOUT",
	"name_map.path":           "RESULTSGEN_NAME_MAP_PATH",
	"name_map.extend_default": "RESULTSGEN_NAME_MAP_EXTEND_DEFAULT",
	"log.level":               "RESULTSGEN_LOG_LEVEL",
	"log.format":              "RESULTSGEN_LOG_FORMAT",
}

// flagBindings maps config keys to command-line flag names.
var flagBindings = map[string]string{
	"input.path":         "input",
	"input.sheet":        "sheet",
	"input.header":       "header",
	"output.path":        "output",
	"output.csv_path":    "csv",
	"report.region_id":   "region",
	"report.election_id": "election",
	"report.turnout":     "turnout",
	"name_map.path":      "name-map",
	"log.level":          "log-level",
	"log.format":         "log-format",
}

// Load reads configuration from defaults, an optional YAML file, environment
// variables with the RESULTSGEN_ prefix and, when flags is non-nil, any flags
// the operator set explicitly. Later sources win.
func Load(configFile string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("RESULTSGEN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults reproduce the Blagoevgrad 2023 run.
	v.SetDefault("input.path", "election_results.xlsx")
	v.SetDefault("input.sheet", "")
	v.SetDefault("input.header", string(domain.HeaderAuto))
	v.SetDefault("output.path", "updated_results.json")
	v.SetDefault("output.csv_path", "")
	v.SetDefault("report.region_id", "BLG")
	v.SetDefault("report.election_id", "2023-04-02")
	v.SetDefault("report.turnout", 40.91)
	v.SetDefault("name_map.path", "")
	v.SetDefault("name_map.extend_default", true)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	if configFile == "" {
		configFile = os.Getenv("RESULTSGEN_CONFIG")
	}
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", configFile, err)
		}
	}

	if flags != nil {
		for key, name := range flagBindings {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("binding flag %s: %w", name, err)
				}
			}
		}
	}

	cfg := &Config{}
	cfg.Input = InputConfig{
		Path:   strings.TrimSpace(v.GetString("input.path")),
		Sheet:  v.GetString("input.sheet"),
		Header: domain.HeaderMode(strings.ToLower(strings.TrimSpace(v.GetString("input.header")))),
	}
	cfg.Output = OutputConfig{
		Path:    strings.TrimSpace(v.GetString("output.path")),
		CSVPath: strings.TrimSpace(v.GetString("output.csv_path")),
	}
	cfg.Report = ReportConfig{
		RegionID:   strings.TrimSpace(v.GetString("report.region_id")),
		ElectionID: strings.TrimSpace(v.GetString("report.election_id")),
		Turnout:    v.GetFloat64("report.turnout"),
	}
	cfg.NameMap = NameMapConfig{
		Path:          strings.TrimSpace(v.GetString("name_map.path")),
		ExtendDefault: v.GetBool("name_map.extend_default"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}

	return cfg, nil
}

// Validate checks that the configuration can drive a run.
func (c *Config) Validate() error {
	var errs []error
	if c.Input.Path == "" {
		errs = append(errs, errors.New("input path is required"))
	}
	if c.Output.Path == "" {
		errs = append(errs, errors.New("output path is required"))
	}
	if !c.Input.Header.Valid() {
		errs = append(errs, fmt.Errorf("input header mode %q is not one of auto, always, never", c.Input.Header))
	}
	if c.Report.RegionID == "" {
		errs = append(errs, errors.New("region id is required"))
	}
	if c.Report.ElectionID == "" {
		errs = append(errs, errors.New("election id is required"))
	}
	if math.IsNaN(c.Report.Turnout) || c.Report.Turnout < 0 || c.Report.Turnout > 100 {
		errs = append(errs, fmt.Errorf("turnout %.2f is outside 0..100", c.Report.Turnout))
	}
	if c.Output.CSVPath != "" && c.Output.CSVPath == c.Output.Path {
		errs = append(errs, errors.New("csv path must differ from the output path"))
	}
	return errors.Join(errs...)
}

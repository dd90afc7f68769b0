package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	yaml "gopkg.in/yaml.v3"

	"github.com/rupor-github/gencfg"

	"bylaws/layout"
	"bylaws/render"
)

//go:embed config.yaml.tmpl
var ConfigTmpl []byte

type (
	TemplateFieldName string

	RetryConfig struct {
		Attempts   int           `yaml:"attempts" validate:"min=1,max=10"`
		Backoff    time.Duration `yaml:"backoff" validate:"gte=0"`
		MaxBackoff time.Duration `yaml:"max_backoff" validate:"gtefield=Backoff"`
	}

	ExportConfig struct {
		Endpoint string        `yaml:"endpoint" validate:"omitempty,url"`
		Token    SecretString  `yaml:"token"`
		Timeout  time.Duration `yaml:"timeout" validate:"gt=0"`
		Retry    RetryConfig   `yaml:"retry"`
	}

	CacheConfig struct {
		Enable bool          `yaml:"enable"`
		Path   string        `yaml:"path" sanitize:"path_clean,assure_dir_exists_for_file" validate:"required_if=Enable true"`
		MaxAge time.Duration `yaml:"max_age" validate:"gte=0"`
	}

	PreviewConfig struct {
		Listen        string        `yaml:"listen" validate:"required,hostname_port"`
		Debounce      time.Duration `yaml:"debounce" validate:"gte=0"`
		MemoryEntries int           `yaml:"memory_entries" validate:"min=1"`
		LiveReload    bool          `yaml:"live_reload"`
	}

	DocumentConfig struct {
		Title                 string          `yaml:"title"`
		OutputNameTemplate    string          `yaml:"output_name_template"`
		FileNameTransliterate bool            `yaml:"file_name_transliterate"`
		Layout                layout.Metrics  `yaml:"layout"`
		Typography            render.Contract `yaml:"typography"`
		Export                ExportConfig    `yaml:"export"`
		Cache                 CacheConfig     `yaml:"cache"`
		Preview               PreviewConfig   `yaml:"preview"`
	}

	Config struct {
		Version   int            `yaml:"version" validate:"eq=1"`
		Document  DocumentConfig `yaml:"document"`
		Logging   LoggingConfig  `yaml:"logging"`
		Reporting ReporterConfig `yaml:"reporting"`
	}
)

const (
	badFileName = "_bad_file_name_"
	// relative difference tolerated by Mismatches
	lineTolerance = 0.1
)

const (
	// NOTE: must match yaml field name above, expanded later for every
	// converted document
	OutputNameTemplateFieldName TemplateFieldName = "output_name_template"
)

var requiredOptions = append([]func(*gencfg.ProcessingOptions){},
	gencfg.WithDoNotExpandField(string(OutputNameTemplateFieldName)),
)

// unmarshalConfig superimposes data on top of cfg accepting only known
// fields, when process is set result is sanitized and validated.
func unmarshalConfig(data []byte, cfg *Config, process bool) (*Config, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration data: %w", err)
	}
	if !process {
		return cfg, nil
	}
	if err := gencfg.Sanitize(cfg); err != nil {
		return nil, fmt.Errorf("failed to sanitize configuration: %w", err)
	}
	if err := gencfg.Validate(cfg); err != nil {
		return nil, fmt.Errorf("failed to validate configuration: %w", err)
	}
	return cfg, nil
}

// LoadConfiguration expands embedded template to get defaults and, when path
// is not empty, applies configuration file on top of it. Result is always
// validated once.
func LoadConfiguration(path string, options ...func(*gencfg.ProcessingOptions)) (*Config, error) {
	defaults, err := gencfg.Process(ConfigTmpl, append(requiredOptions, options...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	if len(path) == 0 {
		return unmarshalConfig(defaults, &Config{}, true)
	}

	cfg, err := unmarshalConfig(defaults, &Config{}, false)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if cfg, err = unmarshalConfig(data, cfg, true); err != nil {
		return nil, fmt.Errorf("failed to process configuration file '%s': %w", filepath.Base(path), err)
	}
	return cfg, nil
}

// Mismatches lists calibration values which make estimated layout drift from
// rendered output. Never fatal.
func (d *DocumentConfig) Mismatches() []string {
	var res []string

	// estimator line vs rendered body line, in points
	est, rendered := d.Layout.LineHeight, d.Typography.BodySize*d.Typography.LineHeight
	if math.Abs(est-rendered) > rendered*lineTolerance {
		res = append(res, fmt.Sprintf("layout line height %.2fpt differs from rendered body line %.2fpt (body size %.2f x line height %.2f)",
			est, rendered, d.Typography.BodySize, d.Typography.LineHeight))
	}

	// page budget vs printable area
	box := d.Typography.PageHeight - d.Typography.MarginTop - d.Typography.MarginBottom
	if d.Layout.PageHeight > box*(1+lineTolerance) {
		res = append(res, fmt.Sprintf("layout page height %.2fpt exceeds printable page height %.2fpt", d.Layout.PageHeight, box))
	}
	return res
}

// Prepare generates configuration file from template and returns it as a byte
// slice.
func Prepare() ([]byte, error) {
	return gencfg.Process(ConfigTmpl, requiredOptions...)
}

// Dump returns actual configuration, secrets are masked.
func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(*cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %w", err)
	}
	return data, nil
}

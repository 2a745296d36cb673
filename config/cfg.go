package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v3"

	"github.com/rupor-github/gencfg"
)

//go:embed config.yaml.tmpl
var ConfigTmpl []byte

type (
	TemplateFieldName string

	// AssetsConfig controls capture-time image inlining.
	AssetsConfig struct {
		Inline      bool         `yaml:"inline"`
		MaxAttempts int          `yaml:"max_attempts" validate:"min=1,max=10"`
		MaxEdgePx   int          `yaml:"max_edge_px" validate:"min=256,max=16384"`
		AuthToken   SecretString `yaml:"auth_token,omitempty"`
	}

	CaptureConfig struct {
		ViewportWidth  int          `yaml:"viewport_width" validate:"min=320,max=7680"`
		ViewportHeight int          `yaml:"viewport_height" validate:"min=240,max=4320"`
		Assets         AssetsConfig `yaml:"assets"`
	}

	FontConfig struct {
		Family string `yaml:"family" validate:"required"`
		Style  string `yaml:"style" validate:"required"`
	}

	// SceneConfig controls materialization into the target scene.
	SceneConfig struct {
		FallbackFontFamily string       `yaml:"fallback_font_family" validate:"required"`
		ExtraFonts         []FontConfig `yaml:"extra_fonts" validate:"dive"`
		DumpTree           bool         `yaml:"dump_tree"`
	}

	DocumentConfig struct {
		Naming             NamingMode `yaml:"naming" validate:"gte=0"`
		OutputNameTemplate string     `yaml:"output_name_template"`
	}

	Config struct {
		Version   int            `yaml:"version" validate:"eq=1"`
		Document  DocumentConfig `yaml:"document"`
		Capture   CaptureConfig  `yaml:"capture"`
		Scene     SceneConfig    `yaml:"scene"`
		Logging   LoggingConfig  `yaml:"logging"`
		Reporting ReporterConfig `yaml:"reporting"`
	}
)

const (
	// NOTE: must match yaml field name above, alternative is to use struct
	// field name and reflection which I want to avoid for now
	OutputNameTemplateFieldName TemplateFieldName = "output_name_template"
)

var requiredOptions = append([]func(*gencfg.ProcessingOptions){},
	gencfg.WithDoNotExpandField(string(OutputNameTemplateFieldName)),
)

func unmarshalConfig(data []byte, cfg *Config, process bool) (*Config, error) {
	// We want to use only fields we defined so we cannot use yaml.Unmarshal
	// directly here
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration data: %w", err)
	}
	if process {
		// sanitize and validate what has been loaded
		if err := gencfg.Sanitize(cfg); err != nil {
			return nil, err
		}
		if err := gencfg.Validate(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// LoadConfiguration reads the configuration from the file at the given path,
// superimposes its values on top of expanded configuration template to provide
// sane defaults and performs validation.
func LoadConfiguration(path string, options ...func(*gencfg.ProcessingOptions)) (*Config, error) {
	haveFile := len(path) > 0

	data, err := gencfg.Process(ConfigTmpl, append(requiredOptions, options...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	cfg, err := unmarshalConfig(data, &Config{}, !haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	if !haveFile {
		return cfg, nil
	}

	// overwrite cfg values with values from the file
	data, err = os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err = unmarshalConfig(data, cfg, haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration file: %w", err)
	}
	return cfg, nil
}

// Prepare generates configuration file from template and returns it as a byte
// slice.
func Prepare() ([]byte, error) {
	return gencfg.Process(ConfigTmpl, requiredOptions...)
}

func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(*cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %v", err)
	}
	return data, nil
}

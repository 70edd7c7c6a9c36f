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

	// SiteConfig describes the originating CMS site. Origin is used to
	// resolve root-relative hrefs found in article bodies.
	SiteConfig struct {
		Origin   string `yaml:"origin" validate:"omitempty,url"`
		Language string `yaml:"language"`
	}

	CoverConfig struct {
		Generate bool `yaml:"generate"`
		Width    int  `yaml:"width" validate:"min=600"`
		Height   int  `yaml:"height" validate:"min=400"`
	}

	BundleConfig struct {
		Zip   bool        `yaml:"zip"`
		Cover CoverConfig `yaml:"cover"`
	}

	ThemesConfig struct {
		Directory string `yaml:"directory" sanitize:"path_clean"`
		Active    string `yaml:"active"`
	}

	DocumentConfig struct {
		OutputNameTemplate    string       `yaml:"output_name_template"`
		FileNameTransliterate bool         `yaml:"file_name_transliterate"`
		EnableHTML            bool         `yaml:"enable_html"`
		Themes                ThemesConfig `yaml:"themes"`
		Bundle                BundleConfig `yaml:"bundle"`
	}

	// DeliveryConfig holds credentials for the publishing API. The sync
	// client itself lives outside of this program, we only carry the values
	// so a single configuration file can describe the whole installation.
	DeliveryConfig struct {
		ChannelID string       `yaml:"channel_id"`
		KeyID     string       `yaml:"key_id"`
		KeySecret SecretString `yaml:"key_secret"`
	}

	WorkspaceConfig struct {
		Path string `yaml:"path" sanitize:"path_clean,assure_dir_exists_for_file" validate:"omitempty,filepath"`
	}

	Config struct {
		Version   int             `yaml:"version" validate:"eq=1"`
		Site      SiteConfig      `yaml:"site"`
		Document  DocumentConfig  `yaml:"document"`
		Delivery  DeliveryConfig  `yaml:"delivery"`
		Workspace WorkspaceConfig `yaml:"workspace"`
		Logging   LoggingConfig   `yaml:"logging"`
		Reporting ReporterConfig  `yaml:"reporting"`
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

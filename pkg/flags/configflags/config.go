package configflags

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// configFileNames are looked up, in order, in the working directory.
var configFileNames = []string{"allurerc.yml", "allurerc.yaml", "allurerc.json"}

// scriptConfigFileNames can only be evaluated by the report generator itself.
var scriptConfigFileNames = []string{"allurerc.mjs", "allurerc.js", "allurerc.cjs", "allurerc.mts", "allurerc.ts"}

// ReportConfig is the part of the report generator configuration we use.
type ReportConfig struct {
	Name   string `yaml:"name"`
	Output string `yaml:"output"`

	// Path is the file the config was read from, empty when none was found.
	Path string `yaml:"-"`
}

// ConfigFlags holds the location of the report configuration file.
type ConfigFlags struct {
	Path string
}

func NewConfigFlags() *ConfigFlags {
	return &ConfigFlags{}
}

func (f *ConfigFlags) BindFlags(fs *pflag.FlagSet) {
	fs.StringVar(&f.Path,
		"config",
		f.Path,
		"Report configuration file, defaults to allurerc.{yml,yaml,json} in the working directory")
}

// GetConfig reads the configured file, or looks one up in workingDirectory when no path was given.
func (f *ConfigFlags) GetConfig(workingDirectory string) (*ReportConfig, error) {
	if f.Path == "" {
		return ReadConfig(workingDirectory)
	}
	return readConfigFile(f.Path)
}

// ReadConfig loads the first report config file found in workingDirectory. A missing file is
// not an error and yields an empty config.
func ReadConfig(workingDirectory string) (*ReportConfig, error) {
	for _, name := range configFileNames {
		path := filepath.Join(workingDirectory, name)
		if _, err := os.Stat(path); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, errors.WithMessage(err, "could not load config")
		}
		return readConfigFile(path)
	}

	for _, name := range scriptConfigFileNames {
		if _, err := os.Stat(filepath.Join(workingDirectory, name)); err == nil {
			log.Warnf("%s can not be read, set report-directory explicitly if the report output is customized", name)
			break
		}
	}

	return &ReportConfig{}, nil
}

func readConfigFile(path string) (*ReportConfig, error) {
	var cfg ReportConfig

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WithMessage(err, "could not load config")
	}
	// yaml is a superset of json, so this covers allurerc.json too
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.WithMessagef(err, "couldn't unmarshal config %s", path)
	}
	cfg.Path = path

	return &cfg, nil
}

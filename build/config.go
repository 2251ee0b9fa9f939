package build

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dchest/razormin/filewriter"
	"github.com/dchest/razormin/minify"
	"github.com/dchest/razormin/utils"
)

const (
	ConfigFileName = "razormin.yml"

	DefaultInputDir  = "src"
	DefaultOutputDir = "out"
)

var (
	DefaultExtensions = []string{".cshtml", ".html", ".htm"}
	DefaultExclude    = []string{"*~", ".DS_Store"}
)

type Config struct {
	// Loadable from YAML.
	Input      string                     `yaml:"input"`
	Output     string                     `yaml:"output"`
	Extensions []string                   `yaml:"extensions"`
	Filters    map[string]interface{}     `yaml:"filters"`
	Minify     minify.Options             `yaml:"minify"`
	Compress   *filewriter.CompressConfig `yaml:"compress"`
	Exclude    []string                   `yaml:"exclude"`
	Cache      string                     `yaml:"cache"`
}

// DefaultConfig returns a new config with default values.
func DefaultConfig() *Config {
	return &Config{
		Input:      DefaultInputDir,
		Output:     DefaultOutputDir,
		Extensions: append([]string(nil), DefaultExtensions...),
		Minify:     *minify.DefaultOptions(),
		Exclude:    append([]string(nil), DefaultExclude...),
	}
}

// ReadConfig reads config from the file on top of default values.
// No config file is not an error, it results in a default config.
func ReadConfig(filename string) (*Config, error) {
	c := DefaultConfig()
	if err := utils.UnmarshallYAMLFile(filename, c); err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	if c.Input == "" || c.Output == "" {
		return nil, fmt.Errorf("%s: input and output must not be empty", filename)
	}
	if filepath.Clean(c.Input) == filepath.Clean(c.Output) {
		return nil, fmt.Errorf("%s: input and output are the same directory", filename)
	}
	for i, v := range c.Extensions {
		if len(v) > 0 && v[0] != '.' {
			c.Extensions[i] = "." + v
		}
	}
	return c, nil
}

package config

// ConfigFileName is the name of the config file.
const ConfigFileName = "dimcheck.yaml"

// ConfigFileNameAlt is the alternate name of the config file.
const ConfigFileNameAlt = "dimcheck.yml"

// Default configuration values.
const (
	DefaultModelsDir = "equations"
	DefaultOutput    = "text"
)

// ApplyDefaults fills unset fields with default values.
func (c *Config) ApplyDefaults() {
	if c.ModelsDir == "" {
		c.ModelsDir = DefaultModelsDir
	}
	if c.Output == "" {
		c.Output = DefaultOutput
	}
}

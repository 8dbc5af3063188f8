package config

// Config is the root configuration structure for the application.
type Config struct {
	LogLevel string        `yaml:"log_level" mapstructure:"log_level"`
	LogFile  string        `yaml:"log_file" mapstructure:"log_file"`
	Export   ExportConfig  `yaml:"export" mapstructure:"export"`
	Metrics  MetricsConfig `yaml:"metrics" mapstructure:"metrics"`
}

// ExportConfig holds texture export settings.
type ExportConfig struct {
	// DefaultContainer is used for batch exports without --container and for
	// single exports whose destination has no image extension.
	DefaultContainer string `yaml:"default_container" mapstructure:"default_container"`
	OutputDir        string `yaml:"output_dir" mapstructure:"output_dir"`
	MaxErrorLines    int    `yaml:"max_error_lines" mapstructure:"max_error_lines"`
	Overwrite        bool   `yaml:"overwrite" mapstructure:"overwrite"`
	Interactive      bool   `yaml:"interactive" mapstructure:"interactive"`
}

// MetricsConfig holds metrics output settings.
type MetricsConfig struct {
	// Textfile is where metrics are written after each run; empty disables it.
	Textfile string `yaml:"textfile" mapstructure:"textfile"`
}

// NewDefaultConfig returns a Config populated with default values.
func NewDefaultConfig() Config {
	return Config{
		LogLevel: DefaultLogLevel,
		LogFile:  DefaultLogFile,
		Export: ExportConfig{
			DefaultContainer: DefaultExportContainer,
			OutputDir:        DefaultExportOutputDir,
			MaxErrorLines:    DefaultExportMaxErrorLines,
			Overwrite:        DefaultExportOverwrite,
			Interactive:      DefaultExportInteractive,
		},
		Metrics: MetricsConfig{
			Textfile: DefaultMetricsTextfile,
		},
	}
}

// ResolvedLogFile returns LogFile with ~ expanded.
func (c *Config) ResolvedLogFile() string {
	return expandHome(c.LogFile)
}

// ResolvedOutputDir returns Export.OutputDir with ~ expanded.
func (c *Config) ResolvedOutputDir() string {
	return expandHome(c.Export.OutputDir)
}

// ResolvedMetricsTextfile returns Metrics.Textfile with ~ expanded.
func (c *Config) ResolvedMetricsTextfile() string {
	return expandHome(c.Metrics.Textfile)
}

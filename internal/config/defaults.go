package config

import "github.com/spf13/viper"

// Default configuration values.
const (
	DefaultLogLevel = "info"
	DefaultLogFile  = "~/.config/texport/texport.log"

	DefaultExportContainer     = "png"
	DefaultExportOutputDir     = "."
	DefaultExportMaxErrorLines = 20
	DefaultExportOverwrite     = true
	DefaultExportInteractive   = false

	DefaultMetricsTextfile = ""
)

// setDefaults registers all default configuration values with v.
func setDefaults(v *viper.Viper) {
	v.SetDefault("log_level", DefaultLogLevel)
	v.SetDefault("log_file", DefaultLogFile)

	v.SetDefault("export.default_container", DefaultExportContainer)
	v.SetDefault("export.output_dir", DefaultExportOutputDir)
	v.SetDefault("export.max_error_lines", DefaultExportMaxErrorLines)
	v.SetDefault("export.overwrite", DefaultExportOverwrite)
	v.SetDefault("export.interactive", DefaultExportInteractive)

	v.SetDefault("metrics.textfile", DefaultMetricsTextfile)
}

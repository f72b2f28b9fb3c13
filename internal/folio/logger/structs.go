package logger

// Console configures console logging.
type Console struct {
	Enabled bool `yaml:"enabled"`
	// Pretty selects zerolog's human readable ConsoleWriter instead of JSON lines.
	Pretty bool `yaml:"pretty"`
}

// LogFile configures rolling file logs.
type LogFile struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`

	InfoLog        string `yaml:"info"`
	InfoMaxSize    int    `yaml:"info_max_size"`
	InfoMaxBackups int    `yaml:"info_max_backups"`
	InfoMaxAge     int    `yaml:"info_max_age"`

	ErrorLog        string `yaml:"error"`
	ErrorMaxSize    int    `yaml:"error_max_size"`
	ErrorMaxBackups int    `yaml:"error_max_backups"`
	ErrorMaxAge     int    `yaml:"error_max_age"`
}

// Log is the logger config.
type Log struct {
	LogLevel     string  `yaml:"level"` // trace, debug, info, warn, error.
	ReportCaller bool    `yaml:"report_caller"`
	AppName      string  `yaml:"app_name"`
	Console      Console `yaml:"console"`
	File         LogFile `yaml:"file"`
}

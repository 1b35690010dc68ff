package config

const (
	defaultDataDir           = "~/.local/share/worldfeed"
	defaultLogDir            = "~/.local/share/worldfeed/logs"
	defaultExportPath        = "~/.local/share/worldfeed/approved_export.json"
	defaultAPIBind           = "127.0.0.1:7648"
	defaultVRChatBaseURL     = "https://vrchat.com/api/1"
	defaultVRChatUserAgent   = "worldfeed/0.1.0"
	defaultRequestTimeout    = 30
	defaultPageSize          = 50
	defaultNavigationTimeout = 30
	defaultSnapshotInterval  = 360
	defaultLogFormat         = "console"
	defaultLogLevel          = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir:    defaultDataDir,
			LogDir:     defaultLogDir,
			ExportPath: defaultExportPath,
			APIBind:    defaultAPIBind,
		},
		VRChat: VRChat{
			BaseURL:        defaultVRChatBaseURL,
			UserAgent:      defaultVRChatUserAgent,
			RequestTimeout: defaultRequestTimeout,
			PageSize:       defaultPageSize,
		},
		Browser: Browser{
			Headless:          true,
			NavigationTimeout: defaultNavigationTimeout,
		},
		Snapshots: Snapshots{
			Enabled:         true,
			IntervalMinutes: defaultSnapshotInterval,
			AutoExport:      true,
		},
		Export: Export{
			Pretty: true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}

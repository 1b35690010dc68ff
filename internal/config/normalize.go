package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeVRChat()
	c.normalizeBrowser()
	c.normalizeSnapshots()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		c.Paths.DataDir = defaultDataDir
	}
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.ExportPath) == "" {
		c.Paths.ExportPath = defaultExportPath
	}
	if c.Paths.ExportPath, err = expandPath(c.Paths.ExportPath); err != nil {
		return fmt.Errorf("paths.export_path: %w", err)
	}
	c.Paths.APIBind = strings.TrimSpace(c.Paths.APIBind)
	return nil
}

func (c *Config) normalizeVRChat() {
	c.VRChat.BaseURL = strings.TrimRight(strings.TrimSpace(c.VRChat.BaseURL), "/")
	if c.VRChat.BaseURL == "" {
		c.VRChat.BaseURL = defaultVRChatBaseURL
	}
	c.VRChat.AuthCookie = strings.TrimSpace(c.VRChat.AuthCookie)
	c.VRChat.Username = strings.TrimSpace(c.VRChat.Username)
	if strings.TrimSpace(c.VRChat.UserAgent) == "" {
		c.VRChat.UserAgent = defaultVRChatUserAgent
	}
	if c.VRChat.RequestTimeout <= 0 {
		c.VRChat.RequestTimeout = defaultRequestTimeout
	}
	if c.VRChat.PageSize <= 0 {
		c.VRChat.PageSize = defaultPageSize
	}
}

func (c *Config) normalizeBrowser() {
	c.Browser.ExecutablePath = strings.TrimSpace(c.Browser.ExecutablePath)
	if c.Browser.NavigationTimeout <= 0 {
		c.Browser.NavigationTimeout = defaultNavigationTimeout
	}
}

func (c *Config) normalizeSnapshots() {
	if c.Snapshots.IntervalMinutes <= 0 {
		c.Snapshots.IntervalMinutes = defaultSnapshotInterval
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

package config

// GetPlatformDefaultConfig gets the defaults for the platform
func GetPlatformDefaultConfig() OSConfig {
	return OSConfig{
		OpenLinkCommand: `cmd /c start "" {{link}}`,
	}
}

package config

// Peekfile represents the structure of the .peek.yaml configuration file.
// Every field is optional; nil means "keep the default".
// Durations are expressed in milliseconds.
type Peekfile struct {
	AssetMappingPath        *string `yaml:"assetMappingPath"`
	AssetAPIURL             *string `yaml:"assetApiUrl"`
	APITimeout              *int64  `yaml:"apiTimeout"`
	ShowRefreshNotification *bool   `yaml:"showRefreshNotification"`
	ActivityIDFile          *string `yaml:"activityIdFile"`
	RefreshOnHoverThreshold *int64  `yaml:"refreshOnHoverThreshold"`
	AutoRefreshInterval     *int64  `yaml:"autoRefreshInterval"`
	MaxWidth                *int    `yaml:"maxWidth"`
	MaxHeight               *int    `yaml:"maxHeight"`
}

package domain

import "time"

const (
	// DefaultAPITimeout bounds a single remote mapping fetch.
	DefaultAPITimeout = 5000 * time.Millisecond

	// DefaultActivityIDFile is the activity signal file name, relative to the workspace root.
	DefaultActivityIDFile = ".activityId"

	// DefaultRefreshOnHoverThreshold is the staleness bound for on-demand refreshes.
	DefaultRefreshOnHoverThreshold = 300000 * time.Millisecond

	// DefaultAutoRefreshInterval is the period of the background refresh loop.
	DefaultAutoRefreshInterval = 60000 * time.Millisecond

	// DefaultMaxWidth is the default preview width hint.
	DefaultMaxWidth = 400

	// DefaultMaxHeight is the default preview height hint.
	DefaultMaxHeight = 400
)

// Settings is the resolved configuration surface.
type Settings struct {
	// AssetMappingPath overrides the first local mapping candidate.
	AssetMappingPath string
	// AssetAPIURL enables the remote fetch when set.
	AssetAPIURL string
	// APITimeout bounds each remote fetch.
	APITimeout time.Duration
	// ShowRefreshNotification notifies the user about silent refresh results.
	ShowRefreshNotification bool
	// ActivityIDFile names the activity signal file.
	ActivityIDFile string
	// RefreshOnHoverThreshold is the staleness bound; <= 0 disables on-demand refresh.
	RefreshOnHoverThreshold time.Duration
	// AutoRefreshInterval is the background loop period; 0 disables the loop.
	AutoRefreshInterval time.Duration
	// MaxWidth and MaxHeight are rendering hints for the preview.
	MaxWidth  int
	MaxHeight int
}

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() Settings {
	return Settings{
		APITimeout:              DefaultAPITimeout,
		ActivityIDFile:          DefaultActivityIDFile,
		RefreshOnHoverThreshold: DefaultRefreshOnHoverThreshold,
		AutoRefreshInterval:     DefaultAutoRefreshInterval,
		MaxWidth:                DefaultMaxWidth,
		MaxHeight:               DefaultMaxHeight,
	}
}

// RemoteEnabled reports whether a remote endpoint is configured.
func (s Settings) RemoteEnabled() bool {
	return s.AssetAPIURL != ""
}

// OnDemandRefreshEnabled reports whether hover-triggered refreshes are enabled.
func (s Settings) OnDemandRefreshEnabled() bool {
	return s.RefreshOnHoverThreshold > 0
}

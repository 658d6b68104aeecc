package domain

import (
	"fmt"

	"go.trai.ch/zerr"
)

var (
	// ErrLocalFileUnreadable is returned when a local mapping file exists but cannot be read.
	ErrLocalFileUnreadable = zerr.New("failed to read asset mapping file")

	// ErrLocalFileMalformed is returned when a local mapping file is not a JSON object.
	ErrLocalFileMalformed = zerr.New("asset mapping file is not a JSON object")

	// ErrNotJSONObject is returned when a mapping payload is not a JSON object.
	ErrNotJSONObject = zerr.New("expected a JSON object")

	// ErrRemoteNotConfigured is returned when a remote fetch is requested without an API URL.
	ErrRemoteNotConfigured = zerr.New("asset API URL is not configured")

	// ErrRemoteTimeout is returned when the asset API does not answer within the configured timeout.
	ErrRemoteTimeout = zerr.New("asset API request timed out")

	// ErrRemoteHTTPStatus is returned when the asset API answers with a status other than 200.
	ErrRemoteHTTPStatus = zerr.New("asset API returned an unexpected status")

	// ErrRemoteNoResponse is returned when the asset API cannot be reached at all.
	ErrRemoteNoResponse = zerr.New("asset API did not respond")

	// ErrRemoteMalformedBody is returned when the asset API body is not a JSON object.
	ErrRemoteMalformedBody = zerr.New("asset API returned a malformed body")

	// ErrAssetUnresolved is returned when an asset identifier is not present in the current mapping.
	ErrAssetUnresolved = zerr.New("asset not found")

	// ErrWorkspaceNotFound is returned when a document does not belong to any known workspace.
	ErrWorkspaceNotFound = zerr.New("document is outside every known workspace")

	// ErrNoWorkspaces is returned when the application is started without any workspace root.
	ErrNoWorkspaces = zerr.New("no workspace roots configured")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrConfigInvalid is returned when a config value is out of range.
	ErrConfigInvalid = zerr.New("invalid config value")

	// ErrInvalidRequest is returned by the daemon for requests it cannot decode or dispatch.
	ErrInvalidRequest = zerr.New("invalid request")

	// ErrWatcherStartFailed is returned when the file watcher cannot be started.
	ErrWatcherStartFailed = zerr.New("failed to start file watcher")
)

// FetchError describes a failed remote mapping fetch.
// Kind is one of the ErrRemote* sentinels; Err carries the transport or decode cause, if any.
type FetchError struct {
	Kind       error
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	msg := e.Kind.Error()
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%s: %d", msg, e.StatusCode)
	}
	if e.URL != "" {
		msg = fmt.Sprintf("%s (%s)", msg, e.URL)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap exposes both the kind sentinel and the underlying cause to errors.Is / errors.As.
func (e *FetchError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// export_test.go exports private functions for white-box testing.
package logger

// ErrorEntry mirrors errorEntry for tests.
type ErrorEntry struct {
	Message  string
	Metadata map[string]any
}

// CollectErrorEntriesExported exports collectErrorEntries for testing.
func CollectErrorEntriesExported(err error) []ErrorEntry {
	var out []ErrorEntry
	for _, e := range collectErrorEntries(err) {
		out = append(out, ErrorEntry{Message: e.message, Metadata: e.metadata})
	}
	return out
}

// FormatErrorEntriesExported exports formatErrorEntries for testing.
func FormatErrorEntriesExported(entries []ErrorEntry) string {
	in := make([]errorEntry, 0, len(entries))
	for _, e := range entries {
		in = append(in, errorEntry{message: e.Message, metadata: e.Metadata})
	}
	return formatErrorEntries(in)
}

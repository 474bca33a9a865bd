package utils

// MakeMap returns a map[string]string with a single key-value pair. Most
// error reports tag exactly one dimension (a feed ID, a config URL), and
// this keeps those call sites to one line.
func MakeMap(key, value string) map[string]string {
	return map[string]string{key: value}
}

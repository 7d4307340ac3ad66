// SPDX-License-Identifier: MPL-2.0

package config

// configDirOverride allows tests to override the config directory.
// This is necessary because os.UserHomeDir() doesn't reliably respect
// the HOME environment variable on all platforms.
var configDirOverride string

// configFileOverride is set from the --config CLI flag and selects an
// explicit config file, bypassing directory resolution.
var configFileOverride string

// Reset clears overrides. Call from test cleanup to restore defaults.
func Reset() {
	configDirOverride = ""
	configFileOverride = ""
}

// SetConfigDirOverride sets a custom config directory path, primarily
// for tests.
func SetConfigDirOverride(dir string) {
	configDirOverride = dir
}

// SetConfigFileOverride sets an explicit config file path, used by the
// --config flag.
func SetConfigFileOverride(path string) {
	configFileOverride = path
}

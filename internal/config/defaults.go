package config

import "github.com/fenilsonani/dupsweep/pkg/utils"

// GetDefault returns the default configuration
func GetDefault() *Config {
	return &Config{
		Source:         "", // empty means the current working directory
		Recursive:      false,
		DryRun:         false,
		Algorithm:      string(utils.DefaultAlgorithm),
		KeepRule:       KeepAsk,
		SkipUnreadable: false, // abort the scan on the first unreadable file
		Output:         "summary",
		ProtectedPaths: []string{
			"/",
			"/System",
			"/Applications",
			"/Library/System",
			"/bin",
			"/sbin",
			"/usr",
			"/etc",
			"/var",
			"/dev",
			"/boot",
			"/lib",
			"/lib64",
			"/proc",
			"/sys",
		},
		Verbose: false,
		TUI:     false,
	}
}

// GetExampleConfig returns an example configuration with comments
func GetExampleConfig() string {
	return `# dupsweep configuration file
# Location: ~/.config/dupsweep/config.yaml
# Every value can also be set with a DUPSWEEP_* environment variable,
# e.g. DUPSWEEP_RECURSIVE=true. Command line flags win over both.

# Directory to scan; empty means the current working directory
source: ""

# Descend into subdirectories
recursive: false

# Only report what would be removed
dry_run: false

# Content digest: md5, sha256 or blake2b
algorithm: md5

# Which copy to keep: ask, first, newest, oldest, shortest-name
keep_rule: ask

# Warn about unreadable files and keep going instead of aborting the scan
skip_unreadable: false

# Report format: summary, table, json, yaml
output: summary

# Files under these directories are never removed
protected_paths:
  - /
  - /bin
  - /etc
  - /usr

verbose: false

# Pick the file to keep with an interactive terminal UI
tui: false
`
}

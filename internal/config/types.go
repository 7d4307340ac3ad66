// SPDX-License-Identifier: MPL-2.0

package config

type (
	// Config is the global appexec configuration. It carries site-level
	// defaults that individual run specifications may override.
	Config struct {
		// Scheduler is the default scheduler family for multi-task runs
		// ("mpi", "slurm", or "none").
		Scheduler string `mapstructure:"scheduler" toml:"scheduler"`
		// Launcher is a site-level launcher command used for multi-task
		// runs whose spec does not set one (e.g. "mpirun --bind-to core").
		Launcher string `mapstructure:"launcher" toml:"launcher"`
		// TaskEnvKeys are the environment variables consulted, in order,
		// for the task count of multi-task runs.
		TaskEnvKeys []string `mapstructure:"task_env_keys" toml:"task_env_keys"`
		// LogLevel is the default logging level.
		LogLevel string `mapstructure:"log_level" toml:"log_level"`
		// AppendLogs opens stdout/stderr destinations in append mode
		// instead of truncating.
		AppendLogs bool `mapstructure:"append_logs" toml:"append_logs"`
		// Fetch configures remote input retrieval.
		Fetch FetchConfig `mapstructure:"fetch" toml:"fetch"`
	}

	// FetchConfig configures the HTTP client used for remote inputs.
	FetchConfig struct {
		// Timeout bounds a single transfer (Go duration string).
		Timeout string `mapstructure:"timeout" toml:"timeout"`
	}
)

// DefaultConfig returns the built-in defaults used when no config file
// exists.
func DefaultConfig() *Config {
	return &Config{
		Scheduler:   "none",
		Launcher:    "",
		TaskEnvKeys: []string{"APPEXEC_NTASKS", "SLURM_NTASKS", "PBS_NP", "NTASKS"},
		LogLevel:    "info",
		AppendLogs:  false,
		Fetch: FetchConfig{
			Timeout: "60s",
		},
	}
}

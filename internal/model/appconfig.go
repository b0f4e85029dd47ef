package model

// AppConfig holds user-level application defaults persisted between runs.
type AppConfig struct {
	Engine          string   `json:"engine"`            // "glpk" or "exact"
	Workers         int      `json:"workers"`           // 0 = one per CPU core
	TrialTimeoutSec int      `json:"trial_timeout_sec"` // per-solve cap, 0 = none
	ExportDir       string   `json:"export_dir"`
	RecentJobFiles  []string `json:"recent_job_files"`
}

// DefaultAppConfig returns the configuration used when no config file exists.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		Engine:          "glpk",
		Workers:         0,
		TrialTimeoutSec: 0,
		ExportDir:       ".",
		RecentJobFiles:  []string{},
	}
}

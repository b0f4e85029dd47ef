package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/piwi3910/rodcut/internal/model"
)

// JobFile is the on-disk representation of a saved job, so its inputs can be
// reopened and re-optimized later.
type JobFile struct {
	Version int       `json:"version"`
	Job     model.Job `json:"job"`
}

// jobFileVersion is bumped when the on-disk format changes incompatibly.
const jobFileVersion = 1

// SaveJob writes a job's inputs to a JSON file, creating parent directories
// as needed.
func SaveJob(path string, job model.Job) error {
	if err := job.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(JobFile{Version: jobFileVersion, Job: job}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadJob reads a saved job file and validates its contents.
func LoadJob(path string) (JobFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return JobFile{}, err
	}
	var jf JobFile
	if err := json.Unmarshal(data, &jf); err != nil {
		return JobFile{}, err
	}
	if jf.Version > jobFileVersion {
		return JobFile{}, fmt.Errorf("job file %s has unsupported version %d", path, jf.Version)
	}
	if err := jf.Job.Validate(); err != nil {
		return JobFile{}, err
	}
	return jf, nil
}

// maxRecentFiles bounds the recent-file list in the app config.
const maxRecentFiles = 10

// AddRecentJobFile prepends path to the config's recent list, dropping
// duplicates and clipping to the limit.
func AddRecentJobFile(config *model.AppConfig, path string) {
	recent := []string{path}
	for _, p := range config.RecentJobFiles {
		if p != path {
			recent = append(recent, p)
		}
	}
	if len(recent) > maxRecentFiles {
		recent = recent[:maxRecentFiles]
	}
	config.RecentJobFiles = recent
}

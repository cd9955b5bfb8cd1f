package result

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// CreateRunDir creates a fresh run directory under baseDir/runs, named by
// UTC timestamp plus a short run ID, and points baseDir/latest at it.
func CreateRunDir(baseDir string) (string, error) {
	stamp := time.Now().UTC().Format("2006-01-02T15-04-05")
	runID := strings.SplitN(uuid.NewString(), "-", 2)[0]
	runDir := filepath.Join(baseDir, "runs", stamp+"-"+runID)
	runDir, err := filepath.Abs(runDir)
	if err != nil {
		return "", fmt.Errorf("resolving run dir: %w", err)
	}
	if err := os.MkdirAll(runDir, 0o755); err != nil {
		return "", fmt.Errorf("creating run dir: %w", err)
	}
	latest := filepath.Join(baseDir, "latest")
	os.Remove(latest)
	if err := os.Symlink(runDir, latest); err != nil {
		return "", fmt.Errorf("creating latest symlink: %w", err)
	}
	return runDir, nil
}

// TrialPath returns the record file for one (class, trial) pair.
func TrialPath(runDir, class string, trial int) string {
	return filepath.Join(runDir, "trials", class, fmt.Sprintf("trial-%d.json", trial))
}

// WriteTrialRecord persists one record, creating its class directory.
func WriteTrialRecord(runDir string, rec *TrialRecord) error {
	path := TrialPath(runDir, rec.Class, rec.Trial)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating trial dir: %w", err)
	}
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling record: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadTrialRecord loads one record file.
func ReadTrialRecord(path string) (*TrialRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading record: %w", err)
	}
	var rec TrialRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("parsing record %s: %w", path, err)
	}
	return &rec, nil
}

// ReadRunRecords walks a run directory and loads every trial record.
// filepath.Walk visits lexically, so records come back grouped by class and
// ordered by file name.
func ReadRunRecords(runDir string) ([]*TrialRecord, error) {
	var records []*TrialRecord
	err := filepath.Walk(runDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || !strings.HasSuffix(info.Name(), ".json") {
			return nil
		}
		rec, err := ReadTrialRecord(path)
		if err != nil {
			return nil
		}
		records = append(records, rec)
		return nil
	})
	return records, err
}

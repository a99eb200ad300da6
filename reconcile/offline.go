package reconcile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/use-agent/credimport/models"
	"github.com/use-agent/credimport/parser"
)

// Reparse re-runs the DOM track against saved markup without a live
// browser, merges the sidecar when one is supplied, and computes
// discrepancies and analytics.
func Reparse(rawHTML string, sidecar *models.Sidecar) (*models.Report, models.Analytics, error) {
	report, err := parser.ParseReport(rawHTML, nil)
	if err != nil {
		return nil, models.Analytics{}, err
	}
	merged := MergeSidecar(report, sidecar)
	merged.Accounts = DetectDiscrepancies(merged.Accounts)
	return merged, ComputeAnalytics(merged.Accounts), nil
}

// ReparseFile runs Reparse against a saved HTML snapshot. When
// sidecarPath is empty, a sidecar.json beside the snapshot is used if
// present; a missing sidecar is not an error.
func ReparseFile(htmlPath, sidecarPath string) (*models.Report, models.Analytics, error) {
	rawHTML, err := os.ReadFile(htmlPath)
	if err != nil {
		return nil, models.Analytics{}, fmt.Errorf("read snapshot: %w", err)
	}

	if sidecarPath == "" {
		candidate := filepath.Join(filepath.Dir(htmlPath), "sidecar.json")
		if _, statErr := os.Stat(candidate); statErr == nil {
			sidecarPath = candidate
		}
	}

	var sidecar *models.Sidecar
	if sidecarPath != "" {
		sidecar, err = LoadSidecar(sidecarPath)
		if err != nil {
			return nil, models.Analytics{}, err
		}
	}

	return Reparse(string(rawHTML), sidecar)
}

// LoadSidecar reads a sidecar JSON file.
func LoadSidecar(path string) (*models.Sidecar, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read sidecar: %w", err)
	}
	var sc models.Sidecar
	if err := json.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("parse sidecar %s: %w", path, err)
	}
	return &sc, nil
}

package importer

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/use-agent/credimport/models"
)

var unsafeNameChars = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// runDir creates the per-attempt artifact directory:
// <artifactsDir>/<client>_<service>_<timestamp>/.
func (i *Importer) runDir(req *models.ImportRequest) (string, error) {
	owner := req.ClientName
	if owner == "" {
		owner = req.ClientID
	}
	if owner == "" {
		owner = "client"
	}
	base := sanitizeName(owner) + "_" + sanitizeName(req.Service) + "_" + time.Now().Format("20060102-150405")
	dir := filepath.Join(i.artifactsDir, base)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return dir, nil
}

func sanitizeName(s string) string {
	s = strings.TrimSpace(strings.ToLower(s))
	s = unsafeNameChars.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// persistArtifacts writes the three per-run artifacts: raw HTML
// snapshot, sidecar JSON and captured-network JSON. Write failures are
// logged, never fatal: the in-memory result is already complete.
func (i *Importer) persistArtifacts(result *models.ImportResult, runDir, rawHTML string, responses []models.CapturedResponse) {
	htmlPath := filepath.Join(runDir, "report.html")
	if err := os.WriteFile(htmlPath, []byte(rawHTML), 0o644); err != nil {
		slog.Warn("artifacts: html snapshot write failed", "path", htmlPath, "error", err)
	} else {
		result.HTMLPath = htmlPath
	}

	sidecarPath := filepath.Join(runDir, "sidecar.json")
	if err := writeJSON(sidecarPath, sidecarFrom(&result.Report)); err != nil {
		slog.Warn("artifacts: sidecar write failed", "path", sidecarPath, "error", err)
	} else {
		result.SidecarPath = sidecarPath
	}

	networkPath := filepath.Join(runDir, "network.json")
	if err := writeJSON(networkPath, responses); err != nil {
		slog.Warn("artifacts: network capture write failed", "path", networkPath, "error", err)
	} else {
		result.NetworkPath = networkPath
	}
}

// sidecarFrom snapshots the extracted report in sidecar form. Every
// list key is written even when empty: the live path is authoritative,
// and a present-but-empty key tells the offline merge "none found".
func sidecarFrom(report *models.Report) *models.Sidecar {
	scores := report.Scores
	inquiries := append([]models.Inquiry{}, report.Inquiries...)
	collections := append([]models.Collection{}, report.Collections...)
	publicRecords := append([]models.PublicRecord{}, report.PublicRecords...)
	contacts := append([]models.Contact{}, report.Contacts...)
	return &models.Sidecar{
		Scores:        &scores,
		Accounts:      report.Accounts,
		Inquiries:     &inquiries,
		Collections:   &collections,
		PublicRecords: &publicRecords,
		Contacts:      &contacts,
	}
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

package project

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/piwi3910/RoomCraft/internal/model"
)

// BackupVersion is written into every backup file.
const BackupVersion = "1.0.0"

// BackupData is the top-level structure of a template backup file.
type BackupData struct {
	Version     string            `json:"version"`
	CreatedAt   string            `json:"created_at"`
	Preferences Preferences       `json:"preferences"`
	Templates   model.TemplateSet `json:"templates"`
}

// ExportBackup writes all templates and preferences to a single JSON file.
func ExportBackup(exportPath string, templates model.TemplateSet, prefs Preferences) error {
	if templates.Templates == nil {
		templates.Templates = []model.Template{}
	}
	backup := BackupData{
		Version:     BackupVersion,
		CreatedAt:   time.Now().UTC().Format(time.RFC3339),
		Preferences: prefs,
		Templates:   templates,
	}
	data, err := json.MarshalIndent(backup, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal backup data: %w", err)
	}

	dir := filepath.Dir(exportPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}

	if err := os.WriteFile(exportPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write backup file: %w", err)
	}
	return nil
}

// ImportBackup reads a backup file. The caller decides how to apply it.
func ImportBackup(importPath string) (BackupData, error) {
	data, err := os.ReadFile(importPath)
	if err != nil {
		return BackupData{}, fmt.Errorf("failed to read backup file: %w", err)
	}
	var backup BackupData
	if err := json.Unmarshal(data, &backup); err != nil {
		return BackupData{}, fmt.Errorf("failed to parse backup file: %w", err)
	}
	if backup.Version == "" {
		return BackupData{}, fmt.Errorf("invalid backup file: missing version field")
	}
	if backup.Templates.Templates == nil {
		backup.Templates.Templates = []model.Template{}
	}
	if backup.Preferences.RecentTemplates == nil {
		backup.Preferences.RecentTemplates = []string{}
	}
	return backup, nil
}

// RestoreBackup writes every template in the backup into the repository,
// replacing same-named templates. It returns how many were created.
func RestoreBackup(ctx context.Context, repo *TemplateRepository, backup BackupData) (int, error) {
	created := 0
	for _, t := range backup.Templates.Templates {
		out, err := repo.Put(ctx, t)
		if err != nil {
			return created, fmt.Errorf("failed to restore template %q: %w", t.Name, err)
		}
		if out.Created {
			created++
		}
	}
	return created, nil
}

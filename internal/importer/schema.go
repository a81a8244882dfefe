package importer

import (
	"encoding/json"
	"fmt"
	"os"
)

// BackupVersion is the format version written by Export. Files without a
// version field come from the original web app and load as version 1.
const BackupVersion = 1

// Backup is the top-level JSON structure for export and import. Field names
// follow the web app's stored records so its data loads unchanged.
type Backup struct {
	Version        int             `json:"version,omitempty"`
	Subjects       []SubjectRecord `json:"subjects"`
	Periods        []PeriodRecord  `json:"periods"`
	Grades         []GradeRecord   `json:"grades"`
	ActivePeriodID string          `json:"activePeriodId,omitempty"`
}

type SubjectRecord struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Coefficient float64 `json:"coefficient"`
	Color       string  `json:"color"`
	Goal        float64 `json:"goal"`
	Icon        string  `json:"icon,omitempty"`
}

type PeriodRecord struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	StartDate string   `json:"startDate"`
	EndDate   string   `json:"endDate"`
	Goal      *float64 `json:"goal,omitempty"`
}

// GradeRecord is an evaluation. A present Grade makes it actual; otherwise
// Name labels a planned evaluation.
type GradeRecord struct {
	ID        string   `json:"id"`
	SubjectID string   `json:"subjectId"`
	PeriodID  string   `json:"periodId"`
	Name      string   `json:"name,omitempty"`
	Grade     *float64 `json:"grade,omitempty"`
	MaxGrade  float64  `json:"maxGrade"`
	Type      string   `json:"type"`
	Date      string   `json:"date"`
	Comment   string   `json:"comment,omitempty"`
	Bonus     *float64 `json:"bonus,omitempty"`
}

// LoadBackup reads and parses a backup JSON file.
func LoadBackup(path string) (*Backup, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseBackup(data)
}

// ParseBackup decodes a backup document.
func ParseBackup(data []byte) (*Backup, error) {
	var b Backup
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("parsing backup: %w", err)
	}
	return &b, nil
}

// WriteBackup writes the backup as indented JSON.
func WriteBackup(path string, b *Backup) error {
	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding backup: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("writing backup: %w", err)
	}
	return nil
}

package importer

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/alexanderramin/gradeflow/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var convertNow = time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC)

func TestConvert_MapsOutcomes(t *testing.T) {
	snap, err := Convert(validBackup(), convertNow)
	require.NoError(t, err)

	require.Len(t, snap.Subjects, 2)
	assert.Equal(t, "book", snap.Subjects[1].Icon)
	assert.Equal(t, convertNow, snap.Subjects[0].CreatedAt)

	require.Len(t, snap.Periods, 2)
	assert.Nil(t, snap.Periods[0].Goal)
	require.NotNil(t, snap.Periods[1].Goal)
	assert.Equal(t, 15.0, *snap.Periods[1].Goal)
	assert.Equal(t, time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC), snap.Periods[1].StartDate)

	require.Len(t, snap.Evaluations, 3)
	score, ok := snap.Evaluations[0].ActualScore()
	require.True(t, ok)
	assert.Equal(t, 15.0, score)
	assert.Equal(t, 0.0, snap.Evaluations[0].Bonus, "missing bonus defaults to zero")
	assert.Equal(t, 1.0, snap.Evaluations[1].Bonus)
	assert.Equal(t, domain.EvalQuiz, snap.Evaluations[1].Type)

	label, ok := snap.Evaluations[2].PlannedLabel()
	require.True(t, ok)
	assert.Equal(t, "Final exam", label)

	assert.Equal(t, "p1", snap.ActivePeriodID)
}

func TestConvert_ActivePeriodFallsBackToCurrent(t *testing.T) {
	b := validBackup()
	b.ActivePeriodID = ""

	snap, err := Convert(b, convertNow)
	require.NoError(t, err)
	assert.Equal(t, "p2", snap.ActivePeriodID, "period containing now")

	snap, err = Convert(b, time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, "p1", snap.ActivePeriodID, "first period otherwise")
}

func TestFromSnapshot_RoundTrip(t *testing.T) {
	snap, err := Convert(validBackup(), convertNow)
	require.NoError(t, err)

	exported := FromSnapshot(snap)
	assert.Equal(t, BackupVersion, exported.Version)
	assert.Equal(t, "2025-09-01T00:00:00Z", exported.Periods[0].StartDate)
	assert.Nil(t, exported.Grades[0].Bonus)
	assert.Empty(t, ValidateBackup(exported))

	again, err := Convert(exported, convertNow)
	require.NoError(t, err)
	assert.Equal(t, snap, again)
}

func TestWriteAndLoadBackup(t *testing.T) {
	path := filepath.Join(t.TempDir(), "backup.json")
	require.NoError(t, WriteBackup(path, validBackup()))

	loaded, err := LoadBackup(path)
	require.NoError(t, err)
	assert.Equal(t, validBackup(), loaded)
}

func TestParseBackup_WebAppExport(t *testing.T) {
	data := []byte(`{
		"subjects": [{"id": "1718000000000", "name": "Physique", "coefficient": 3, "color": "#3b82f6", "goal": 13}],
		"periods": [{"id": "1718000000001", "name": "Trimestre 1", "startDate": "2025-09-01T00:00:00.000Z", "endDate": "2025-11-30T00:00:00.000Z"}],
		"grades": [
			{"id": "1718000000002", "subjectId": "1718000000000", "periodId": "1718000000001", "grade": 14.5, "maxGrade": 20, "type": "Control", "date": "2025-10-02T08:12:44.120Z"},
			{"id": "1718000000003", "subjectId": "1718000000000", "periodId": "1718000000001", "name": "DS 2", "maxGrade": 20, "type": "Control", "date": "2025-11-20T08:00:00.000Z"}
		],
		"activePeriodId": "1718000000001"
	}`)

	b, err := ParseBackup(data)
	require.NoError(t, err)
	assert.Empty(t, ValidateBackup(b))

	snap, err := Convert(b, convertNow)
	require.NoError(t, err)
	require.Len(t, snap.Evaluations, 2)
	assert.True(t, snap.Evaluations[1].IsPlanned())
}

func TestParseBackup_Malformed(t *testing.T) {
	_, err := ParseBackup([]byte(`{"subjects": [`))
	assert.Error(t, err)
}

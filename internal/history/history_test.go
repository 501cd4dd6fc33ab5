package history

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codetree/codetree/internal/types"
)

func TestAppendAndLoad_NewestFirst(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "codetree")
	log := NewLogIn(dir)

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		require.NoError(t, log.Append(Record{Timestamp: base.Add(time.Duration(i) * time.Hour), Root: "/r", TotalFiles: i}))
	}

	recs, err := log.LoadHistory()
	require.NoError(t, err)
	require.Len(t, recs, 3)
	assert.Equal(t, 2, recs[0].TotalFiles)
	assert.Equal(t, 0, recs[2].TotalFiles)
	assert.Equal(t, "run_1704067200", recs[2].RunID)

	info, err := os.Stat(log.Path())
	require.NoError(t, err)
	if os.PathSeparator == '/' {
		assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	}
}

func TestLoadHistory_Missing(t *testing.T) {
	_, err := NewLog(filepath.Join(t.TempDir(), "none.jsonl")).LoadHistory()
	assert.Error(t, err)
}

func TestClear(t *testing.T) {
	log := NewLogIn(t.TempDir())
	require.NoError(t, log.Clear())
	require.NoError(t, log.Append(Record{Root: "/r"}))
	require.NoError(t, log.Clear())
	_, err := os.Stat(log.Path())
	assert.True(t, os.IsNotExist(err))
}

func TestNewRecord(t *testing.T) {
	st := types.NewStats()
	st.TotalFiles = 9
	st.TotalLines = 120
	st.CodeLines = 100
	st.TotalSizeBytes = 4096
	st.SensitiveFilesCount = 1
	st.FilesByExtension = map[string]int{"go": 4, "md": 1, "rs": 1, "js": 1, "py": 1, "no_extension": 1}
	r := &types.ProjectReport{Statistics: st, GeneratedAt: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)}

	rec := NewRecord("/src", "json", "/src/codetree.json", []string{"Go"}, r, 2048, GitSummary{}, 1500*time.Microsecond)
	assert.Equal(t, r.GeneratedAt, rec.Timestamp)
	assert.Equal(t, 9, rec.TotalFiles)
	assert.Equal(t, int64(2048), rec.ExcludedSize)
	assert.Equal(t, "2ms", rec.Duration)
	assert.Nil(t, rec.Git)
	require.Len(t, rec.TopTypes, MaxTopTypes)
	assert.Equal(t, TypeSummary{Extension: "go", Files: 4}, rec.TopTypes[0])
	assert.Equal(t, "js", rec.TopTypes[1].Extension)

	rec = NewRecord("/src", "text", "", nil, r, 0, GitSummary{Branch: "main"}, 0)
	require.NotNil(t, rec.Git)
	assert.Equal(t, "main", rec.Git.Branch)
}

package services

import (
	"archive/zip"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readArchive(t *testing.T, path string) map[string][]byte {
	t.Helper()
	r, err := zip.OpenReader(path)
	require.NoError(t, err)
	defer r.Close()

	files := map[string][]byte{}
	for _, f := range r.File {
		rc, err := f.Open()
		require.NoError(t, err)
		data, err := io.ReadAll(rc)
		rc.Close()
		require.NoError(t, err)
		files[f.Name] = data
	}
	return files
}

func TestBackupService_CreateBackup(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	_, err := s.UpsertInterests(ctx, "alice", []string{"chess"})
	require.NoError(t, err)
	_, err = NewQuizService(s, &fakeLLM{}).Submit(ctx, submission("alice", "Chess", 2))
	require.NoError(t, err)

	dir := filepath.Join(t.TempDir(), "backups")
	svc := NewBackupService(s, dir, 5)

	backup, err := svc.CreateBackup(ctx)
	require.NoError(t, err)
	assert.FileExists(t, backup.Path)
	assert.Positive(t, backup.Size)

	files := readArchive(t, backup.Path)
	require.Contains(t, files, "users.json")
	require.Contains(t, files, "quiz_history.json")

	var users map[string]map[string]any
	require.NoError(t, json.Unmarshal(files["users.json"], &users))
	assert.Equal(t, []any{"chess"}, users["alice"]["interests"])

	var history map[string][]map[string]any
	require.NoError(t, json.Unmarshal(files["quiz_history.json"], &history))
	require.Len(t, history["alice"], 1)
	assert.Equal(t, "Chess", history["alice"][0]["topic"])
}

func TestBackupService_Retention(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	svc := NewBackupService(newStore(t), dir, 2)

	base := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
	var created []string
	for i := 0; i < 4; i++ {
		ts := base.Add(time.Duration(i) * time.Minute)
		svc.now = func() time.Time { return ts }
		b, err := svc.CreateBackup(ctx)
		require.NoError(t, err)
		created = append(created, b.Name)
	}

	// Unrelated files are left alone.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o600))

	backups, err := svc.ListBackups()
	require.NoError(t, err)
	require.Len(t, backups, 2)
	assert.Equal(t, created[3], backups[0].Name)
	assert.Equal(t, created[2], backups[1].Name)
	assert.True(t, backups[0].CreatedAt.Equal(base.Add(3*time.Minute)))
	assert.FileExists(t, filepath.Join(dir, "notes.txt"))
}

func TestBackupService_ListMissingDirectory(t *testing.T) {
	svc := NewBackupService(newStore(t), filepath.Join(t.TempDir(), "none"), 0)
	backups, err := svc.ListBackups()
	require.NoError(t, err)
	assert.Empty(t, backups)
}

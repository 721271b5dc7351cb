package audit

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger(t *testing.T) *Logger {
	t.Helper()
	logger, err := NewLogger(Options{Dir: filepath.Join(t.TempDir(), "audit"), MaxSizeMB: 1, MaxBackups: 2})
	require.NoError(t, err)
	t.Cleanup(func() { _ = logger.Close() })
	return logger
}

func readEntries(t *testing.T, path string) []Entry {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var entries []Entry
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var e Entry
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &e), scanner.Text())
		entries = append(entries, e)
	}
	require.NoError(t, scanner.Err())
	return entries
}

func TestNewLoggerCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "audit")
	logger, err := NewLogger(Options{Dir: dir})
	require.NoError(t, err)
	defer logger.Close()

	assert.DirExists(t, dir)
	assert.Equal(t, filepath.Join(dir, FileName), logger.GetFilePath())
}

func TestLogActionWritesEntry(t *testing.T) {
	logger := newTestLogger(t)
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	logger.now = func() time.Time { return fixed }

	ctx := WithActor(context.Background(), "admin@chat.protype.tw")
	logger.LogAction(ctx, "setAffiliation",
		map[string]string{"room": "r@groups.chat.protype.tw", "affiliation": "owner"},
		OutcomeSuccess, 0, 42*time.Millisecond)

	entries := readEntries(t, logger.GetFilePath())
	require.Len(t, entries, 1)

	e := entries[0]
	_, err := uuid.Parse(e.ID)
	assert.NoError(t, err)
	assert.Equal(t, fixed, e.Timestamp)
	assert.Equal(t, "admin@chat.protype.tw", e.Actor)
	assert.Equal(t, "setAffiliation", e.Action)
	assert.Equal(t, "owner", e.Params["affiliation"])
	assert.Equal(t, OutcomeSuccess, e.Outcome)
	assert.Equal(t, 0, e.ExitStatus)
	assert.Equal(t, int64(42), e.LatencyMs)
}

func TestLogActionDefaults(t *testing.T) {
	logger := newTestLogger(t)

	logger.LogAction(context.Background(), "listRooms", nil, OutcomeLaunchFailed, -1, 0)

	entries := readEntries(t, logger.GetFilePath())
	require.Len(t, entries, 1)
	assert.Equal(t, AnonymousActor, entries[0].Actor)
	assert.NotNil(t, entries[0].Params)
	assert.Equal(t, -1, entries[0].ExitStatus)
}

func TestEntryJSONFieldNames(t *testing.T) {
	data, err := json.Marshal(Entry{ID: "x", Action: "listRooms", Outcome: OutcomeTimeout})
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	for _, key := range []string{"id", "ts", "actor", "action", "params", "outcome", "exitStatus", "latencyMs"} {
		assert.Contains(t, raw, key)
	}
}

func TestConcurrentWrites(t *testing.T) {
	logger := newTestLogger(t)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			logger.LogAction(context.Background(), "getAffiliation", nil, OutcomeSuccess, 0, time.Millisecond)
		}()
	}
	wg.Wait()

	assert.Len(t, readEntries(t, logger.GetFilePath()), 20)
}

func TestRotate(t *testing.T) {
	logger := newTestLogger(t)

	logger.LogAction(context.Background(), "listRooms", nil, OutcomeSuccess, 0, 0)
	require.NoError(t, logger.Rotate())
	logger.LogAction(context.Background(), "listRooms", nil, OutcomeShellError, 1, 0)

	entries := readEntries(t, logger.GetFilePath())
	require.Len(t, entries, 1)
	assert.Equal(t, OutcomeShellError, entries[0].Outcome)

	files, err := os.ReadDir(filepath.Dir(logger.GetFilePath()))
	require.NoError(t, err)
	assert.Len(t, files, 2, "rotated backup plus active file")
}

func TestActorFromContext(t *testing.T) {
	assert.Equal(t, AnonymousActor, ActorFromContext(context.Background()))
	assert.Equal(t, AnonymousActor, ActorFromContext(WithActor(context.Background(), "")))
	assert.Equal(t, "alice", ActorFromContext(WithActor(context.Background(), "alice")))
}

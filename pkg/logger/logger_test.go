package logger

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestHelpersWriteToInstalledLogger(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	UseLogger(zap.New(core))
	t.Cleanup(UseNop)

	Info("hello %s", "world")
	Warning("careful %d", 1)
	Error("broken")
	With(zap.Uint("account_id", 7)).Info("structured")

	entries := logs.All()
	require.Len(t, entries, 4)
	assert.Equal(t, "hello world", entries[0].Message)
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Equal(t, zapcore.ErrorLevel, entries[2].Level)
	assert.Equal(t, uint64(7), entries[3].ContextMap()["account_id"])
}

func TestSetupLoggerCreatesDatedFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, SetupLogger("debug", dir))
	t.Cleanup(UseNop)

	Info("written to file")
	_ = Sync()

	name := filepath.Join(dir, time.Now().Format("2006-01-02")+".log")
	data, err := os.ReadFile(name)
	require.NoError(t, err)
	assert.Contains(t, string(data), "written to file")
}

func TestSetupLoggerRejectsUnknownLevel(t *testing.T) {
	assert.Error(t, SetupLogger("loud", ""))
}

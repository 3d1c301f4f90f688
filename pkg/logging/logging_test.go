package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogOperationStart(t *testing.T) {
	var buf bytes.Buffer
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)

	done := LogOperationStart(logger, "index build")
	assert.Contains(t, buf.String(), "Operation started")

	done()
	assert.Contains(t, buf.String(), "Operation completed")
	assert.Contains(t, buf.String(), "duration")
}

func TestGetLogger(t *testing.T) {
	var buf bytes.Buffer
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	log.Logger = zerolog.New(&buf)

	logger := GetLogger("merge")
	logger.Info().Msg("hello")
	assert.Contains(t, buf.String(), `"component":"merge"`)
}

func TestSetupLoggerCreatesLogFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	SetupLogger(1, dir)
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.WarnLevel) })

	log.Info().Msg("written to file")

	data, err := os.ReadFile(filepath.Join(dir, LogFileName))
	require.NoError(t, err)
	assert.Contains(t, string(data), "written to file")
}

func TestLogFilePathFallsBackToStateHome(t *testing.T) {
	assert.Equal(t, filepath.Join("/x/logs", LogFileName), LogFilePath("/x/logs"))
	assert.Equal(t, LogFileName, filepath.Base(LogFilePath("")))
}

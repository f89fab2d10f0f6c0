package logs

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"probinary_go/config"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit_WritesToRotatedFile(t *testing.T) {
	prevLog, prevHook := log, fileHook
	defer func() { log, fileHook = prevLog, prevHook }()

	path := filepath.Join(t.TempDir(), "nested", "session.log")
	cfg := &config.LogConfig{LogLevel: "warn", MaxSizeMB: 1, MaxBackups: 1, MaxAgeDays: 1}

	require.NoError(t, Init(cfg, path))
	SetOutput(io.Discard)
	Warnf("balance %.2f", 990.0)
	Debug("hidden")
	Close()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "balance 990.00")
	assert.NotContains(t, string(data), "hidden")
	assert.Equal(t, logrus.WarnLevel, log.GetLevel())
}

func TestWithFields(t *testing.T) {
	var buf bytes.Buffer
	prev := log
	defer func() { log = prev }()
	log = logrus.New()
	log.SetOutput(&buf)
	log.SetFormatter(&logrus.TextFormatter{DisableColors: true})

	WithFields(logrus.Fields{"session": "abc"}).Info("stopped")

	assert.Contains(t, buf.String(), "session=abc")
	assert.Contains(t, buf.String(), "stopped")
}

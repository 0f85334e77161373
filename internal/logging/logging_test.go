package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]LogLevel{
		"trace": TRACE,
		"DEBUG": DEBUG,
		"":      INFO,
		"warn":  WARN,
		"Error": ERROR,
	}
	for in, want := range cases {
		got, err := ParseLevel(in)
		require.NoError(t, err, "уровень %q должен разбираться", in)
		assert.Equal(t, want, got)
	}

	_, err := ParseLevel("verbose")
	assert.Error(t, err, "неизвестный уровень должен давать ошибку")
}

func TestLoggerConsoleThreshold(t *testing.T) {
	var buf bytes.Buffer
	l, err := NewLoggerWithOptions("test", Options{Console: &buf, ConsoleLevel: WARN})
	require.NoError(t, err)

	l.Info("скрыто %d", 1)
	l.Warn("видно %d", 2)

	out := buf.String()
	assert.NotContains(t, out, "скрыто")
	assert.Contains(t, out, "[WARN] [test] видно 2")
	assert.False(t, l.Enabled(DEBUG))
	assert.True(t, l.Enabled(ERROR))
}

func TestLoggerWritesFile(t *testing.T) {
	dir := t.TempDir()
	var buf bytes.Buffer

	l, err := NewLoggerWithOptions("world", Options{
		Dir:          dir,
		Console:      &buf,
		ConsoleLevel: ERROR,
		FileLevel:    DEBUG,
	})
	require.NoError(t, err)

	l.Debug("чанк %s создан", "(0,0)")
	require.NoError(t, l.Close())

	files, err := filepath.Glob(filepath.Join(dir, "world_*.log"))
	require.NoError(t, err)
	require.Len(t, files, 1, "должен появиться один файл логов")

	data, err := os.ReadFile(files[0])
	require.NoError(t, err)
	assert.Contains(t, string(data), "чанк (0,0) создан")
	assert.Empty(t, buf.String(), "DEBUG не должен попадать в консоль")
}

func TestManagerReusesLoggers(t *testing.T) {
	var buf bytes.Buffer
	lm := NewLoggerManager(Options{Console: &buf, ConsoleLevel: INFO})

	a, err := lm.GetLogger("mesh")
	require.NoError(t, err)
	b := lm.MustGetLogger("mesh")
	assert.Same(t, a, b)

	lm.MustGetLogger("world")
	assert.Equal(t, []string{"mesh", "world"}, lm.ListComponents())

	require.NoError(t, lm.SetLogLevel("mesh", ERROR, ERROR))
	a.Warn("не должно выводиться")
	assert.Empty(t, buf.String())

	assert.Error(t, lm.SetLogLevel("missing", INFO, INFO))
	require.NoError(t, lm.CloseAll())
	assert.Empty(t, lm.ListComponents())
}

func TestManagerConfigureUpdatesExisting(t *testing.T) {
	var buf bytes.Buffer
	lm := NewLoggerManager(Options{Console: &buf, ConsoleLevel: ERROR, FileLevel: ERROR})

	sim := lm.MustGetLogger("sim")
	sim.Debug("скрыто")
	assert.Empty(t, buf.String())

	lm.Configure(Options{Console: &buf, ConsoleLevel: DEBUG, FileLevel: DEBUG})
	sim.Debug("видно")
	assert.Contains(t, buf.String(), "видно")
}

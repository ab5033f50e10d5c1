package logger_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"purchasing/internal/pkg/logger"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("should parse level", func(t *testing.T) {
		log := logger.New("debug", &bytes.Buffer{})
		assert.Equal(t, logrus.DebugLevel, log.GetLevel())
	})

	t.Run("should fall back to info", func(t *testing.T) {
		log := logger.New("loud", &bytes.Buffer{})
		assert.Equal(t, logrus.InfoLevel, log.GetLevel())
	})
}

func TestLogError(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New("info", &buf)

	logger.LogError(log, "http", "CreatePurchaseOrder", "persist order", map[string]int{"items": 2}, errors.New("boom"))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "error", entry["level"])
	assert.Equal(t, "http", entry["module"])
	assert.Equal(t, "CreatePurchaseOrder", entry["funcName"])
	assert.Equal(t, "persist order", entry["msg"])
	assert.Equal(t, "boom", entry["error"])
	assert.Equal(t, map[string]any{"items": float64(2)}, entry["data"])
}

func TestComponent(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New("info", &buf)

	logger.Component(log, "sequence-reconcile").Info("done")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "sequence-reconcile", entry["component"])
}

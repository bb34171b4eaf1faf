package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"development", zapcore.DebugLevel},
		{"production", zapcore.InfoLevel},
		{"WARN", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"nonsense", zapcore.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, parseLevel(tt.in))
		})
	}
}

func TestGet_BeforeInitIsNoop(t *testing.T) {
	restore := SetForTest(zap.NewNop())
	defer restore()

	assert.NotNil(t, Get())
	Get().Info("should not panic")
}

func TestSetForTest_CapturesEntries(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	restore := SetForTest(zap.New(core))
	defer restore()

	Get().Info("hello", zap.String("k", "v"))

	assert.Equal(t, 1, logs.Len())
	assert.Equal(t, "hello", logs.All()[0].Message)
}

func TestInit_Development(t *testing.T) {
	restore := SetForTest(zap.NewNop())
	defer restore()

	err := Init(&Config{Level: "debug", ServiceName: "test", Development: true})
	assert.NoError(t, err)
	assert.NotNil(t, Get().Logger)
}

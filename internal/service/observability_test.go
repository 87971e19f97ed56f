package service

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLogUseCaseObserver_SortedFields(t *testing.T) {
	var buf bytes.Buffer
	obs := NewLogUseCaseObserver(&buf)

	obs.ObserveUseCase(context.Background(), UseCaseEvent{
		Name:     "shift-task",
		Duration: 3 * time.Millisecond,
		Success:  true,
		Fields:   map[string]any{"mode": "move", "delta": 2, "id": "t1"},
	})

	line := buf.String()
	assert.Contains(t, line, "msg=ganttline_use_case")
	assert.Contains(t, line, "level=INFO")
	delta, id, mode := strings.Index(line, "delta="), strings.Index(line, "id="), strings.Index(line, "mode=")
	assert.Less(t, delta, id)
	assert.Less(t, id, mode)
}

func TestLogUseCaseObserver_FailureLogsError(t *testing.T) {
	var buf bytes.Buffer
	obs := NewLogUseCaseObserver(&buf)

	obs.ObserveUseCase(context.Background(), UseCaseEvent{
		Name: "import-record",
		Err:  errors.New("validation failed"),
	})

	assert.Contains(t, buf.String(), "level=ERROR")
	assert.Contains(t, buf.String(), "validation failed")
}

func TestNewSlogUseCaseObserver_NilLogger(t *testing.T) {
	assert.IsType(t, NoopUseCaseObserver{}, NewSlogUseCaseObserver(nil))
}

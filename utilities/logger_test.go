package utilities

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestLoggers(t *testing.T) {
	var buf bytes.Buffer
	InitLogger(false)
	SetOutput(&buf)
	t.Cleanup(func() { InitLogger(false) })

	LogInfo("tarefa %d criada", 7)
	LogError(errors.New("boom"), "Erro ao inserir tarefa")
	LogRequest("", "GET", "/tasks", "127.0.0.1:1234", 200, 3*time.Millisecond)

	out := buf.String()
	for _, want := range []string{
		"[INFO]", "tarefa 7 criada",
		"[ERROR]", "Erro ao inserir tarefa: boom",
		"- GET /tasks 127.0.0.1:1234 200 3ms",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

func TestDebugDisabled(t *testing.T) {
	InitLogger(false)
	t.Cleanup(func() { InitLogger(false) })

	var buf bytes.Buffer
	InfoLogger.SetOutput(&buf)
	LogDebug("não deve aparecer")
	if buf.Len() != 0 {
		t.Errorf("debug output leaked: %q", buf.String())
	}
}

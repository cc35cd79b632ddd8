package logger

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestVerboseGating(t *testing.T) {
	verbose := false
	var buf bytes.Buffer

	log := NewWithCallback("client", func() bool { return verbose })
	log.SetOutput(&buf)

	log.Debug("hidden %d", 1)
	log.Info("hidden too")
	if buf.Len() != 0 {
		t.Fatalf("expected no output when not verbose, got %q", buf.String())
	}

	log.Warn("shown %s", "always")
	if !strings.Contains(buf.String(), "shown always") {
		t.Errorf("warn should always be written, got %q", buf.String())
	}

	buf.Reset()
	verbose = true
	log.Debug("now visible")
	if !strings.Contains(buf.String(), "now visible") {
		t.Errorf("debug should be written when verbose, got %q", buf.String())
	}
}

func TestFieldsAndComponent(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithCallback("root", func() bool { return true }).WithComponent("controller")
	log.SetOutput(&buf)

	log.InfoWithFields("request done", []Field{
		F("city", "Osaka"),
		Duration(2 * time.Second),
		Error(errors.New("boom")),
	})

	out := buf.String()
	for _, want := range []string{"component=controller", "city=Osaka", "duration=2s", "error=boom", "request done"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in %q", want, out)
		}
	}
}

func TestDiscard(t *testing.T) {
	log := Discard()
	log.Error("nothing should panic")
	if log.verbose() {
		t.Error("discard logger should not be verbose")
	}
}

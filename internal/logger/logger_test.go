package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter("warn", &buf)
	defer InitWithWriter("info", &bytes.Buffer{})

	Info.Printf("hidden info")
	Debug.Printf("hidden debug")
	Warn.Printf("visible warn")
	Error.Printf("visible error")
	Always.Printf("visible always")

	out := buf.String()
	for _, want := range []string{"visible warn", "visible error", "visible always"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
	for _, hidden := range []string{"hidden info", "hidden debug"} {
		if strings.Contains(out, hidden) {
			t.Errorf("did not expect %q at warn level", hidden)
		}
	}
	if Level() != "warn" {
		t.Errorf("Level() = %q", Level())
	}
}

func TestUnknownLevelDefaultsToInfo(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter("loud", &buf)
	defer InitWithWriter("info", &bytes.Buffer{})

	Info.Printf("info line")
	Debug.Printf("debug line")

	if !strings.Contains(buf.String(), "info line") || strings.Contains(buf.String(), "debug line") {
		t.Errorf("unknown level should behave like info:\n%s", buf.String())
	}
}

func TestInitWithConfigWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pricer.log")
	if err := InitWithConfig("verbose", path); err != nil {
		t.Fatalf("InitWithConfig: %v", err)
	}
	defer InitWithWriter("info", &bytes.Buffer{})

	Verbose.Printf("sweep detail")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	if !strings.Contains(string(data), "sweep detail") {
		t.Errorf("log file missing entry:\n%s", data)
	}
}

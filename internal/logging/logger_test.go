package logging_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/quepf/deluge-rpc/internal/logging"
)

func TestNewJSONLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "debug", Format: "json", Writer: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.Debug("connected", "addr", "127.0.0.1:58846")

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("output is not JSON: %v (%q)", err, buf.String())
	}
	if record["msg"] != "connected" || record["addr"] != "127.0.0.1:58846" {
		t.Errorf("record = %v", record)
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "warn", Format: "console", Writer: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.Info("ignored")
	logger.Warn("kept")
	out := buf.String()
	if strings.Contains(out, "ignored") {
		t.Errorf("info record leaked: %q", out)
	}
	if !strings.Contains(out, "kept") {
		t.Errorf("warn record missing: %q", out)
	}
}

func TestUnsupportedFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "xml"}); err == nil {
		t.Fatal("expected format error")
	}
}

func TestNewNop(t *testing.T) {
	logger := logging.NewNop()
	logger.Error("discarded")
}

package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/mandev/pkg/pipeline"
)

func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := out
	out = &buf
	t.Cleanup(func() { out = prev })
	return &buf
}

func TestPrintResult(t *testing.T) {
	buf := captureOutput(t)

	printResult(&pipeline.Result{
		Format:   pipeline.FormatSVG,
		Body:     make([]byte, 4100),
		Duration: 3 * time.Millisecond,
	})
	line := buf.String()
	for _, want := range []string{"svg", "4.1 kB", iconFresh, "3ms"} {
		if !strings.Contains(line, want) {
			t.Errorf("printResult() = %q, missing %q", line, want)
		}
	}

	buf.Reset()
	printResult(&pipeline.Result{Format: pipeline.FormatPNG, Body: []byte("x"), CacheHit: true})
	if !strings.Contains(buf.String(), iconCached) {
		t.Errorf("cache hit not reported: %q", buf.String())
	}
}

func TestStatusLines(t *testing.T) {
	buf := captureOutput(t)

	printSuccess("Created %s", ".mandev.toml")
	printError("broken")
	printFile("out/jane.svg")
	printKeyValue("name", "Jane Doe")

	got := buf.String()
	for _, want := range []string{iconSuccess + " Created .mandev.toml", iconError + " broken", iconArrow, "out/jane.svg", "Jane Doe"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

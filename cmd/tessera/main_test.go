package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"tessera/internal/config"
	"tessera/internal/diag"
	"tessera/internal/ir"
)

func TestParseSwitch(t *testing.T) {
	cases := []struct {
		input string
		want  autoSwitch
	}{
		{"", switchAuto},
		{"auto", switchAuto},
		{" ON ", switchOn},
		{"off", switchOff},
	}
	for _, tc := range cases {
		got, err := parseSwitch("ui", tc.input)
		if err != nil {
			t.Fatalf("parseSwitch(%q) error: %v", tc.input, err)
		}
		if got != tc.want {
			t.Fatalf("parseSwitch(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
	if _, err := parseSwitch("ui", "sometimes"); err == nil || !strings.Contains(err.Error(), "--ui") {
		t.Fatalf("expected --ui error for unknown value, got %v", err)
	}
	if !switchOn.enabledFor(os.Stdout) || switchOff.enabledFor(os.Stdout) {
		t.Fatalf("on/off must not depend on the terminal")
	}
}

func TestNormalizeList(t *testing.T) {
	got := normalizeList([]string{" Flatten", "", "CALLTREE ", "  "})
	want := []string{"flatten", "calltree"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("normalizeList = %q, want %q", got, want)
	}
}

func TestNestedTree(t *testing.T) {
	main := &ir.Func{Name: "main"}
	step := &ir.Func{Name: "step"}
	force := &ir.Func{Name: "force", Body: ir.Block()}
	main.Body = ir.Block(ir.CallStmt(nil, step), ir.CallStmt(nil, force))
	step.Body = ir.Block(ir.CallStmt(nil, force), ir.CallStmt(nil, step))

	want := "main\n" +
		"  step\n" +
		"    force\n" +
		"    step ...\n" +
		"  force ...\n"
	if got := nestedTree(main); got != want {
		t.Fatalf("nestedTree:\n%s\nwant:\n%s", got, want)
	}
}

func TestLoadImage(t *testing.T) {
	path := filepath.Join("..", "..", "internal", "irfile", "testdata", "springs.yaml")
	img, bag, err := loadImage(context.Background(), path)
	if err != nil {
		t.Fatalf("loadImage: %v", err)
	}
	if bag != nil {
		t.Fatalf("unexpected diagnostics: %s", diag.FormatShort(bag.Items(), true))
	}
	if _, ok := img.prog.Lookup("step"); !ok {
		t.Fatalf("step not decoded from %s", path)
	}
	if len(img.data) == 0 {
		t.Fatalf("image bytes not kept")
	}
}

func TestLoadImageReportsDecodeErrors(t *testing.T) {
	dir := t.TempDir()
	cases := []struct {
		name string
		body string
		code diag.Code
	}{
		{"version.yaml", "version: 99\nfuncs: []\n", diag.IRBadShape},
		{"callee.yaml", "version: 1\nfuncs:\n  - name: main\n    body:\n      - call: missing\n", diag.IRUnknownSymbol},
	}
	for _, tc := range cases {
		path := filepath.Join(dir, tc.name)
		if err := os.WriteFile(path, []byte(tc.body), 0o600); err != nil {
			t.Fatalf("write %s: %v", tc.name, err)
		}
		img, bag, err := loadImage(context.Background(), path)
		if err != nil {
			t.Fatalf("%s: loadImage error: %v", tc.name, err)
		}
		if img != nil || bag == nil || bag.Len() == 0 {
			t.Fatalf("%s: expected diagnostics, got image %v", tc.name, img)
		}
		d := bag.Items()[0]
		if d.Code != tc.code {
			t.Fatalf("%s: code = %s, want %s", tc.name, d.Code.ID(), tc.code.ID())
		}
		if !strings.HasPrefix(d.Message, path+": ") {
			t.Fatalf("%s: message %q does not name the file", tc.name, d.Message)
		}
	}
}

func TestLoadDiagnosticsWithoutLimit(t *testing.T) {
	saved := settings
	t.Cleanup(func() { settings = saved })
	settings.Analysis.MaxDiagnostics = 0

	err := errors.Join(errors.New("first"), errors.New("second"))
	bag := loadDiagnostics("image.yaml", err)
	if bag.Len() != 2 {
		t.Fatalf("kept %d diagnostics, want 2", bag.Len())
	}
}

func TestApplyFlags(t *testing.T) {
	cmd := &cobra.Command{Use: "analyze"}
	cmd.Flags().Int("jobs", 0, "")
	cmd.Flags().Int("max-diagnostics", 0, "")
	cmd.Flags().String("trace", "", "")
	cmd.Flags().String("trace-level", "", "")
	cmd.Flags().StringSlice("checks", nil, "")
	cmd.Flags().String("format", "", "")
	if err := cmd.Flags().Parse([]string{"--jobs=3", "--max-diagnostics=7", "--trace=out.ndjson", "--checks=Flatten, blocked", "--format=yaml"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	cfg := config.Default()
	if err := applyFlags(cmd, &cfg); err != nil {
		t.Fatalf("applyFlags: %v", err)
	}
	if cfg.Analysis.Jobs != 3 || cfg.Analysis.MaxDiagnostics != 7 {
		t.Fatalf("jobs = %d, max = %d", cfg.Analysis.Jobs, cfg.Analysis.MaxDiagnostics)
	}
	if cfg.Trace.Output != "out.ndjson" || cfg.Trace.Level != "phase" {
		t.Fatalf("trace = %q at %q", cfg.Trace.Output, cfg.Trace.Level)
	}
	if !reflect.DeepEqual(cfg.Analysis.Checks, []string{"flatten", "blocked"}) {
		t.Fatalf("checks = %v", cfg.Analysis.Checks)
	}
	if cfg.Output.Format != "yaml" {
		t.Fatalf("format = %q", cfg.Output.Format)
	}
}

func TestApplyFlagsReportsBadFlag(t *testing.T) {
	cmd := &cobra.Command{Use: "analyze"}
	cmd.Flags().String("jobs", "", "")
	if err := cmd.Flags().Parse([]string{"--jobs=many"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	cfg := config.Default()
	err := applyFlags(cmd, &cfg)
	if err == nil || !strings.Contains(err.Error(), "failed to get jobs flag") {
		t.Fatalf("err = %v, want a jobs flag error", err)
	}
}

func TestLoadImageUnknownExtension(t *testing.T) {
	if _, _, err := loadImage(context.Background(), "program.txt"); err == nil {
		t.Fatalf("expected error for unknown image extension")
	}
}

func TestWriteBuildInfo(t *testing.T) {
	info := buildInfo{Version: "1.2.3", Commit: "abc123", Built: "unknown", IRSchema: 1, CacheSchema: 1, Go: "go1.25.1"}

	var buf bytes.Buffer
	if err := writeBuildInfo(&buf, info, "json"); err != nil {
		t.Fatalf("json: %v", err)
	}
	var got buildInfo
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("decode json output: %v", err)
	}
	if got != info {
		t.Fatalf("json payload = %+v, want %+v", got, info)
	}

	buf.Reset()
	if err := writeBuildInfo(&buf, info, "yaml"); err != nil {
		t.Fatalf("yaml: %v", err)
	}
	if !strings.Contains(buf.String(), "ir_schema: 1\n") {
		t.Fatalf("yaml output missing schema:\n%s", buf.String())
	}

	if err := writeBuildInfo(&buf, info, "xml"); err == nil {
		t.Fatalf("expected error for unsupported format")
	}
}

func TestOrUnknown(t *testing.T) {
	if got := orUnknown("  "); got != "unknown" {
		t.Fatalf("orUnknown(blank) = %q", got)
	}
	if got := orUnknown(" abc "); got != "abc" {
		t.Fatalf("orUnknown(abc) = %q", got)
	}
}

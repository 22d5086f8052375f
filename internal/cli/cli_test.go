package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/VergilAI/brand-book-sub003/internal/document"
	"github.com/VergilAI/brand-book-sub003/internal/geom"
	"github.com/VergilAI/brand-book-sub003/internal/svgpath"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestPathDecode(t *testing.T) {
	out, err := run(t, "", "path", "decode", "M0 0 L10 0 L10 10 Z")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	var got struct {
		Vertices []geom.BezierPoint `json:"vertices"`
	}
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("unmarshal %q: %v", out, err)
	}
	if len(got.Vertices) != 3 || got.Vertices[2].Point != geom.Pt(10, 10) {
		t.Errorf("vertices = %+v", got.Vertices)
	}
}

func TestPathEncodeFromStdin(t *testing.T) {
	in := `[{"x":0,"y":0,"controlPoints":{}},{"x":100,"y":0,"controlPoints":{}},{"x":50,"y":100,"controlPoints":{}}]`
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"path", "encode", "-"}, "M 0 0 L 100 0 L 50 100 L 0 0 Z"},
		{[]string{"path", "encode", "--open", "-"}, "M 0 0 L 100 0 L 50 100"},
	}
	for _, tt := range tests {
		out, err := run(t, in, tt.args...)
		if err != nil {
			t.Fatalf("%v: %v", tt.args, err)
		}
		var got struct {
			Path string `json:"path"`
		}
		if err := json.Unmarshal([]byte(out), &got); err != nil {
			t.Fatalf("unmarshal %q: %v", out, err)
		}
		if got.Path != tt.want {
			t.Errorf("%v = %q, want %q", tt.args, got.Path, tt.want)
		}
	}
}

func TestPathEncodeRejectsBadJSON(t *testing.T) {
	if _, err := run(t, "", "path", "encode", "not json"); err == nil {
		t.Error("expected error for malformed vertices")
	}
}

func TestPathTranslateAndBounds(t *testing.T) {
	out, err := run(t, "", "path", "translate", "--dx=5", "--dy=-2", "M0 0 L10 0 L10 10 Z")
	if err != nil {
		t.Fatalf("translate: %v", err)
	}
	var moved struct {
		Path string `json:"path"`
	}
	if err := json.Unmarshal([]byte(out), &moved); err != nil {
		t.Fatalf("unmarshal %q: %v", out, err)
	}
	want := geom.Rect{X: 5, Y: -2, Width: 10, Height: 10}
	if got := svgpath.Bounds(moved.Path); got != want {
		t.Errorf("translated bounds = %+v, want %+v", got, want)
	}

	out, err = run(t, "", "path", "bounds", moved.Path)
	if err != nil {
		t.Fatalf("bounds: %v", err)
	}
	var r geom.Rect
	if err := json.Unmarshal([]byte(out), &r); err != nil {
		t.Fatalf("unmarshal %q: %v", out, err)
	}
	if r != want {
		t.Errorf("bounds = %+v, want %+v", r, want)
	}
}

func TestDocSampleAndInspect(t *testing.T) {
	out, err := run(t, "", "doc", "sample", "--name", "Demo", "--pretty")
	if err != nil {
		t.Fatalf("sample: %v", err)
	}
	doc, err := document.Parse([]byte(out))
	if err != nil {
		t.Fatalf("parse sample: %v", err)
	}
	if doc.Metadata.Name != "Demo" || len(doc.Shapes) != 3 {
		t.Errorf("sample = %q with %d shapes", doc.Metadata.Name, len(doc.Shapes))
	}

	path := filepath.Join(t.TempDir(), "doc.json")
	if err := os.WriteFile(path, []byte(out), 0o644); err != nil {
		t.Fatal(err)
	}
	out, err = run(t, "", "doc", "inspect", path)
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}
	var summary struct {
		Name   string         `json:"name"`
		Shapes []shapeSummary `json:"shapes"`
	}
	if err := json.Unmarshal([]byte(out), &summary); err != nil {
		t.Fatalf("unmarshal %q: %v", out, err)
	}
	if summary.Name != "Demo" || len(summary.Shapes) != 3 {
		t.Errorf("summary = %+v", summary)
	}
	for _, s := range summary.Shapes {
		if s.Vertices < document.MinVertices {
			t.Errorf("shape %s has %d vertices", s.ID, s.Vertices)
		}
	}
}

func TestDocInspectMissingFile(t *testing.T) {
	if _, err := run(t, "", "doc", "inspect", filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}
}

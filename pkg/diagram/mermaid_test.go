package diagram

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/mermaid-filter/pkg/errors"
)

func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0644)
}

// fakeMmdc installs a shell script standing in for mmdc. The script records
// its arguments and the input it was given, then runs body.
func fakeMmdc(t *testing.T, body string) (command, record string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script stand-in requires a POSIX shell")
	}

	dir := t.TempDir()
	record = filepath.Join(dir, "record")
	command = filepath.Join(dir, "mmdc")
	script := `#!/bin/sh
echo "$@" > "` + record + `"
in=""
out=""
while [ $# -gt 0 ]; do
  case "$1" in
    -i) in="$2"; shift ;;
    -o) out="$2"; shift ;;
  esac
  shift
done
cat "$in" >> "` + record + `.src"
echo "$in" > "` + record + `.in"
` + body + "\n"
	if err := os.WriteFile(command, []byte(script), 0755); err != nil {
		t.Fatal(err)
	}
	return command, record
}

func TestMermaidEngineArgs(t *testing.T) {
	e := &MermaidEngine{}
	p := Params{Format: FormatVector, Width: 1024, Height: 768, Theme: "forest"}

	got := strings.Join(e.Args("in.mmd", "out.svg", p), " ")
	want := "-i in.mmd -o out.svg -w 1024 -H 768 -t forest --scale 2 --quiet"
	if got != want {
		t.Errorf("Args() = %q, want %q", got, want)
	}

	e.PuppeteerConfig = "puppeteer.json"
	got = strings.Join(e.Args("in.mmd", "out.svg", p), " ")
	if !strings.HasSuffix(got, "--quiet -p puppeteer.json") {
		t.Errorf("Args() with puppeteer config = %q", got)
	}
}

func TestMermaidEngineSuccess(t *testing.T) {
	command, record := fakeMmdc(t, `printf 'SVGDATA' > "$out"`)
	scratch := t.TempDir()
	e := &MermaidEngine{Command: command, TempDir: scratch, Logger: log.New(&bytes.Buffer{})}

	p := Params{Format: FormatVector, Width: 400, Height: 300, Theme: "dark"}
	data, err := e.Render(context.Background(), "graph TD; A-->B", p)
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}
	if string(data) != "SVGDATA" {
		t.Errorf("Render() = %q, want SVGDATA", data)
	}

	args, _ := os.ReadFile(record)
	for _, want := range []string{"-w 400", "-H 300", "-t dark", "--scale 2", "--quiet"} {
		if !strings.Contains(string(args), want) {
			t.Errorf("mmdc args %q missing %q", args, want)
		}
	}

	src, _ := os.ReadFile(record + ".src")
	if string(src) != "graph TD; A-->B" {
		t.Errorf("mmdc input = %q", src)
	}

	// Scratch files are gone.
	leftovers, _ := os.ReadDir(scratch)
	if len(leftovers) != 0 {
		t.Errorf("scratch files left behind: %v", leftovers)
	}
}

func TestMermaidEngineFailure(t *testing.T) {
	command, _ := fakeMmdc(t, `echo "Parse error on line 1" >&2
exit 1`)
	scratch := t.TempDir()
	var logs bytes.Buffer
	e := &MermaidEngine{Command: command, TempDir: scratch, Logger: log.New(&logs)}

	_, err := e.Render(context.Background(), "graph TD; A--", DefaultParams())
	if !errors.Is(err, errors.ErrCodeRendererFailed) {
		t.Fatalf("Render error = %v, want RENDERER_FAILED", err)
	}
	if !strings.Contains(err.Error(), "Parse error on line 1") {
		t.Errorf("error should carry mmdc stderr: %v", err)
	}
	if !strings.Contains(logs.String(), "Parse error on line 1") {
		t.Errorf("stderr should be logged, got %q", logs.String())
	}

	leftovers, _ := os.ReadDir(scratch)
	if len(leftovers) != 0 {
		t.Errorf("scratch files left behind on failure: %v", leftovers)
	}
}

func TestMermaidEngineNoOutput(t *testing.T) {
	command, _ := fakeMmdc(t, "exit 0")
	e := &MermaidEngine{Command: command, TempDir: t.TempDir(), Logger: log.New(&bytes.Buffer{})}

	_, err := e.Render(context.Background(), "graph", DefaultParams())
	if !errors.Is(err, errors.ErrCodeRendererFailed) {
		t.Errorf("Render error = %v, want RENDERER_FAILED", err)
	}
}

func TestMermaidEngineMissing(t *testing.T) {
	var logs bytes.Buffer
	e := &MermaidEngine{
		Command: filepath.Join(t.TempDir(), "no-such-mmdc"),
		Logger:  log.New(&logs),
	}

	for i := 0; i < 2; i++ {
		_, err := e.Render(context.Background(), "graph", DefaultParams())
		if !errors.Is(err, errors.ErrCodeRendererMissing) {
			t.Fatalf("Render error = %v, want RENDERER_MISSING", err)
		}
	}

	// The install hint is emitted on every call.
	if n := strings.Count(logs.String(), "npm install -g @mermaid-js/mermaid-cli"); n != 2 {
		t.Errorf("install hint logged %d times, want 2", n)
	}
}

func TestMermaidEngineScratchDirUnwritable(t *testing.T) {
	command, _ := fakeMmdc(t, `printf 'x' > "$out"`)
	e := &MermaidEngine{
		Command: command,
		TempDir: filepath.Join(t.TempDir(), "absent"),
		Logger:  log.New(&bytes.Buffer{}),
	}

	_, err := e.Render(context.Background(), "graph", DefaultParams())
	if !errors.Is(err, errors.ErrCodeFilesystem) {
		t.Errorf("Render error = %v, want FILESYSTEM", err)
	}
}

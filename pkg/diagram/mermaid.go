package diagram

import (
	"bytes"
	"context"
	goerrors "errors"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/mermaid-filter/pkg/errors"
)

const (
	// DefaultMermaidCommand is the mermaid CLI executable.
	DefaultMermaidCommand = "mmdc"

	// mermaidScale renders at twice the requested size for sharp text.
	mermaidScale = 2

	mermaidInstallHint = "mermaid-cli (mmdc) not found. Install it with: npm install -g @mermaid-js/mermaid-cli"
)

// MermaidEngine renders mermaid source with the mermaid CLI.
//
// Each render writes the source to a scratch file, runs
//
//	mmdc -i <in> -o <out> -w <width> -H <height> -t <theme> --scale 2 --quiet
//
// and reads the output back. Both scratch files are removed before Render
// returns, whatever the outcome.
type MermaidEngine struct {
	// Command is the mmdc executable name or path. Empty means "mmdc".
	Command string

	// PuppeteerConfig, if set, is passed to mmdc with -p.
	PuppeteerConfig string

	// TempDir holds scratch files. Empty means os.TempDir().
	TempDir string

	Logger *log.Logger
}

// Name returns "mermaid".
func (e *MermaidEngine) Name() string { return "mermaid" }

// Args returns the mmdc arguments for one render.
func (e *MermaidEngine) Args(in, out string, p Params) []string {
	args := []string{
		"-i", in,
		"-o", out,
		"-w", strconv.Itoa(p.Width),
		"-H", strconv.Itoa(p.Height),
		"-t", p.Theme,
		"--scale", strconv.Itoa(mermaidScale),
		"--quiet",
	}
	if e.PuppeteerConfig != "" {
		args = append(args, "-p", e.PuppeteerConfig)
	}
	return args
}

// Render runs mmdc on source.
func (e *MermaidEngine) Render(ctx context.Context, source string, p Params) ([]byte, error) {
	command := e.Command
	if command == "" {
		command = DefaultMermaidCommand
	}
	logger := e.Logger
	if logger == nil {
		logger = log.Default()
	}

	bin, err := exec.LookPath(command)
	if err != nil {
		logger.Error(mermaidInstallHint)
		return nil, errors.Wrap(errors.ErrCodeRendererMissing, err, "%s not found", command)
	}

	dir := e.TempDir
	if dir == "" {
		dir = os.TempDir()
	}
	base := filepath.Join(dir, "mermaid_"+uuid.NewString())
	in := base + ".mmd"
	out := base + "." + p.Format.Ext()

	if err := os.WriteFile(in, []byte(source), 0600); err != nil {
		return nil, errors.Wrap(errors.ErrCodeFilesystem, err, "write scratch file %s", in)
	}
	defer os.Remove(in)
	defer os.Remove(out)

	cmd := exec.CommandContext(ctx, bin, e.Args(in, out, p)...)
	var diag bytes.Buffer
	cmd.Stdout = &diag
	cmd.Stderr = &diag

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		msg := strings.TrimSpace(diag.String())
		logger.Error("Error generating mermaid diagram", "err", err, "stderr", msg)

		var exitErr *exec.ExitError
		if goerrors.As(err, &exitErr) {
			return nil, errors.Wrap(errors.ErrCodeRendererFailed, err, "mmdc exited with code %d: %s", exitErr.ExitCode(), msg)
		}
		return nil, errors.Wrap(errors.ErrCodeRendererFailed, err, "run mmdc")
	}

	data, err := os.ReadFile(out)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRendererFailed, err, "mmdc wrote no output")
	}
	return data, nil
}

// Ensure MermaidEngine implements Engine.
var _ Engine = (*MermaidEngine)(nil)

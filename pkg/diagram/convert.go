package diagram

import (
	"bytes"
	"context"
	"os/exec"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/mermaid-filter/pkg/errors"
)

const rsvgInstallHint = "rsvg-convert not found. Install librsvg with: brew install librsvg (macOS) or apt install librsvg2-bin (Linux)"

// svgToPDF converts SVG bytes to PDF using rsvg-convert.
func svgToPDF(ctx context.Context, logger *log.Logger, svg []byte) ([]byte, error) {
	return rsvgConvert(ctx, logger, svg, "pdf")
}

// rsvgConvert shells out to rsvg-convert for format conversion.
func rsvgConvert(ctx context.Context, logger *log.Logger, svg []byte, format string, extraArgs ...string) ([]byte, error) {
	bin, err := exec.LookPath("rsvg-convert")
	if err != nil {
		logger.Error(rsvgInstallHint)
		return nil, errors.Wrap(errors.ErrCodeRendererMissing, err, "%s export requires rsvg-convert", format)
	}

	args := append([]string{"-f", format}, extraArgs...)
	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Stdin = bytes.NewReader(svg)

	var out, errBuf bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errBuf

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		msg := strings.TrimSpace(errBuf.String())
		logger.Error("rsvg-convert failed", "err", err, "stderr", msg)
		return nil, errors.Wrap(errors.ErrCodeRendererFailed, err, "rsvg-convert: %s", msg)
	}
	return out.Bytes(), nil
}

package render

import (
	"bytes"
	"context"
	"os/exec"
	"strings"

	"github.com/matzehuels/spiderfy/pkg/errors"
)

// rsvgConvert is the librsvg command line converter ToPDF shells out to.
const rsvgConvert = "rsvg-convert"

// ToPDF converts an SVG document to PDF with rsvg-convert, which must be on
// PATH (librsvg2-bin on Debian, librsvg on Homebrew). The conversion is
// killed when ctx is cancelled.
func ToPDF(ctx context.Context, svg []byte) ([]byte, error) {
	bin, err := exec.LookPath(rsvgConvert)
	if err != nil {
		return nil, errors.New(errors.ErrCodeUnsupported, "pdf output needs %s from librsvg on PATH", rsvgConvert)
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, bin, "--format", "pdf")
	cmd.Stdin = bytes.NewReader(svg)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "%s: %s", rsvgConvert, strings.TrimSpace(stderr.String()))
	}
	return stdout.Bytes(), nil
}

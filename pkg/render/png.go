package render

import (
	"bytes"
	"cmp"
	"math"
	"slices"

	"github.com/fogleman/gg"

	"github.com/matzehuels/spiderfy/pkg/errors"
	"github.com/matzehuels/spiderfy/pkg/scene"
	"github.com/matzehuels/spiderfy/pkg/spider"
)

// maxPNGSide caps either side of a rasterized frame, in pixels.
const maxPNGSide = 8192

// RenderPNG rasterizes fr at scale, using the same options and paint order as
// RenderSVG.
func RenderPNG(fr scene.Frame, scale float64, opts ...SVGOption) ([]byte, error) {
	if !(scale > 0) || math.IsInf(scale, 0) {
		return nil, errors.New(errors.ErrCodeInvalidInput, "png scale must be positive, got %v", scale)
	}
	w, h := int(math.Ceil(fr.Width*scale)), int(math.Ceil(fr.Height*scale))
	if w <= 0 || h <= 0 || w > maxPNGSide || h > maxPNGSide {
		return nil, errors.New(errors.ErrCodeInvalidInput, "png size %dx%d out of range (max %d)", w, h, maxPNGSide)
	}

	r := svgRenderer{bg: backgrounds[fr.MapType]}
	for _, opt := range opts {
		opt(&r)
	}
	if r.bg == "" {
		r.bg = backgrounds[spider.MapTypeRoadmap]
	}

	dc := gg.NewContext(w, h)
	dc.Scale(scale, scale)
	dc.SetHexColor(r.bg)
	dc.Clear()

	if r.origins {
		dc.SetHexColor("#888888")
		dc.SetLineWidth(1)
		dc.SetDash(2, 2)
		for _, m := range fr.Markers {
			if m.Origin != nil {
				dc.DrawCircle(m.Origin.X, m.Origin.Y, markerRadius)
				dc.Stroke()
			}
		}
		if fr.Body != nil {
			dc.DrawLine(fr.Body.X-3, fr.Body.Y, fr.Body.X+3, fr.Body.Y)
			dc.DrawLine(fr.Body.X, fr.Body.Y-3, fr.Body.X, fr.Body.Y+3)
			dc.Stroke()
		}
		dc.SetDash()
	}

	legs := slices.Clone(fr.Legs)
	slices.SortStableFunc(legs, func(a, b scene.FrameLeg) int { return cmp.Compare(a.Z, b.Z) })
	for _, l := range legs {
		dc.SetHexColor(l.Color)
		dc.SetLineWidth(l.Weight)
		dc.DrawLine(l.From.X, l.From.Y, l.To.X, l.To.Y)
		dc.Stroke()
	}

	markers := slices.Clone(fr.Markers)
	slices.SortStableFunc(markers, func(a, b scene.FrameMarker) int { return cmp.Compare(a.Z, b.Z) })
	for _, m := range markers {
		if !m.Visible || !m.OnMap {
			continue
		}
		fill, ok := statusFill[m.Status]
		if !ok {
			fill = "#777777"
		}
		dc.DrawCircle(m.Point.X, m.Point.Y, markerRadius)
		dc.SetHexColor(fill)
		dc.FillPreserve()
		if m.Spiderfied {
			dc.SetHexColor("#000000")
		} else {
			dc.SetHexColor("#ffffff")
		}
		dc.SetLineWidth(1.5)
		dc.Stroke()
		if r.labels {
			dc.SetHexColor("#111111")
			dc.DrawString(m.ID, m.Point.X+markerRadius+2, m.Point.Y+4)
		}
	}

	if r.title != "" {
		dc.SetHexColor("#111111")
		dc.DrawString(r.title, 8, 18)
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode png")
	}
	return buf.Bytes(), nil
}

package render

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/disintegration/imaging"

	"github.com/colonyops/folio/internal/core/document"
	"github.com/colonyops/folio/pkg/kv"
)

// glyphRamp orders glyphs from darkest to lightest.
const glyphRamp = "@%#*+=-:. "

var imageExts = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true, ".bmp": true, ".tif": true, ".tiff": true,
}

type thumbKey struct {
	path    string
	cols    int
	modTime time.Time
}

// thumbnails caches rendered logos by file and size.
var thumbnails = kv.New[thumbKey, []string]()

// logoCols is the thumbnail width for size, clamped to the frame.
func logoCols(size document.LogoSize, width int) int {
	cols := 12
	if size == document.LogoLarge {
		cols = 24
	}
	return max(1, min(cols, width))
}

// logoThumbnail renders the image at ref as glyph art cols wide. One cell
// covers two pixel rows. ok is false when ref is not a readable image.
func logoThumbnail(ref string, cols int) (lines []string, ok bool) {
	if !imageExts[strings.ToLower(filepath.Ext(ref))] {
		return nil, false
	}
	info, err := os.Stat(ref)
	if err != nil || info.IsDir() {
		return nil, false
	}

	key := thumbKey{path: ref, cols: cols, modTime: info.ModTime()}
	lines, err = thumbnails.GetOrCreate(key, func() ([]string, error) {
		img, err := imaging.Open(ref)
		if err != nil {
			return nil, err
		}
		// Older renderings of the same file are stale.
		thumbnails.DeleteFunc(func(k thumbKey, _ []string) bool {
			return k.path == ref && !k.modTime.Equal(key.modTime)
		})
		return glyphArt(imaging.Resize(img, cols, 0, imaging.Lanczos), cols*2/3), nil
	})
	return lines, err == nil
}

// glyphArt converts img to styled lines of at most maxRows rows.
func glyphArt(img image.Image, maxRows int) []string {
	bounds := img.Bounds()
	rows := min((bounds.Dy()+1)/2, max(1, maxRows))

	out := make([]string, 0, rows)
	for row := range rows {
		var sb strings.Builder
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			y := bounds.Min.Y + row*2
			r, g, b, a := averagePixel(img, x, y, min(y+1, bounds.Max.Y-1))
			if a < 0x80 {
				sb.WriteByte(' ')
				continue
			}
			lum := (299*r + 587*g + 114*b) / 1000
			glyph := glyphRamp[int(lum)*(len(glyphRamp)-1)/0xff]
			color := lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", r, g, b))
			sb.WriteString(lipgloss.NewStyle().Foreground(color).Render(string(glyph)))
		}
		out = append(out, sb.String())
	}
	return out
}

// averagePixel averages the pixels at (x, y1) and (x, y2) as 8-bit channels.
func averagePixel(img image.Image, x, y1, y2 int) (r, g, b, a uint32) {
	r1, g1, b1, a1 := img.At(x, y1).RGBA()
	r2, g2, b2, a2 := img.At(x, y2).RGBA()
	return (r1 + r2) >> 9, (g1 + g2) >> 9, (b1 + b2) >> 9, (a1 + a2) >> 9
}

// thumbnail adds the lines of a logo thumbnail cols wide, aligned within
// the frame.
func (b *builder) thumbnail(lines []string, cols int, align document.Align) {
	offset := 0
	switch align {
	case document.AlignCenter:
		offset = (b.width - cols) / 2
	case document.AlignRight:
		offset = b.width - cols
	case document.AlignLeft:
	}
	for _, l := range lines {
		b.line(b.pad(offset), b.raw(l))
	}
}

package draw

import (
	"io"
	"math"
	"sort"
	"strconv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Point represents a 2D coordinate in canvas pixels.
type Point struct {
	X, Y float64
}

// Block characters for drawing.
const (
	BlockFull      = '█'
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

// Canvas is a true-color drawing buffer with 2x vertical resolution using
// half-block characters. Each terminal cell holds two square-ish pixels:
// the top one rendered as the foreground of '▀', the bottom one as the
// background.
type Canvas struct {
	cols   int               // Terminal columns
	rows   int               // Terminal rows
	height int               // rows * 2
	pixels []colorful.Color  // Flat slice: [y * cols + x]

	// Offset for centering the render area when the terminal is larger than
	// the max resolution. These are 0-based terminal offsets.
	offsetCol int
	offsetRow int

	// Reusable buffers to reduce allocations
	renderBuf       strings.Builder
	numBuf          [20]byte
	intersectionBuf []float64
	polygonBuf      []Point
}

// NewCanvas creates a canvas covering cols x rows terminal cells.
func NewCanvas(cols, rows int) *Canvas {
	c := &Canvas{}
	c.Resize(cols, rows)
	return c
}

// Resize updates the canvas for new terminal dimensions.
// Pixel contents are discarded when the size changes.
func (c *Canvas) Resize(cols, rows int) {
	cols = max(cols, 0)
	rows = max(rows, 0)
	if cols == c.cols && rows == c.rows && c.pixels != nil {
		return
	}
	c.cols = cols
	c.rows = rows
	c.height = rows * 2
	c.pixels = make([]colorful.Color, c.height*cols)
}

// SetOffset sets the column and row offset for centering the canvas.
// The canvas starts at terminal position (offsetCol+1, offsetRow+1).
func (c *Canvas) SetOffset(col, row int) {
	c.offsetCol = col
	c.offsetRow = row
}

// OffsetCol returns the column offset used for centering.
func (c *Canvas) OffsetCol() int {
	return c.offsetCol
}

// OffsetRow returns the row offset used for centering.
func (c *Canvas) OffsetRow() int {
	return c.offsetRow
}

// Width returns the canvas width in pixels (terminal columns).
func (c *Canvas) Width() int {
	return c.cols
}

// Height returns the canvas height in pixels (terminal rows * 2).
func (c *Canvas) Height() int {
	return c.height
}

// Rows returns the terminal row count.
func (c *Canvas) Rows() int {
	return c.rows
}

// Fill paints every pixel with bg.
func (c *Canvas) Fill(bg colorful.Color) {
	for i := range c.pixels {
		c.pixels[i] = bg
	}
}

// At returns the pixel color at (x, y), or black outside the canvas.
func (c *Canvas) At(x, y int) colorful.Color {
	if x < 0 || x >= c.cols || y < 0 || y >= c.height {
		return colorful.Color{}
	}
	return c.pixels[y*c.cols+x]
}

// Blend mixes col into the pixel at (x, y) with the given opacity.
func (c *Canvas) Blend(x, y int, col colorful.Color, alpha float64) {
	if x < 0 || x >= c.cols || y < 0 || y >= c.height || alpha <= 0 {
		return
	}
	i := y*c.cols + x
	if alpha >= 1 {
		c.pixels[i] = col
		return
	}
	c.pixels[i] = c.pixels[i].BlendRgb(col, alpha)
}

// FillRect fills an axis-aligned rectangle. A pixel is covered when its
// center lies inside.
func (c *Canvas) FillRect(x, y, w, h float64, col colorful.Color, alpha float64) {
	x0, x1 := pixelSpan(x, x+w, c.cols)
	y0, y1 := pixelSpan(y, y+h, c.height)
	for py := y0; py < y1; py++ {
		for px := x0; px < x1; px++ {
			c.Blend(px, py, col, alpha)
		}
	}
}

// StrokeRect outlines a rectangle with a one-pixel border.
func (c *Canvas) StrokeRect(x, y, w, h float64, col colorful.Color, alpha float64) {
	x0, x1 := pixelSpan(x, x+w, c.cols)
	y0, y1 := pixelSpan(y, y+h, c.height)
	if x0 >= x1 || y0 >= y1 {
		return
	}
	for px := x0; px < x1; px++ {
		c.Blend(px, y0, col, alpha)
		if y1-1 != y0 {
			c.Blend(px, y1-1, col, alpha)
		}
	}
	for py := y0 + 1; py < y1-1; py++ {
		c.Blend(x0, py, col, alpha)
		if x1-1 != x0 {
			c.Blend(x1-1, py, col, alpha)
		}
	}
}

// FillCircle fills a disc. Discs smaller than a pixel still mark the pixel
// under their center.
func (c *Canvas) FillCircle(cx, cy, r float64, col colorful.Color, alpha float64) {
	if r <= 0 {
		return
	}
	if r < 0.5 {
		c.Blend(int(math.Floor(cx)), int(math.Floor(cy)), col, alpha)
		return
	}
	r2 := r * r
	x0, x1 := pixelSpan(cx-r, cx+r, c.cols)
	y0, y1 := pixelSpan(cy-r, cy+r, c.height)
	for py := y0; py < y1; py++ {
		dy := float64(py) + 0.5 - cy
		for px := x0; px < x1; px++ {
			dx := float64(px) + 0.5 - cx
			if dx*dx+dy*dy <= r2 {
				c.Blend(px, py, col, alpha)
			}
		}
	}
}

// StrokeCircle draws a ring of the given thickness centered on radius r.
func (c *Canvas) StrokeCircle(cx, cy, r, thickness float64, col colorful.Color, alpha float64) {
	if r <= 0 {
		return
	}
	half := max(thickness, 1) / 2
	inner := max(r-half, 0)
	outer := r + half
	inner2, outer2 := inner*inner, outer*outer

	x0, x1 := pixelSpan(cx-outer, cx+outer, c.cols)
	y0, y1 := pixelSpan(cy-outer, cy+outer, c.height)
	for py := y0; py < y1; py++ {
		dy := float64(py) + 0.5 - cy
		for px := x0; px < x1; px++ {
			dx := float64(px) + 0.5 - cx
			d2 := dx*dx + dy*dy
			if d2 >= inner2 && d2 <= outer2 {
				c.Blend(px, py, col, alpha)
			}
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm.
func (c *Canvas) DrawLine(p1, p2 Point, col colorful.Color, alpha float64) {
	x1, y1 := int(math.Floor(p1.X)), int(math.Floor(p1.Y))
	x2, y2 := int(math.Floor(p2.X)), int(math.Floor(p2.Y))

	dx := abs(x2 - x1)
	dy := abs(y2 - y1)

	sx := 1
	if x1 > x2 {
		sx = -1
	}
	sy := 1
	if y1 > y2 {
		sy = -1
	}

	err := dx - dy

	for {
		c.Blend(x1, y1, col, alpha)

		if x1 == x2 && y1 == y2 {
			break
		}

		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

// FillPolygon fills a polygon using the scanline algorithm.
// Each pixel is blended at most once.
func (c *Canvas) FillPolygon(points []Point, col colorful.Color, alpha float64) {
	if len(points) < 3 {
		return
	}

	minY, maxY := points[0].Y, points[0].Y
	for _, p := range points {
		minY = min(minY, p.Y)
		maxY = max(maxY, p.Y)
	}

	yStart := max(int(math.Floor(minY)), 0)
	yEnd := min(int(math.Ceil(maxY)), c.height-1)

	for y := yStart; y <= yEnd; y++ {
		scanY := float64(y) + 0.5

		intersections := c.intersectionBuf[:0]
		n := len(points)
		for i := 0; i < n; i++ {
			p1 := points[i]
			p2 := points[(i+1)%n]

			if (p1.Y <= scanY && p2.Y > scanY) || (p2.Y <= scanY && p1.Y > scanY) {
				t := (scanY - p1.Y) / (p2.Y - p1.Y)
				intersections = append(intersections, p1.X+t*(p2.X-p1.X))
			}
		}
		c.intersectionBuf = intersections

		sort.Float64s(intersections)

		for i := 0; i+1 < len(intersections); i += 2 {
			xStart, xEnd := pixelSpan(intersections[i], intersections[i+1], c.cols)
			for x := xStart; x < xEnd; x++ {
				c.Blend(x, y, col, alpha)
			}
		}
	}
}

// StrokePolygon outlines a closed polygon.
func (c *Canvas) StrokePolygon(points []Point, col colorful.Color, alpha float64) {
	n := len(points)
	if n < 2 {
		return
	}
	for i := 0; i < n; i++ {
		c.DrawLine(points[i], points[(i+1)%n], col, alpha)
	}
}

// BorrowPoints returns a reusable slice of Points with the given length.
// The returned slice is only valid until the next call to BorrowPoints.
func (c *Canvas) BorrowPoints(n int) []Point {
	if cap(c.polygonBuf) < n {
		c.polygonBuf = make([]Point, n)
	}
	return c.polygonBuf[:n]
}

// Render writes every cell of the canvas to w. Cells are repainted in
// place without clearing the screen, and color escapes are only emitted
// when they change.
func (c *Canvas) Render(w io.Writer) error {
	c.renderBuf.Reset()
	c.renderBuf.Grow(c.cols * c.rows * 24)

	for row := 0; row < c.rows; row++ {
		c.moveTo(c.offsetCol+1, c.offsetRow+row+1)

		var lastFg, lastBg [3]uint8
		first := true
		top := row * 2 * c.cols
		bottom := top + c.cols
		for col := 0; col < c.cols; col++ {
			fg := rgb(c.pixels[top+col])
			bg := rgb(c.pixels[bottom+col])
			if first || fg != lastFg {
				c.writeColor(38, fg)
				lastFg = fg
			}
			if first || bg != lastBg {
				c.writeColor(48, bg)
				lastBg = bg
			}
			first = false
			c.renderBuf.WriteRune(BlockUpperHalf)
		}
	}
	c.renderBuf.WriteString(resetStyle)

	data := c.renderBuf.String()
	for len(data) > 0 {
		chunk := data
		if len(chunk) > maxChunkSize {
			chunk = data[:maxChunkSize]
		}
		if _, err := io.WriteString(w, chunk); err != nil {
			return err
		}
		data = data[len(chunk):]
	}
	return nil
}

func (c *Canvas) moveTo(col, row int) {
	c.renderBuf.WriteString("\033[")
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(row), 10))
	c.renderBuf.WriteByte(';')
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(col), 10))
	c.renderBuf.WriteByte('H')
}

// writeColor appends a 24-bit SGR color; layer is 38 (fg) or 48 (bg).
func (c *Canvas) writeColor(layer int, v [3]uint8) {
	c.renderBuf.Write(appendColor(c.numBuf[:0], layer, v))
}

func appendColor(b []byte, layer int, v [3]uint8) []byte {
	b = append(b, "\033["...)
	b = strconv.AppendInt(b, int64(layer), 10)
	b = append(b, ";2"...)
	for _, ch := range v {
		b = append(b, ';')
		b = strconv.AppendInt(b, int64(ch), 10)
	}
	return append(b, 'm')
}

func rgb(c colorful.Color) [3]uint8 {
	r, g, b := c.Clamped().RGB255()
	return [3]uint8{r, g, b}
}

// pixelSpan returns the half-open pixel range [lo, hi) whose centers fall
// within [a, b], clipped to [0, n).
func pixelSpan(a, b float64, n int) (int, int) {
	lo := int(math.Ceil(a - 0.5))
	hi := int(math.Floor(b-0.5)) + 1
	return max(lo, 0), min(hi, n)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

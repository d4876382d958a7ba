package usecase

import "sync"

// Accent colors handed out to invited participants, in admission order
var inviteColors = []string{
	"#34d399", // Esmeralda
	"#fbbf24", // Ámbar
	"#a78bfa", // Lavanda
	"#fb923c", // Naranja
	"#ec4899", // Rosa
}

// Palette hands out participant colors from a fixed rotating list.
// Each room owns its own Palette so rotations never leak between rooms.
type Palette struct {
	mu     sync.Mutex
	colors []string
	next   int
}

// NewPalette creates a palette over the default invite colors
func NewPalette() *Palette {
	return NewPaletteWith(inviteColors)
}

// NewPaletteWith creates a palette over a custom color list.
// An empty list falls back to the default invite colors.
func NewPaletteWith(colors []string) *Palette {
	if len(colors) == 0 {
		colors = inviteColors
	}
	cp := make([]string, len(colors))
	copy(cp, colors)
	return &Palette{colors: cp}
}

// Next returns the next color, wrapping around after the last one
func (p *Palette) Next() string {
	p.mu.Lock()
	defer p.mu.Unlock()

	color := p.colors[p.next%len(p.colors)]
	p.next++
	return color
}

// Issued returns how many colors have been handed out
func (p *Palette) Issued() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.next
}

// Colors returns a copy of the palette's colors
func (p *Palette) Colors() []string {
	out := make([]string, len(p.colors))
	copy(out, p.colors)
	return out
}

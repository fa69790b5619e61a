package viz

import (
	"strings"
	"testing"
)

func TestCanvas_SetAndRender(t *testing.T) {
	c := NewCanvas(2, 1)

	c.Set(0, 0)
	out := c.String()
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1", len(lines))
	}

	cells := []rune(lines[0])
	if len(cells) != 2 {
		t.Fatalf("got %d cells, want 2", len(cells))
	}
	if cells[0] != 0x2801 {
		t.Errorf("cell 0 = %U, want U+2801", cells[0])
	}
	if cells[1] != 0x2800 {
		t.Errorf("cell 1 = %U, want empty braille", cells[1])
	}
}

func TestCanvas_OutOfRangeIgnored(t *testing.T) {
	c := NewCanvas(2, 2)
	c.Set(-1, 0)
	c.Set(0, -5)
	c.Set(100, 0)
	c.Set(0, 100)

	for _, row := range c.Grid {
		for _, cell := range row {
			if cell != 0x2800 {
				t.Fatalf("out-of-range Set modified the canvas: %U", cell)
			}
		}
	}
}

func TestCanvas_Clear(t *testing.T) {
	c := NewCanvas(3, 3)
	c.Set(1, 1)
	c.Set(4, 8)
	c.Clear()

	for _, row := range c.Grid {
		for _, cell := range row {
			if cell != 0x2800 {
				t.Fatalf("Clear left a lit cell: %U", cell)
			}
		}
	}
}

func TestCanvas_SubPixelMapping(t *testing.T) {
	c := NewCanvas(1, 1)
	// Bottom-right sub-pixel of the only cell.
	c.Set(1, 3)
	if c.Grid[0][0] != 0x2800|0x80 {
		t.Errorf("cell = %U, want U+28%02X", c.Grid[0][0], 0x80)
	}
}

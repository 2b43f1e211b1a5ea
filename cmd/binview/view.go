package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/dacapoday/binfile/internal/dump"
)

func viewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "view <file>",
		Short: "browse a file interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := open(args[0])
			if err != nil {
				return err
			}
			defer b.Close()
			return runView(&viewer{bin: b})
		},
	}
}

// elemsPerRow matches the row layout of dump.Render.
const elemsPerRow = 8

type viewer struct {
	bin    file
	top    int64 // byte offset of the first visible row
	width  int
	height int
	status string
}

func runView(v *viewer) error {
	oldState, err := term.MakeRaw(int(os.Stdin.Fd()))
	if err != nil {
		return err
	}
	defer term.Restore(int(os.Stdin.Fd()), oldState)

	v.updateSize()

	fmt.Print("\033[?25l\033[2J")             // hide cursor, clear screen once
	defer fmt.Print("\033[?25h\033[2J\033[H") // show cursor, clear screen

	reader := bufio.NewReader(os.Stdin)

	for {
		v.updateSize()
		if err := v.render(); err != nil {
			return err
		}

		b, err := reader.ReadByte()
		if err != nil {
			return nil
		}

		v.status = "" // clear status on any input

		switch b {
		case 'q', 3, 27: // q, Ctrl+C, Esc
			if b == 27 && reader.Buffered() > 0 {
				// escape sequence
				b2, _ := reader.ReadByte()
				if b2 == '[' {
					b3, _ := reader.ReadByte()
					switch b3 {
					case 'A': // up
						v.up()
					case 'B': // down
						v.down()
					case '5': // page up
						reader.ReadByte()
						v.pageUp()
					case '6': // page down
						reader.ReadByte()
						v.pageDown()
					}
				}
				continue
			}
			return nil
		case 'j':
			v.down()
		case 'k':
			v.up()
		case 'g':
			v.first()
		case 'G':
			v.last()
		}
	}
}

// updateSize checks terminal size and returns true if changed.
func (v *viewer) updateSize() bool {
	w, h, err := term.GetSize(int(os.Stdin.Fd()))
	if err != nil {
		w, h = 80, 24
	}
	if w == v.width && h == v.height {
		return false
	}
	v.width, v.height = w, h
	return true
}

func (v *viewer) lines() int {
	return v.height - 4 // title + separator + separator + status
}

func (v *viewer) rowBytes() int64 {
	return int64(elemsPerRow * dump.Width(typFlag))
}

func (v *viewer) size() int64 {
	size, err := v.bin.Size()
	if err != nil {
		v.status = err.Error()
		return 0
	}
	return size
}

func (v *viewer) down() {
	if v.top+v.rowBytes() < v.size() {
		v.top += v.rowBytes()
	}
}

func (v *viewer) up() {
	if v.top >= v.rowBytes() {
		v.top -= v.rowBytes()
	} else {
		v.top = 0
	}
}

func (v *viewer) pageDown() {
	for i := 0; i < v.lines()-1; i++ {
		v.down()
	}
}

func (v *viewer) pageUp() {
	for i := 0; i < v.lines()-1; i++ {
		v.up()
	}
}

func (v *viewer) first() {
	v.top = 0
}

func (v *viewer) last() {
	row := v.rowBytes()
	if size := v.size(); size > 0 {
		v.top = (size - 1) / row * row
	}
	for i := 0; i < v.lines()-1; i++ {
		v.up()
	}
}

// row renders the elements of one display row, or "~" past the end.
func (v *viewer) row(off int64) (string, error) {
	size := v.size()
	if off >= size {
		return "~", nil
	}
	n := v.rowBytes()
	if off+n > size {
		n = size - off
	}
	data, err := v.bin.GetRawAt(n, off)
	if err != nil {
		return "", err
	}
	var line strings.Builder
	if err := dump.Render(&line, off, data, typFlag, v.bin.LittleEndian()); err != nil {
		return "", err
	}
	return strings.TrimRight(line.String(), "\n"), nil
}

func (v *viewer) render() error {
	var b strings.Builder

	// move to top (no clear)
	b.WriteString("\033[H")

	// header
	fmt.Fprintf(&b, "[ binview %s %s ]\033[K\r\n", v.bin.Path(), typFlag)
	b.WriteString(strings.Repeat("─", v.width))
	b.WriteString("\033[K\r\n")

	lines := v.lines()
	for i := 0; i < lines; i++ {
		line, err := v.row(v.top + int64(i)*v.rowBytes())
		if err != nil {
			return err
		}
		if len(line) > v.width {
			line = line[:v.width]
		}
		b.WriteString(line)
		b.WriteString("\033[K\r\n")
	}

	// footer
	b.WriteString(strings.Repeat("─", v.width))
	b.WriteString("\033[K\r\n")

	// status line
	if v.status != "" {
		fmt.Fprintf(&b, " %s", v.status)
	} else {
		fmt.Fprintf(&b, " offset %#x / %d bytes  j/k:scroll g/G:jump q:quit", v.top, v.size())
	}
	b.WriteString("\033[K")

	fmt.Print(b.String())
	return nil
}

package main

import (
	"errors"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/npillmayer/bigbytes"
	"golang.org/x/term"
)

// terminalWidth returns the width of stdout, or 80 if stdout is not a terminal.
func terminalWidth() int {
	fd := int(os.Stdout.Fd())
	if term.IsTerminal(fd) {
		if w, _, err := term.GetSize(fd); err == nil {
			return w
		}
	}
	return 80
}

// bytesPerLine fits a dump line into width columns. A line takes 10 columns for
// the offset, 4 per byte (hex and ASCII) and 3 for separators.
func bytesPerLine(width int) int {
	n := (width - 13) / 4 / 8 * 8
	return min(max(n, 8), 32)
}

type dumper struct {
	perLine   int
	offset    *color.Color
	zero      *color.Color
	printable *color.Color
	other     *color.Color
}

func newDumper(perLine int) *dumper {
	return &dumper{
		perLine:   perLine,
		offset:    color.New(color.FgBlue),
		zero:      color.New(color.FgHiBlack),
		printable: color.New(color.FgGreen),
		other:     color.New(color.FgYellow),
	}
}

func (d *dumper) colorOf(x byte) *color.Color {
	switch {
	case x == 0:
		return d.zero
	case x >= 0x20 && x < 0x7f:
		return d.printable
	}
	return d.other
}

// dump writes a hex dump of the first limit bytes of buf to w. A limit of 0
// dumps the whole buffer.
func (d *dumper) dump(w io.Writer, buf *bigbytes.Buffer, limit uint64) error {
	var r io.Reader = buf.Reader()
	if limit > 0 {
		r = io.LimitReader(r, int64(min(limit, buf.Len())))
	}
	line := make([]byte, d.perLine)
	var ascii strings.Builder
	var pos uint64
	for {
		n, err := io.ReadFull(r, line)
		if n > 0 {
			if _, werr := d.offset.Fprintf(w, "%08x  ", pos); werr != nil {
				return werr
			}
			ascii.Reset()
			for i := 0; i < d.perLine; i++ {
				if i > 0 && i%8 == 0 {
					io.WriteString(w, " ")
				}
				if i >= n {
					io.WriteString(w, "   ")
					continue
				}
				c := d.colorOf(line[i])
				c.Fprintf(w, "%02x ", line[i])
				if line[i] >= 0x20 && line[i] < 0x7f {
					ascii.WriteString(c.Sprint(string(rune(line[i]))))
				} else {
					ascii.WriteString(c.Sprint("."))
				}
			}
			if _, werr := io.WriteString(w, " |"+ascii.String()+"|\n"); werr != nil {
				return werr
			}
			pos += uint64(n)
		}
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

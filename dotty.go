package bigbytes

import (
	"fmt"
	"io"
	"strings"

	"github.com/npillmayer/bigbytes/chunk"
)

type nodeids struct {
	idTable map[any]int
	max     int
}

func newtable() nodeids {
	return nodeids{
		idTable: make(map[any]int),
		max:     1,
	}
}

func (ids nodeids) find(item any) int {
	return ids.idTable[item]
}

func (ids *nodeids) alloc(item any) int {
	if id := ids.find(item); id > 0 {
		return id
	}
	ids.idTable[item] = ids.max
	ids.max++
	return ids.max - 1
}

// Buffer2Dot outputs the internal structure of a Buffer in Graphviz DOT format
// (for debugging purposes).
func Buffer2Dot(b *Buffer, w io.Writer) error {
	var nodelist, edgelist strings.Builder
	ids := newtable()
	open := b.cursorNode()
	var walk func(n *node, pos uint64) uint64
	walk = func(n *node, pos uint64) uint64 {
		ID := ids.alloc(n)
		label := fmt.Sprintf("d=%d\\n%d/%d", n.dim, n.used, len(n.slots))
		fmt.Fprintf(&nodelist, "\"%d\" [label=\"%s\" %s];\n", ID, label, nodeDotStyles(n.full, false))
		for i, s := range n.slots {
			switch s.kind {
			case slotEmpty:
				if i == n.used && n == open {
					nilid := ID + 100000
					fmt.Fprintf(&nodelist, "\"%d\" %s;\n", nilid, emptyNode())
					fmt.Fprintf(&edgelist, "\"%d\" -> \"%d\" [style=dashed];\n", ID, nilid)
				}
			case slotLeaf:
				leafID := ids.alloc(s.leaf)
				label := fmt.Sprintf("%d @%d\\n%s", s.leaf.Len(), pos, leafPreview(s.leaf.AsChunk()))
				fmt.Fprintf(&nodelist, "\"%d\" [label=\"%s\" %s];\n", leafID, label,
					nodeDotStyles(s.leaf.IsFull(), true))
				fmt.Fprintf(&edgelist, "\"%d\" -> \"%d\";\n", ID, leafID)
				pos += uint64(s.leaf.Len())
			case slotBranch:
				fmt.Fprintf(&edgelist, "\"%d\" -> \"%d\";\n", ID, ids.alloc(s.branch))
				pos = walk(s.branch, pos)
			}
		}
		return pos
	}
	if _, err := io.WriteString(w, "strict digraph {\n\tnode [fontname=Arial,fontsize=12];\n"); err != nil {
		return err
	}
	walk(b.root, 0)
	if _, err := io.WriteString(w, nodelist.String()); err != nil {
		tracer().Errorf("buffer DOT: %s", err.Error())
		return err
	}
	if _, err := io.WriteString(w, edgelist.String()); err != nil {
		return err
	}
	_, err := io.WriteString(w, "}\n")
	return err
}

// cursorNode returns the node of dimension 1 on the cursor path, or nil if the
// cursor points to an unallocated subtree.
func (b *Buffer) cursorNode() *node {
	if b.root.full {
		return nil
	}
	cur := b.root
	for _, d := range b.cursor[:len(b.cursor)-1] {
		s := cur.slots[d]
		if s.kind != slotBranch {
			return nil
		}
		cur = s.branch
	}
	return cur
}

func leafPreview(c chunk.Chunk) string {
	const previewLen = 8
	n := min(c.Len(), previewLen)
	var sb strings.Builder
	for i := 0; i < n; i++ {
		x, _ := c.Get(i)
		fmt.Fprintf(&sb, "%02x", x)
	}
	if c.Len() > previewLen {
		sb.WriteString("…")
	}
	return sb.String()
}

func emptyNode() string {
	return "[label=\"\",color=black,shape=circle,fixedsize=true,width=.4]"
}

func nodeDotStyles(full bool, isleaf bool) string {
	s := ",style=filled"
	if isleaf {
		s += ",shape=box"
	} else {
		s += ",color=black,shape=circle"
	}
	if full {
		s += ",fillcolor=\"#AACCFF\"" // blue
	} else {
		s += ",fillcolor=\"#FFCCAA\"" // orange: still open for appends
	}
	return s
}

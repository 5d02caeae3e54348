package huffpack

import (
	"bytes"
	"fmt"
	"io"
	"sort"

	"github.com/chronos-tachyon/assert"
)

// Entry pairs a Symbol with the bit length of its code.  A list of Entries in
// canonical order is all that is needed to rebuild a canonical code.
type Entry struct {
	Symbol Symbol `json:"symbol"`
	Size   byte   `json:"size"`
}

// CodeTable maps each Symbol of an input to its Huffman code.  It is
// immutable once built.
type CodeTable struct {
	codes     [NumSymbols]Code
	entries   []Entry
	minSize   byte
	maxSize   byte
	canonical bool
}

// DeriveCodeTable walks the tree rooted at root and assigns each leaf the
// path that leads to it, "0" for every left branch and "1" for every right
// branch.  A tree consisting of a single leaf assigns that leaf the code "0".
//
// freq must be the table the tree was built from; it fixes the order of
// Entries among codes of equal length.
//
func DeriveCodeTable(root *Node, freq *FrequencyTable) (*CodeTable, error) {
	if root == nil {
		return nil, ErrEmptyInput
	}

	t := &CodeTable{}
	if root.IsLeaf() {
		t.codes[root.Symbol] = MakeCode(1, 0)
	} else if err := t.walk(root, Code{}); err != nil {
		return nil, err
	}

	t.entries = make([]Entry, 0, root.Leaves())
	var hasMinMax bool
	for _, symbol := range freq.Symbols() {
		hc := t.codes[symbol]
		assert.Assertf(hc.Size != 0, "symbol %d has no leaf in the tree", symbol)
		t.entries = append(t.entries, Entry{symbol, hc.Size})
		if !hasMinMax {
			hasMinMax = true
			t.minSize = hc.Size
			t.maxSize = hc.Size
		} else if t.minSize > hc.Size {
			t.minSize = hc.Size
		} else if t.maxSize < hc.Size {
			t.maxSize = hc.Size
		}
	}
	assert.Assertf(len(t.entries) == root.Leaves(), "tree has %d leaves, table has %d symbols", root.Leaves(), len(t.entries))

	// Stable sort keeps first-seen order among equal lengths.
	sort.Stable(byEntrySize(t.entries))
	return t, nil
}

func (t *CodeTable) walk(n *Node, path Code) error {
	if n.IsLeaf() {
		t.codes[n.Symbol] = path
		return nil
	}
	if path.Size >= maxBitsPerCode {
		return ErrCodeTooLong
	}
	if err := t.walk(n.Left, path.Append(false)); err != nil {
		return err
	}
	return t.walk(n.Right, path.Append(true))
}

// Canonical returns a CodeTable with the same code lengths, whose codes are
// reassigned in canonical order: shorter codes first, and among codes of
// equal length, in the order of Entries.
func (t *CodeTable) Canonical() *CodeTable {
	if t.canonical {
		return t
	}

	out := &CodeTable{
		entries:   make([]Entry, len(t.entries)),
		minSize:   t.minSize,
		maxSize:   t.maxSize,
		canonical: true,
	}
	copy(out.entries, t.entries)

	// Assign the codes sequentially, per the algorithm detailed at
	// <https://en.wikipedia.org/w/index.php?title=Canonical_Huffman_code&oldid=999983137>.

	lastSize := out.entries[0].Size
	nextCode := uint64(0)
	for _, item := range out.entries {
		if item.Size > lastSize {
			nextCode <<= (item.Size - lastSize)
			lastSize = item.Size
		}
		assert.Assertf(item.Size == maxBitsPerCode || nextCode < (uint64(1)<<item.Size), "canonical code %d overflows %d bits", nextCode, item.Size)
		out.codes[item.Symbol] = MakeCode(item.Size, nextCode)
		nextCode++
	}
	return out
}

// Lookup returns the code for symbol, if the symbol is in the table.
func (t *CodeTable) Lookup(symbol Symbol) (Code, bool) {
	if !symbol.IsValid() {
		return Code{}, false
	}
	hc := t.codes[symbol]
	return hc, hc.Size != 0
}

// Len returns the number of symbols in the table.
func (t *CodeTable) Len() int {
	return len(t.entries)
}

// MinSize is the bit length of the shortest code.
func (t *CodeTable) MinSize() byte {
	return t.minSize
}

// MaxSize is the bit length of the longest code.
func (t *CodeTable) MaxSize() byte {
	return t.maxSize
}

// IsCanonical returns true iff this table was produced by Canonical.
func (t *CodeTable) IsCanonical() bool {
	return t.canonical
}

// Entries returns the (Symbol, Size) pairs of this table, ordered by size
// and then by first appearance in the input.  This list can be transmitted
// to another party and used by Decoder to reconstruct the canonical code.
//
func (t *CodeTable) Entries() []Entry {
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// IsPrefixFree returns true iff no code in the table is a prefix of another.
func (t *CodeTable) IsPrefixFree() bool {
	for i, a := range t.entries {
		for j, b := range t.entries {
			if i != j && t.codes[b.Symbol].HasPrefix(t.codes[a.Symbol]) {
				return false
			}
		}
	}
	return true
}

// EncodedBits returns the number of bits needed to encode an input with the
// given frequencies.
func (t *CodeTable) EncodedBits(freq *FrequencyTable) uint64 {
	var sum uint64
	for _, item := range t.entries {
		sum += freq.Count(item.Symbol) * uint64(item.Size)
	}
	return sum
}

// Dump writes a programmer-readable debugging dump of the CodeTable's
// current state to the given writer.
func (t *CodeTable) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("CodeTable{\n")
	fmt.Fprintf(&buf, "\tMinSize() = %d\n", t.minSize)
	fmt.Fprintf(&buf, "\tMaxSize() = %d\n", t.maxSize)
	for symbol := Symbol(0); symbol <= MaxSymbol; symbol++ {
		if hc := t.codes[symbol]; hc.Size != 0 {
			fmt.Fprintf(&buf, "\tEncode(%d) = %s\n", symbol, hc)
		}
	}
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}

// type byEntrySize {{{

type byEntrySize []Entry

func (list byEntrySize) Len() int {
	return len(list)
}

func (list byEntrySize) Swap(i, j int) {
	list[i], list[j] = list[j], list[i]
}

func (list byEntrySize) Less(i, j int) bool {
	return list[i].Size < list[j].Size
}

var _ sort.Interface = byEntrySize(nil)

// }}}

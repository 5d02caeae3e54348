package huffpack

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
)

// Decoder implements a decoder for canonical Huffman codes.
type Decoder struct {
	table   map[Code]decoderData
	entries []Entry
	minSize byte
	maxSize byte
}

// NewDecoder is a convenience function that allocates and initializes a
// Decoder.
func NewDecoder(entries []Entry) (*Decoder, error) {
	d := &Decoder{}
	if err := d.Init(entries); err != nil {
		return nil, err
	}
	return d, nil
}

// Init initializes this Decoder.  The argument lists zero or more (Symbol,
// Size) pairs in canonical order, as returned by CodeTable.Entries: sizes
// never decrease, and codes of equal size are numbered in list order.
//
// Not all inputs are valid for constructing a canonical Huffman code.  In
// particular, this method rejects repeated or out-of-range symbols, sizes of
// 0 or above 64 bits, and "degenerate" codes that leave some bit sequences
// unassigned or assign more codes than fit.  Degenerate codes consisting of 0
// symbols, or of 1 symbol with a 1-bit code, are permitted, as there is no
// way to construct a non-degenerate Huffman code for such cases.
//
func (d *Decoder) Init(entries []Entry) error {
	numEntries := uint32(len(entries))

	var countArray [maxBitsPerCode + 1]uint32
	var seen [NumSymbols]bool
	var minSize, maxSize byte
	for index, item := range entries {
		if !item.Symbol.IsValid() {
			return fmt.Errorf("invalid symbol while constructing Huffman code: got %d, max %d", item.Symbol, MaxSymbol)
		}
		if seen[item.Symbol] {
			return fmt.Errorf("duplicate symbol while constructing Huffman code: %d", item.Symbol)
		}
		seen[item.Symbol] = true

		if item.Size == 0 || item.Size > maxBitsPerCode {
			return fmt.Errorf("invalid bit length while constructing Huffman code: got %d, max %d", item.Size, maxBitsPerCode)
		}

		if index == 0 {
			minSize = item.Size
		} else if item.Size < maxSize {
			return fmt.Errorf("bit lengths out of order while constructing Huffman code: %d after %d", item.Size, maxSize)
		}
		maxSize = item.Size
		countArray[item.Size]++
	}

	// permit degenerate code with 0 symbols
	if numEntries == 0 {
		*d = Decoder{}
		return nil
	}

	// Track how many codes are still unassigned at each depth.  A complete
	// code leaves none over at maxSize.  avail never exceeds the number of
	// entries still to place, so the shift cannot overflow.
	avail := uint64(1)
	remaining := uint64(numEntries)
	for bits := byte(1); bits <= maxSize; bits++ {
		avail <<= 1
		count := uint64(countArray[bits])
		if count > avail {
			return fmt.Errorf("over-subscribed Huffman code: %d codes of %d bits, room for %d", count, bits, avail)
		}
		avail -= count
		remaining -= count
		if avail > remaining {
			break
		}
	}

	// permit degenerate code with 1 symbol
	// forbid all other degenerate codes
	if numEntries == 1 && maxSize == 1 {
		// pass
	} else if avail != 0 || remaining != 0 {
		return fmt.Errorf("degenerate Huffman code: %d bit sequences unassigned", avail)
	}

	var nextCodeArray [maxBitsPerCode + 1]uint64
	var code uint64
	for bits := minSize; bits <= maxSize; bits++ {
		code = (code + uint64(countArray[bits-1])) << 1
		nextCodeArray[bits] = code
		if bits == maxSize {
			break
		}
	}

	// len(table) is approximately n×log2(n) when filled.
	numTableSlots := numEntries * log2uint32(numEntries)

	*d = Decoder{
		table:   make(map[Code]decoderData, numTableSlots),
		entries: make([]Entry, numEntries),
		minSize: minSize,
		maxSize: maxSize,
	}

	copy(d.entries, entries)

	for _, item := range entries {
		code := nextCodeArray[item.Size]
		nextCodeArray[item.Size]++
		fillTable(d.table, item.Symbol, MakeCode(item.Size, code))
	}

	return nil
}

// Decode attempts to decode a Huffman code into a Symbol.
//
// If the Decode is completely successful, symbol >= 0 and minSize == maxSize.
//
// If the Decode fails due to insufficient bits, symbol == InvalidSymbol and at
// least (minSize - hc.Size) additional bits are required to decode this
// symbol.  No more than (maxSize - hc.Size) additional bits will be required.
//
// If the Decode fails due to unreasonable input, symbol == InvalidSymbol and
// minSize == maxSize == 0.
//
func (d *Decoder) Decode(hc Code) (symbol Symbol, minSize byte, maxSize byte) {
	dd, found := d.table[hc]
	if !found {
		return InvalidSymbol, 0, 0
	}
	return dd.symbol, dd.minSize, dd.maxSize
}

// Len returns the number of symbols in the code.
func (d *Decoder) Len() int {
	return len(d.entries)
}

// MinSize is the bit length of the shortest legal code.
func (d *Decoder) MinSize() byte {
	return d.minSize
}

// MaxSize is the bit length of the longest legal code.
func (d *Decoder) MaxSize() byte {
	return d.maxSize
}

// Entries returns a copy of the entry list used to initialize this Decoder.
func (d *Decoder) Entries() []Entry {
	out := make([]Entry, len(d.entries))
	copy(out, d.entries)
	return out
}

// String returns a brief human-readable description of the Decoder.
func (d *Decoder) String() string {
	return fmt.Sprintf("(Huffman decoder with %d symbols, with coded lengths of %d .. %d bits)", len(d.entries), d.minSize, d.maxSize)
}

// GoString returns a Go expression that would reconstruct this Decoder.
func (d *Decoder) GoString() string {
	var buf strings.Builder
	buf.WriteString("NewDecoder([]Entry{")
	for index, item := range d.entries {
		if index > 0 {
			buf.WriteByte(',')
		}
		fmt.Fprintf(&buf, "{%d,%d}", item.Symbol, item.Size)
	}
	buf.WriteString("})")
	return buf.String()
}

// DebugString returns the output of Dump as a string.
func (d *Decoder) DebugString() string {
	var buf strings.Builder
	_, _ = d.Dump(&buf)
	return buf.String()
}

// Dump writes a programmer-readable debugging dump of the Decoder's current
// state to the given writer.
func (d *Decoder) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("Decoder{\n")
	fmt.Fprintf(&buf, "\tMinSize() = %d\n", d.minSize)
	fmt.Fprintf(&buf, "\tMaxSize() = %d\n", d.maxSize)
	keys := make(byCode, 0, len(d.table))
	for hc := range d.table {
		keys = append(keys, hc)
	}
	keys.Sort()
	for _, hc := range keys {
		dd := d.table[hc]
		fmt.Fprintf(&buf, "\tDecode(%s) = {%d, %d, %d}\n", hc, dd.symbol, dd.minSize, dd.maxSize)
	}
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}

// MarshalJSON encodes the Decoder as its entry list.
func (d *Decoder) MarshalJSON() ([]byte, error) {
	entries := d.entries
	if entries == nil {
		entries = []Entry{}
	}
	return json.Marshal(entries)
}

// UnmarshalJSON decodes an entry list and initializes the Decoder from it.
func (d *Decoder) UnmarshalJSON(raw []byte) error {
	var entries []Entry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return err
	}
	return d.Init(entries)
}

var (
	_ fmt.Stringer     = (*Decoder)(nil)
	_ fmt.GoStringer   = (*Decoder)(nil)
	_ json.Marshaler   = (*Decoder)(nil)
	_ json.Unmarshaler = (*Decoder)(nil)
)

type decoderData struct {
	symbol  Symbol
	minSize byte
	maxSize byte
}

func fillTable(table map[Code]decoderData, symbol Symbol, hc Code) {
	dd := decoderData{symbol, hc.Size, hc.Size}
	table[hc] = dd

	for hc.Size != 0 {
		// For each hc "xxx...a", compute "xxx...A" where A = NOT a.

		hc.Bits ^= 1

		// Merge the dd's from "xxx...a" (dd) and "xxx...A" (ddSibling)
		// into ddNew (the new parent for dd and ddSibling).

		ddNew := decoderData{InvalidSymbol, dd.minSize, dd.maxSize}
		if ddSibling, found := table[hc]; found {
			if ddNew.minSize > ddSibling.minSize {
				ddNew.minSize = ddSibling.minSize
			}
			if ddNew.maxSize < ddSibling.maxSize {
				ddNew.maxSize = ddSibling.maxSize
			}
		}

		// Mutate hc from "xxx...A" to "xxx...".

		hc.Size--
		hc.Bits >>= 1

		// If table[hc] already equals ddNew, we can stop recursing.

		if ddOld, found := table[hc]; found && ddOld == ddNew {
			break
		}

		// Update table[hc] with ddNew and continue recursing.

		table[hc] = ddNew
		dd = ddNew
	}
}

// type byCode {{{

type byCode []Code

func (list byCode) Sort() {
	sort.Sort(list)
}

func (list byCode) Len() int {
	return len(list)
}

func (list byCode) Swap(i, j int) {
	list[i], list[j] = list[j], list[i]
}

func (list byCode) Less(i, j int) bool {
	a, b := list[i], list[j]
	as, ab := a.Size, a.Bits
	bs, bb := b.Size, b.Bits
	if as != bs {
		return as < bs
	}
	return ab < bb
}

var _ sort.Interface = byCode(nil)

// }}}

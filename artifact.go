package huffpack

import (
	"bytes"
	"encoding"
	"encoding/binary"
	"io"
	mathbits "math/bits"
)

// Artifact is the self-contained result of compression: the canonical code
// table, the number of encoded symbols, the true number of code bits, and the
// packed code bits themselves.
//
// The serialized layout is:
//
//     magic      4 bytes  "HUFP"
//     version    1 byte   0x01
//     entries    1 byte   number of table entries, minus one
//     table      entries × {symbol u8, size u8}, in canonical order
//     count      uvarint  number of encoded symbols
//     bitLength  uvarint  number of code bits in payload
//     payload    ceil(bitLength / 8) bytes, padding bits zero
//
type Artifact struct {
	Entries     []Entry
	SymbolCount uint64
	BitLength   uint64
	Payload     []byte

	decoder *Decoder
}

const (
	artifactMagic   = "HUFP"
	artifactVersion = 0x01
	headerSize      = len(artifactMagic) + 2
)

// EncodeArtifact serializes a canonical code table together with a packed
// payload into artifact bytes.
func EncodeArtifact(table *CodeTable, symbolCount uint64, bitLength uint64, payload []byte) ([]byte, error) {
	if !table.IsCanonical() {
		return nil, malformedf("code table is not canonical")
	}
	a := &Artifact{
		Entries:     table.Entries(),
		SymbolCount: symbolCount,
		BitLength:   bitLength,
		Payload:     payload,
	}
	return a.MarshalBinary()
}

// DecodeArtifact parses and validates artifact bytes.  Any structural or
// size inconsistency yields a *MalformedArtifactError.
func DecodeArtifact(data []byte) (*Artifact, error) {
	a := &Artifact{}
	if err := a.UnmarshalBinary(data); err != nil {
		return nil, err
	}
	return a, nil
}

// Decoder returns a Decoder for the artifact's code table.
func (a *Artifact) Decoder() (*Decoder, error) {
	if a.decoder == nil {
		d, err := NewDecoder(a.Entries)
		if err != nil {
			return nil, malformedf("invalid code table: %v", err)
		}
		a.decoder = d
	}
	return a.decoder, nil
}

// MarshalBinary fulfills encoding.BinaryMarshaler.
func (a *Artifact) MarshalBinary() ([]byte, error) {
	if err := a.validate(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.Grow(headerSize + 2*len(a.Entries) + 2*binary.MaxVarintLen64 + len(a.Payload))
	buf.WriteString(artifactMagic)
	buf.WriteByte(artifactVersion)
	buf.WriteByte(byte(len(a.Entries) - 1))
	for _, item := range a.Entries {
		buf.WriteByte(byte(item.Symbol))
		buf.WriteByte(item.Size)
	}

	var scratch [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(scratch[:], a.SymbolCount)
	buf.Write(scratch[:n])
	n = binary.PutUvarint(scratch[:], a.BitLength)
	buf.Write(scratch[:n])

	buf.Write(a.Payload)
	return buf.Bytes(), nil
}

// UnmarshalBinary fulfills encoding.BinaryUnmarshaler.
func (a *Artifact) UnmarshalBinary(data []byte) error {
	if len(data) < headerSize {
		return malformedf("short header: %d bytes", len(data))
	}
	if string(data[:len(artifactMagic)]) != artifactMagic {
		return malformedf("bad magic %q", data[:len(artifactMagic)])
	}
	if v := data[len(artifactMagic)]; v != artifactVersion {
		return malformedf("unsupported version %d", v)
	}
	numEntries := int(data[len(artifactMagic)+1]) + 1
	data = data[headerSize:]

	if len(data) < 2*numEntries {
		return malformedf("truncated code table: want %d entries, have %d bytes", numEntries, len(data))
	}
	entries := make([]Entry, numEntries)
	for i := range entries {
		entries[i] = Entry{Symbol: Symbol(data[2*i]), Size: data[2*i+1]}
	}
	data = data[2*numEntries:]

	symbolCount, n := binary.Uvarint(data)
	if n <= 0 {
		return malformedf("truncated symbol count")
	}
	data = data[n:]

	bitLength, n := binary.Uvarint(data)
	if n <= 0 {
		return malformedf("truncated bit length")
	}
	data = data[n:]

	payload := make([]byte, len(data))
	copy(payload, data)

	*a = Artifact{
		Entries:     entries,
		SymbolCount: symbolCount,
		BitLength:   bitLength,
		Payload:     payload,
	}
	if err := a.validate(); err != nil {
		*a = Artifact{}
		return err
	}
	return nil
}

// WriteTo writes the serialized artifact to w.
func (a *Artifact) WriteTo(w io.Writer) (int64, error) {
	data, err := a.MarshalBinary()
	if err != nil {
		return 0, err
	}
	n, err := w.Write(data)
	return int64(n), err
}

// ReadFrom reads r until EOF and parses the result as one artifact.
func (a *Artifact) ReadFrom(r io.Reader) (int64, error) {
	data, err := io.ReadAll(r)
	n := int64(len(data))
	if err != nil {
		return n, err
	}
	return n, a.UnmarshalBinary(data)
}

func (a *Artifact) validate() error {
	if len(a.Entries) == 0 || len(a.Entries) > NumSymbols {
		return malformedf("code table has %d entries, want 1 .. %d", len(a.Entries), NumSymbols)
	}
	d, err := a.Decoder()
	if err != nil {
		return err
	}

	if a.SymbolCount == 0 {
		return malformedf("symbol count is zero")
	}

	hi, lo := mathbits.Mul64(a.SymbolCount, uint64(d.MinSize()))
	if hi != 0 || a.BitLength < lo {
		return malformedf("bit length %d too short for %d symbols of at least %d bits", a.BitLength, a.SymbolCount, d.MinSize())
	}
	hi, lo = mathbits.Mul64(a.SymbolCount, uint64(d.MaxSize()))
	if hi == 0 && a.BitLength > lo {
		return malformedf("bit length %d too long for %d symbols of at most %d bits", a.BitLength, a.SymbolCount, d.MaxSize())
	}

	if want := bytesForBits(a.BitLength); uint64(len(a.Payload)) != want {
		return malformedf("payload is %d bytes, bit length %d needs %d", len(a.Payload), a.BitLength, want)
	}

	if pad := a.BitLength % 8; pad != 0 {
		last := a.Payload[len(a.Payload)-1]
		if last&(0xff>>pad) != 0 {
			return malformedf("non-zero padding bits")
		}
	}
	return nil
}

var (
	_ encoding.BinaryMarshaler   = (*Artifact)(nil)
	_ encoding.BinaryUnmarshaler = (*Artifact)(nil)
	_ io.WriterTo                = (*Artifact)(nil)
	_ io.ReaderFrom              = (*Artifact)(nil)
)

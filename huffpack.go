package huffpack

import (
	"fmt"
)

// Compress encodes input into a self-contained artifact.  It fails with
// ErrEmptyInput if input is empty.
//
// Compressing the same input twice yields byte-identical artifacts.
//
func Compress(input []byte) ([]byte, error) {
	table, _, err := BuildCodeTable(input)
	if err != nil {
		return nil, err
	}
	payload, bitLength, err := Pack(input, table)
	if err != nil {
		return nil, err
	}
	return EncodeArtifact(table, uint64(len(input)), bitLength, payload)
}

// Decompress reverses Compress.  It depends on nothing but the artifact
// bytes: it fails with a *MalformedArtifactError if they cannot be parsed,
// and with a *CorruptDataError if the payload does not decode to exactly the
// declared number of symbols.  No partial output is returned on error.
//
func Decompress(data []byte) ([]byte, error) {
	a, err := DecodeArtifact(data)
	if err != nil {
		return nil, err
	}
	d, err := a.Decoder()
	if err != nil {
		return nil, err
	}
	out, err := Unpack(a.Payload, a.BitLength, d)
	if err != nil {
		return nil, err
	}
	if uint64(len(out)) != a.SymbolCount {
		return nil, &CorruptDataError{
			Offset: a.BitLength,
			Reason: fmt.Sprintf("decoded %d symbols, artifact declares %d", len(out), a.SymbolCount),
		}
	}
	return out, nil
}

// BuildCodeTable runs frequency analysis, tree construction, and code
// derivation over input, returning the canonical code table along with the
// frequencies it was built from.
func BuildCodeTable(input []byte) (*CodeTable, *FrequencyTable, error) {
	if len(input) == 0 {
		return nil, nil, ErrEmptyInput
	}
	freq := BuildFrequencyTable(input)
	root, err := BuildTree(freq)
	if err != nil {
		return nil, nil, err
	}
	table, err := DeriveCodeTable(root, freq)
	if err != nil {
		return nil, nil, err
	}
	return table.Canonical(), freq, nil
}

// Stats summarizes how well an input compresses.
type Stats struct {
	InputBytes    uint64
	Symbols       int
	MinCodeSize   byte
	MaxCodeSize   byte
	PayloadBits   uint64
	ArtifactBytes uint64
}

// Ratio returns ArtifactBytes / InputBytes.
func (s Stats) Ratio() float64 {
	if s.InputBytes == 0 {
		return 0
	}
	return float64(s.ArtifactBytes) / float64(s.InputBytes)
}

// String returns a one-line human-readable summary.
func (s Stats) String() string {
	return fmt.Sprintf("%d bytes -> %d bytes (%.1f%%), %d symbols, codes of %d .. %d bits, %d payload bits",
		s.InputBytes, s.ArtifactBytes, 100*s.Ratio(), s.Symbols, s.MinCodeSize, s.MaxCodeSize, s.PayloadBits)
}

// ComputeStats compresses input and reports the sizes involved.
func ComputeStats(input []byte) (Stats, error) {
	table, freq, err := BuildCodeTable(input)
	if err != nil {
		return Stats{}, err
	}
	data, err := Compress(input)
	if err != nil {
		return Stats{}, err
	}
	return Stats{
		InputBytes:    uint64(len(input)),
		Symbols:       table.Len(),
		MinCodeSize:   table.MinSize(),
		MaxCodeSize:   table.MaxSize(),
		PayloadBits:   table.EncodedBits(freq),
		ArtifactBytes: uint64(len(data)),
	}, nil
}

var _ fmt.Stringer = Stats{}

package huffpack

import (
	"bytes"
	"fmt"

	"github.com/chronos-tachyon/assert"
	"github.com/icza/bitio"
)

// Pack concatenates the code of every byte of input, in input order, into a
// byte-aligned payload.  The final byte is padded with zero bits; bitLength
// reports the true number of code bits so that Unpack can stop before the
// padding.
func Pack(input []byte, table *CodeTable) (payload []byte, bitLength uint64, err error) {
	var buf bytes.Buffer
	buf.Grow(len(input))

	w := bitio.NewWriter(&buf)
	for index, b := range input {
		hc, found := table.Lookup(Symbol(b))
		if !found {
			return nil, 0, fmt.Errorf("huffpack: byte %d at offset %d has no code", b, index)
		}
		if err := w.WriteBits(hc.Bits, hc.Size); err != nil {
			return nil, 0, err
		}
		bitLength += uint64(hc.Size)
	}
	if err := w.Close(); err != nil {
		return nil, 0, err
	}

	payload = buf.Bytes()
	assert.Assertf(uint64(len(payload)) == bytesForBits(bitLength), "packed %d bits into %d bytes", bitLength, len(payload))
	return payload, bitLength, nil
}

// Unpack decodes exactly bitLength bits of payload with d, emitting one byte
// per code.  Bits past bitLength are ignored.
//
// Unpack fails with a *CorruptDataError if bitLength exceeds the payload, if
// a bit sequence matches no code, or if the last code is cut short by
// bitLength.
//
func Unpack(payload []byte, bitLength uint64, d *Decoder) ([]byte, error) {
	if bytesForBits(bitLength) > uint64(len(payload)) {
		return nil, &CorruptDataError{
			Offset: uint64(len(payload)) * 8,
			Reason: fmt.Sprintf("bit length %d exceeds %d payload bytes", bitLength, len(payload)),
		}
	}

	var out []byte
	if d.MinSize() != 0 {
		out = make([]byte, 0, bitLength/uint64(d.MinSize()))
	}

	r := bitio.NewReader(bytes.NewReader(payload))
	var offset uint64
	var hc Code
	var start uint64
	for offset < bitLength || hc.Size != 0 {
		symbol, minSize, _ := d.Decode(hc)
		if symbol >= 0 {
			out = append(out, byte(symbol))
			hc = Code{}
			start = offset
			continue
		}
		if minSize == 0 {
			return nil, &CorruptDataError{
				Offset: start,
				Reason: fmt.Sprintf("bit sequence %s matches no code", hc),
			}
		}

		need := uint64(minSize - hc.Size)
		if need > bitLength-offset {
			return nil, &CorruptDataError{
				Offset: start,
				Reason: fmt.Sprintf("partial code %s at end of data", hc),
			}
		}

		bits, err := r.ReadBits(uint8(need))
		if err != nil {
			return nil, &CorruptDataError{Offset: offset, Reason: err.Error()}
		}
		hc.Bits = (hc.Bits << need) | bits
		hc.Size += byte(need)
		offset += need
	}
	return out, nil
}

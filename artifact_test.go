package huffpack

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

var scenarioArtifact = []byte{
	'H', 'U', 'F', 'P', 0x01, 0x02,
	'a', 1, 'b', 2, 'c', 2,
	0x06, 0x09,
	0x15, 0x80,
}

func TestEncodeArtifact(t *testing.T) {
	table, _, err := BuildCodeTable([]byte("aaabbc"))
	require.NoError(t, err)

	data, err := EncodeArtifact(table, 6, 9, []byte{0x15, 0x80})
	require.NoError(t, err)
	require.Equal(t, scenarioArtifact, data)
}

func TestEncodeArtifact_NotCanonical(t *testing.T) {
	freq := BuildFrequencyTable([]byte("aaabbc"))
	root, err := BuildTree(freq)
	require.NoError(t, err)
	table, err := DeriveCodeTable(root, freq)
	require.NoError(t, err)

	_, err = EncodeArtifact(table, 6, 9, []byte{0x15, 0x80})
	require.True(t, errors.Is(err, ErrMalformedArtifact))
}

func TestDecodeArtifact(t *testing.T) {
	a, err := DecodeArtifact(scenarioArtifact)
	require.NoError(t, err)
	require.Equal(t, []Entry{{'a', 1}, {'b', 2}, {'c', 2}}, a.Entries)
	require.Equal(t, uint64(6), a.SymbolCount)
	require.Equal(t, uint64(9), a.BitLength)
	require.Equal(t, []byte{0x15, 0x80}, a.Payload)

	d, err := a.Decoder()
	require.NoError(t, err)
	require.Equal(t, 3, d.Len())
}

func TestArtifact_WriteToReadFrom(t *testing.T) {
	a, err := DecodeArtifact(scenarioArtifact)
	require.NoError(t, err)

	var buf bytes.Buffer
	n, err := a.WriteTo(&buf)
	require.NoError(t, err)
	require.Equal(t, int64(len(scenarioArtifact)), n)
	require.Equal(t, scenarioArtifact, buf.Bytes())

	var b Artifact
	n, err = b.ReadFrom(&buf)
	require.NoError(t, err)
	require.Equal(t, int64(len(scenarioArtifact)), n)
	require.Equal(t, a.Entries, b.Entries)
	require.Equal(t, a.Payload, b.Payload)
}

func TestDecodeArtifact_Malformed(t *testing.T) {
	with := func(edit func([]byte) []byte) []byte {
		data := make([]byte, len(scenarioArtifact))
		copy(data, scenarioArtifact)
		return edit(data)
	}

	type testRow struct {
		name string
		data []byte
	}

	testData := [...]testRow{
		{"empty", nil},
		{"short-header", []byte("HUF")},
		{"bad-magic", with(func(b []byte) []byte { b[0] = 'X'; return b })},
		{"bad-version", with(func(b []byte) []byte { b[4] = 2; return b })},
		{"truncated-table", scenarioArtifact[:9]},
		{"duplicate-symbol", with(func(b []byte) []byte { b[8] = 'a'; return b })},
		{"incomplete-code", with(func(b []byte) []byte { b[11] = 3; return b })},
		{"missing-count", scenarioArtifact[:12]},
		{"missing-bit-length", scenarioArtifact[:13]},
		{"zero-count", with(func(b []byte) []byte { b[12] = 0; return b })},
		{"bit-length-too-short", with(func(b []byte) []byte { b[12] = 10; return b })},
		{"bit-length-too-long", with(func(b []byte) []byte { b[12] = 2; return b })},
		{"truncated-payload", scenarioArtifact[:len(scenarioArtifact)-1]},
		{"extra-payload", append(with(func(b []byte) []byte { return b }), 0x00)},
		{"nonzero-padding", with(func(b []byte) []byte { b[15] = 0x81; return b })},
	}
	for _, row := range testData {
		t.Run(row.name, func(t *testing.T) {
			a, err := DecodeArtifact(row.data)
			require.Nil(t, a)
			require.True(t, errors.Is(err, ErrMalformedArtifact), "expected ErrMalformedArtifact, got %v", err)

			var mae *MalformedArtifactError
			require.True(t, errors.As(err, &mae))
			require.NotEmpty(t, mae.Reason)
		})
	}
}

package huffpack

import (
	"math/rand"
	"reflect"
	"strings"
	"testing"
)

func makeTestFrequencies(counts []uint64) *FrequencyTable {
	freq := &FrequencyTable{}
	for symbol, count := range counts {
		for i := uint64(0); i < count; i++ {
			freq.Add(Symbol(symbol))
		}
	}
	return freq
}

func makeTestCodeTable(t *testing.T, freq *FrequencyTable) *CodeTable {
	t.Helper()
	root, err := BuildTree(freq)
	if err != nil {
		t.Fatalf("BuildTree failed: %v", err)
	}
	table, err := DeriveCodeTable(root, freq)
	if err != nil {
		t.Fatalf("DeriveCodeTable failed: %v", err)
	}
	return table
}

func dumpString(table *CodeTable) string {
	var buf strings.Builder
	_, _ = table.Dump(&buf)
	return buf.String()
}

func TestCodeTable(t *testing.T) {
	freq := makeTestFrequencies([]uint64{5, 9, 12, 13, 16, 45})
	table := makeTestCodeTable(t, freq)

	expectDump := strings.Join([]string{
		"CodeTable{\n",
		"\tMinSize() = 1\n",
		"\tMaxSize() = 4\n",
		"\tEncode(0) = \"1100\"\n",
		"\tEncode(1) = \"1101\"\n",
		"\tEncode(2) = \"100\"\n",
		"\tEncode(3) = \"101\"\n",
		"\tEncode(4) = \"111\"\n",
		"\tEncode(5) = \"0\"\n",
		"}\n",
	}, "")
	if actualDump := dumpString(table); expectDump != actualDump {
		t.Errorf("wrong output:\n\texpect: %s\n\tactual: %s", expectDump, actualDump)
	}

	expectEntries := []Entry{{5, 1}, {2, 3}, {3, 3}, {4, 3}, {0, 4}, {1, 4}}
	if actualEntries := table.Entries(); !reflect.DeepEqual(expectEntries, actualEntries) {
		t.Errorf("wrong entries:\n\texpect: %#v\n\tactual: %#v", expectEntries, actualEntries)
	}

	if bits := table.EncodedBits(freq); bits != 224 {
		t.Errorf("expected 224 encoded bits, got %d", bits)
	}
}

func TestCodeTable_Canonical(t *testing.T) {
	freq := makeTestFrequencies([]uint64{5, 9, 12, 13, 16, 45})
	table := makeTestCodeTable(t, freq).Canonical()

	expectDump := strings.Join([]string{
		"CodeTable{\n",
		"\tMinSize() = 1\n",
		"\tMaxSize() = 4\n",
		"\tEncode(0) = \"1110\"\n",
		"\tEncode(1) = \"1111\"\n",
		"\tEncode(2) = \"100\"\n",
		"\tEncode(3) = \"101\"\n",
		"\tEncode(4) = \"110\"\n",
		"\tEncode(5) = \"0\"\n",
		"}\n",
	}, "")
	if actualDump := dumpString(table); expectDump != actualDump {
		t.Errorf("wrong output:\n\texpect: %s\n\tactual: %s", expectDump, actualDump)
	}

	if !table.IsCanonical() {
		t.Error("expected IsCanonical")
	}
	if table.Canonical() != table {
		t.Error("Canonical of a canonical table should return the same table")
	}

	// The decoder rebuilds exactly these codes from the entry list.
	d, err := NewDecoder(table.Entries())
	if err != nil {
		t.Fatalf("NewDecoder failed: %v", err)
	}
	for _, item := range table.Entries() {
		hc, _ := table.Lookup(item.Symbol)
		if sym, _, _ := d.Decode(hc); sym != item.Symbol {
			t.Errorf("Decode(%s) = %d, expected %d", hc, sym, item.Symbol)
		}
	}
}

func TestCodeTable_Scenario(t *testing.T) {
	freq := BuildFrequencyTable([]byte("aaabbc"))
	tree := makeTestCodeTable(t, freq)

	expectTree := map[Symbol]string{'a': "\"0\"", 'b': "\"11\"", 'c': "\"10\""}
	expectCanonical := map[Symbol]string{'a': "\"0\"", 'b': "\"10\"", 'c': "\"11\""}
	canonical := tree.Canonical()
	for symbol, expect := range expectTree {
		hc, found := tree.Lookup(symbol)
		if !found || hc.String() != expect {
			t.Errorf("tree code for %q: expected %s, got %s", rune(symbol), expect, hc)
		}
	}
	for symbol, expect := range expectCanonical {
		hc, found := canonical.Lookup(symbol)
		if !found || hc.String() != expect {
			t.Errorf("canonical code for %q: expected %s, got %s", rune(symbol), expect, hc)
		}
	}
	if _, found := canonical.Lookup('d'); found {
		t.Error("unexpected code for 'd'")
	}
}

func TestCodeTable_SingleSymbol(t *testing.T) {
	freq := BuildFrequencyTable([]byte("zzzzz"))
	table := makeTestCodeTable(t, freq)

	hc, found := table.Lookup('z')
	if !found || hc != MakeCode(1, 0) {
		t.Errorf("expected code \"0\", got %s", hc)
	}
	if table.MinSize() != 1 || table.MaxSize() != 1 {
		t.Errorf("expected sizes 1 .. 1, got %d .. %d", table.MinSize(), table.MaxSize())
	}
	if bits := table.EncodedBits(freq); bits != 5 {
		t.Errorf("expected 5 encoded bits, got %d", bits)
	}
}

func TestCodeTable_PrefixFree(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for round := 0; round < 50; round++ {
		counts := make([]uint64, 1+rng.Intn(NumSymbols))
		for i := range counts {
			counts[i] = uint64(rng.Intn(100))
		}
		counts[0]++
		freq := makeTestFrequencies(counts)
		table := makeTestCodeTable(t, freq)
		if !table.IsPrefixFree() {
			t.Errorf("round %d: tree codes are not prefix-free", round)
		}
		if !table.Canonical().IsPrefixFree() {
			t.Errorf("round %d: canonical codes are not prefix-free", round)
		}
	}
}

func TestCodeTable_Fibonacci(t *testing.T) {
	// Fibonacci weights produce the deepest possible tree.
	counts := make([]uint64, 20)
	counts[0], counts[1] = 1, 1
	for i := 2; i < len(counts); i++ {
		counts[i] = counts[i-1] + counts[i-2]
	}
	freq := makeTestFrequencies(counts)
	table := makeTestCodeTable(t, freq)
	if table.MaxSize() != 19 {
		t.Errorf("expected max size 19, got %d", table.MaxSize())
	}
	if table.MinSize() != 1 {
		t.Errorf("expected min size 1, got %d", table.MinSize())
	}
	if !table.Canonical().IsPrefixFree() {
		t.Error("canonical codes are not prefix-free")
	}
}

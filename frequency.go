package huffpack

import (
	"github.com/chronos-tachyon/assert"
)

// FrequencyTable counts the occurrences of each distinct Symbol in an input.
// The zero value is an empty table.
type FrequencyTable struct {
	counts [NumSymbols]uint64
	rank   [NumSymbols]int16
	order  []Symbol
	total  uint64
}

// BuildFrequencyTable counts the bytes of input in a single pass.
func BuildFrequencyTable(input []byte) *FrequencyTable {
	freq := &FrequencyTable{}
	for _, b := range input {
		freq.Add(Symbol(b))
	}
	return freq
}

// Add records one more occurrence of symbol.
func (freq *FrequencyTable) Add(symbol Symbol) {
	assert.Assertf(symbol.IsValid(), "symbol %d out of range", symbol)
	if freq.counts[symbol] == 0 {
		freq.rank[symbol] = int16(len(freq.order))
		freq.order = append(freq.order, symbol)
	}
	freq.counts[symbol]++
	freq.total++
}

// Count returns the number of occurrences of symbol.
func (freq *FrequencyTable) Count(symbol Symbol) uint64 {
	if !symbol.IsValid() {
		return 0
	}
	return freq.counts[symbol]
}

// Rank returns the position of symbol in first-seen order, or -1 if the
// symbol never occurred.
func (freq *FrequencyTable) Rank(symbol Symbol) int {
	if freq.Count(symbol) == 0 {
		return -1
	}
	return int(freq.rank[symbol])
}

// Len returns the number of distinct symbols.
func (freq *FrequencyTable) Len() int {
	return len(freq.order)
}

// Total returns the sum of all counts, which equals the input length.
func (freq *FrequencyTable) Total() uint64 {
	return freq.total
}

// Symbols returns the distinct symbols in first-seen order.
func (freq *FrequencyTable) Symbols() []Symbol {
	out := make([]Symbol, len(freq.order))
	copy(out, freq.order)
	return out
}

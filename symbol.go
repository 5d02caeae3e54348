package huffpack

// Symbol represents one unit of input.  Valid symbols are the byte values
// 0 .. MaxSymbol; negative symbols are not valid.
type Symbol int32

// NumSymbols is the size of the alphabet.
const NumSymbols = 256

// MaxSymbol is the maximum valid symbol.
const MaxSymbol = Symbol(NumSymbols - 1)

// InvalidSymbol is returned by some functions to clearly indicate that no
// symbol is being returned.
const InvalidSymbol = Symbol(-1)

// IsValid returns true iff this Symbol is within the alphabet.
func (symbol Symbol) IsValid() bool {
	return symbol >= 0 && symbol <= MaxSymbol
}

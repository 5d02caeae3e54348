// Package huffpack implements a self-contained Huffman compressor.
//
// Compress counts the bytes of its input, builds a Huffman tree with a fixed
// tie-break, derives a canonical prefix code from it, packs the codes into a
// bit stream, and wraps everything into an artifact that carries its own code
// table.  Decompress needs nothing but those artifact bytes.
//
// Symbols are bytes.  Text is compressed as its UTF-8 encoding.
//
// References:
//
//     <https://en.wikipedia.org/wiki/Huffman_coding>
//
//     <https://en.wikipedia.org/wiki/Canonical_Huffman_code>
//
package huffpack

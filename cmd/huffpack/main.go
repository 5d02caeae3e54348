// Command huffpack compresses or decompresses one file with huffpack.
//
//     huffpack [-c | -d] [-o output] [-p] [-s] [input]
//
// Input defaults to stdin and output to stdout.  -p prints the code table
// to stderr, -s prints compression statistics to stderr.
package main

import (
	"bufio"
	"io"
	"log"
	"os"

	"github.com/chronos-tachyon/huffpack"
)

type Mode uint8

const (
	CompressMode Mode = iota
	DecompressMode
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("huffpack: ")

	var finName, foutName string
	mode := CompressMode
	var doPrintTable, doPrintStats bool
	args := os.Args[1:]

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "-c":
			mode = CompressMode
		case "-d":
			mode = DecompressMode
		case "-o":
			if i+1 >= len(args) {
				log.Fatal("-o must be followed by an output file")
			}
			foutName = args[i+1]
			i++
		case "-p":
			doPrintTable = true
		case "-s":
			doPrintStats = true
		default:
			finName = args[i]
		}
	}

	fin := os.Stdin
	if finName != "" {
		f, err := os.Open(finName)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		fin = f
	}

	input, err := io.ReadAll(bufio.NewReader(fin))
	if err != nil {
		log.Fatal(err)
	}

	var output []byte
	switch mode {
	case CompressMode:
		output, err = compress(input, doPrintTable, doPrintStats)
	case DecompressMode:
		output, err = decompress(input, doPrintTable)
	}
	if err != nil {
		log.Fatal(err)
	}

	fout := os.Stdout
	if foutName != "" {
		f, err := os.Create(foutName)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		fout = f
	}
	w := bufio.NewWriter(fout)
	if _, err := w.Write(output); err != nil {
		log.Fatal(err)
	}
	if err := w.Flush(); err != nil {
		log.Fatal(err)
	}
}

func compress(input []byte, doPrintTable, doPrintStats bool) ([]byte, error) {
	if doPrintTable {
		table, _, err := huffpack.BuildCodeTable(input)
		if err != nil {
			return nil, err
		}
		_, _ = table.Dump(os.Stderr)
	}
	if doPrintStats {
		stats, err := huffpack.ComputeStats(input)
		if err != nil {
			return nil, err
		}
		log.Print(stats)
	}
	return huffpack.Compress(input)
}

func decompress(input []byte, doPrintTable bool) ([]byte, error) {
	if doPrintTable {
		a, err := huffpack.DecodeArtifact(input)
		if err != nil {
			return nil, err
		}
		d, err := a.Decoder()
		if err != nil {
			return nil, err
		}
		_, _ = d.Dump(os.Stderr)
	}
	return huffpack.Decompress(input)
}

// Package fasta reads FASTA sequence files, plain or gzipped.
package fasta

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strings"
)

// Record is one FASTA entry. ID is the first whitespace-delimited token of
// the header; Description the remainder.
type Record struct {
	ID          string
	Description string
	Seq         []byte
}

// Isotype extracts the isoacceptor type from tRNA naming conventions like
// "tRNA-Ala-AGC-1-1" or "Homo_sapiens_tRNA-His-GTG-1". Returns "" when the
// record carries no recognizable annotation.
func (r Record) Isotype() string {
	for _, field := range []string{r.ID, r.Description} {
		idx := strings.Index(field, "tRNA-")
		if idx < 0 {
			continue
		}
		rest := field[idx+len("tRNA-"):]
		if end := strings.IndexAny(rest, "-_ "); end > 0 {
			return rest[:end]
		}
		if rest != "" {
			return rest
		}
	}
	return ""
}

// ReadAll parses every record from r. Sequence lines are uppercased and
// concatenated; blank lines are ignored. A sequence line before any header
// is an error.
func ReadAll(r io.Reader) ([]Record, error) {
	var records []Record
	var current *Record

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 8*1024*1024)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if line == "" {
			continue
		}
		if line[0] == '>' {
			if current != nil {
				records = append(records, *current)
			}
			header := strings.TrimSpace(line[1:])
			id, desc, _ := strings.Cut(header, " ")
			if id == "" {
				return nil, fmt.Errorf("empty FASTA header")
			}
			current = &Record{ID: id, Description: strings.TrimSpace(desc)}
			continue
		}
		if current == nil {
			return nil, fmt.Errorf("sequence data before first header")
		}
		current.Seq = append(current.Seq, strings.ToUpper(line)...)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read fasta: %w", err)
	}
	if current != nil {
		records = append(records, *current)
	}
	return records, nil
}

// Open opens a FASTA file for reading. "-" means stdin; a .gz suffix gets
// transparent decompression.
func Open(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	if strings.HasSuffix(path, ".gz") {
		gr, err := gzip.NewReader(fh)
		if err != nil {
			fh.Close()
			return nil, err
		}
		return struct {
			io.Reader
			io.Closer
		}{Reader: gr, Closer: fh}, nil
	}
	return fh, nil
}

// ReadFile reads every record from a path, honoring the Open conventions.
func ReadFile(path string) ([]Record, error) {
	rc, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return ReadAll(rc)
}

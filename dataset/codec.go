package dataset

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// Format identifies an on-disk dataset encoding.
type Format int

const (
	// FormatText is one entry per line: the key followed by the vector
	// components, whitespace separated. Blank lines and lines starting with
	// '#' are skipped.
	FormatText Format = iota
	// FormatFvecs is the TEXMEX layout: per record a little-endian int32
	// dimension followed by that many float32 values. Keys are the
	// zero-based record index.
	FormatFvecs
)

func (f Format) String() string {
	switch f {
	case FormatText:
		return "text"
	case FormatFvecs:
		return "fvecs"
	default:
		return fmt.Sprintf("unknown(%d)", int(f))
	}
}

// ParseFormat maps a format name to a Format.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(name) {
	case "text", "txt":
		return FormatText, nil
	case "fvecs":
		return FormatFvecs, nil
	default:
		return 0, fmt.Errorf("dataset: unknown format %q", name)
	}
}

// ErrMalformed is wrapped by decode errors caused by invalid input.
var ErrMalformed = errors.New("dataset: malformed input")

const maxLineSize = 64 << 20

// Read decodes a dataset from r.
func Read(r io.Reader, f Format) (Dataset, error) {
	switch f {
	case FormatText:
		return readText(r)
	case FormatFvecs:
		return readFvecs(r)
	default:
		return nil, fmt.Errorf("dataset: unsupported format %v", f)
	}
}

// Write encodes ds to w.
func Write(w io.Writer, ds Dataset, f Format) error {
	switch f {
	case FormatText:
		return writeText(w, ds)
	case FormatFvecs:
		return writeFvecs(w, ds)
	default:
		return fmt.Errorf("dataset: unsupported format %v", f)
	}
}

func readText(r io.Reader) (Dataset, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var ds Dataset
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		fields := strings.Fields(text)
		if len(fields) < 2 {
			return nil, fmt.Errorf("%w: line %d: want key and at least one component", ErrMalformed, line)
		}

		vec := make([]float32, len(fields)-1)
		for i, s := range fields[1:] {
			v, err := strconv.ParseFloat(s, 32)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: component %d: %v", ErrMalformed, line, i, err)
			}
			vec[i] = float32(v)
		}

		ds = append(ds, Entry{Key: fields[0], Vector: vec})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	return ds, nil
}

func writeText(w io.Writer, ds Dataset) error {
	bw := bufio.NewWriter(w)
	buf := make([]byte, 0, 64)

	for _, e := range ds {
		if e.Key == "" || strings.ContainsAny(e.Key, " \t\r\n") || strings.HasPrefix(e.Key, "#") {
			return fmt.Errorf("dataset: key %q cannot be written as text", e.Key)
		}
		if _, err := bw.WriteString(e.Key); err != nil {
			return err
		}
		for _, x := range e.Vector {
			buf = append(buf[:0], ' ')
			buf = strconv.AppendFloat(buf, float64(x), 'g', -1, 32)
			if _, err := bw.Write(buf); err != nil {
				return err
			}
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}

	return bw.Flush()
}

// maxFvecsDim bounds the per-record dimension read from an fvecs header,
// which sizes an allocation before any vector data is seen.
const maxFvecsDim = 1 << 20

func readFvecs(r io.Reader) (Dataset, error) {
	br := bufio.NewReader(r)

	var (
		ds  Dataset
		hdr [4]byte
	)
	for i := 0; ; i++ {
		if _, err := io.ReadFull(br, hdr[:]); err != nil {
			if errors.Is(err, io.EOF) {
				return ds, nil
			}
			return nil, fmt.Errorf("%w: record %d: truncated header", ErrMalformed, i)
		}

		dim := int32(binary.LittleEndian.Uint32(hdr[:]))
		if dim <= 0 {
			return nil, fmt.Errorf("%w: record %d: invalid dimension %d", ErrMalformed, i, dim)
		}
		if dim > maxFvecsDim {
			return nil, fmt.Errorf("%w: record %d: dimension %d exceeds %d", ErrMalformed, i, dim, maxFvecsDim)
		}

		raw := make([]byte, 4*int(dim))
		if _, err := io.ReadFull(br, raw); err != nil {
			return nil, fmt.Errorf("%w: record %d: truncated vector", ErrMalformed, i)
		}

		vec := make([]float32, dim)
		for j := range vec {
			vec[j] = math.Float32frombits(binary.LittleEndian.Uint32(raw[4*j:]))
		}

		ds = append(ds, Entry{Key: strconv.Itoa(i), Vector: vec})
	}
}

func writeFvecs(w io.Writer, ds Dataset) error {
	bw := bufio.NewWriter(w)

	for _, e := range ds {
		if len(e.Vector) == 0 || len(e.Vector) > math.MaxInt32 {
			return fmt.Errorf("dataset: entry %q has unsupported dimension %d", e.Key, len(e.Vector))
		}

		rec := make([]byte, 4+4*len(e.Vector))
		binary.LittleEndian.PutUint32(rec, uint32(len(e.Vector)))
		for j, x := range e.Vector {
			binary.LittleEndian.PutUint32(rec[4+4*j:], math.Float32bits(x))
		}
		if _, err := bw.Write(rec); err != nil {
			return err
		}
	}

	return bw.Flush()
}

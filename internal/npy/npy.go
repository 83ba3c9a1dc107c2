// Package npy reads and writes two-dimensional uint16 arrays in the NumPy
// .npy format (version 1.0, little-endian, C order).
//
// Files written here load with numpy.load into an array of dtype uint16 and
// the same shape.
package npy

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

const (
	magic       = "\x93NUMPY"
	descrUint16 = "<u2"

	// Header blocks are padded so the data starts on a 64-byte boundary.
	headerAlign = 64

	// MaxElements bounds the element count accepted by Read.
	MaxElements = 1 << 24

	// Extension is the file name extension used for array files.
	Extension = ".npy"
)

var (
	errBadMagic  = errors.New("npy: not a NumPy array file")
	errBadShape  = errors.New("npy: shape does not match data length")
	errBadHeader = errors.New("npy: malformed header")

	reDescr   = regexp.MustCompile(`'descr'\s*:\s*'([^']*)'`)
	reFortran = regexp.MustCompile(`'fortran_order'\s*:\s*(True|False)`)
	reShape   = regexp.MustCompile(`'shape'\s*:\s*\(([^)]*)\)`)

	littleEndian = binary.LittleEndian
)

// Array is a decoded uint16 array.
type Array struct {
	Shape []int
	Data  []uint16
}

// At returns the element at (row, col). It panics if the array is not
// two-dimensional or the index is out of range.
func (a *Array) At(row, col int) uint16 {
	if len(a.Shape) != 2 {
		panic(fmt.Sprintf("npy: At on %d-dimensional array", len(a.Shape)))
	}
	if row < 0 || row >= a.Shape[0] || col < 0 || col >= a.Shape[1] {
		panic(fmt.Sprintf("npy: index (%d, %d) out of range for shape (%d, %d)", row, col, a.Shape[0], a.Shape[1]))
	}
	return a.Data[row*a.Shape[1]+col]
}

// Write encodes data as a rows x cols uint16 array.
func Write(w io.Writer, data []uint16, rows, cols int) error {
	if rows < 0 || cols < 0 || rows*cols != len(data) {
		return fmt.Errorf("%w: (%d, %d) for %d elements", errBadShape, rows, cols, len(data))
	}

	bw := bufio.NewWriter(w)
	if _, err := bw.Write(header(rows, cols)); err != nil {
		return fmt.Errorf("npy: write header: %w", err)
	}
	if err := binary.Write(bw, littleEndian, data); err != nil {
		return fmt.Errorf("npy: write data: %w", err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("npy: flush: %w", err)
	}
	return nil
}

// WriteFile writes data to path. The file is written to a temporary name in
// the same directory and renamed into place, so a reader never observes a
// partial file.
func WriteFile(path string, data []uint16, rows, cols int) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("npy: %w", err)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	if err = Write(tmp, data, rows, cols); err != nil {
		_ = tmp.Close()
		return err
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("npy: %w", err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("npy: %w", err)
	}
	return nil
}

// header returns the magic string, version, length field and padded header
// dictionary for a version 1.0 file.
func header(rows, cols int) []byte {
	dict := fmt.Sprintf("{'descr': '%s', 'fortran_order': False, 'shape': (%d, %d), }", descrUint16, rows, cols)

	// magic(6) + version(2) + header length(2)
	prefix := len(magic) + 4
	total := prefix + len(dict) + 1
	if rem := total % headerAlign; rem != 0 {
		total += headerAlign - rem
	}
	hlen := total - prefix

	var buf bytes.Buffer
	buf.Grow(total)
	buf.WriteString(magic)
	buf.WriteByte(1)
	buf.WriteByte(0)
	_ = binary.Write(&buf, littleEndian, uint16(hlen))
	buf.WriteString(dict)
	buf.WriteString(strings.Repeat(" ", hlen-len(dict)-1))
	buf.WriteByte('\n')
	return buf.Bytes()
}

// Read decodes a uint16 array in C order. Versions 1.0 and 2.0 are
// accepted.
func Read(r io.Reader) (*Array, error) {
	br := bufio.NewReader(r)

	pre := make([]byte, len(magic)+2)
	if _, err := io.ReadFull(br, pre); err != nil {
		return nil, fmt.Errorf("npy: read preamble: %w", err)
	}
	if string(pre[:len(magic)]) != magic {
		return nil, errBadMagic
	}

	var hlen int
	switch major := pre[len(magic)]; major {
	case 1:
		var n uint16
		if err := binary.Read(br, littleEndian, &n); err != nil {
			return nil, fmt.Errorf("npy: read header length: %w", err)
		}
		hlen = int(n)
	case 2:
		var n uint32
		if err := binary.Read(br, littleEndian, &n); err != nil {
			return nil, fmt.Errorf("npy: read header length: %w", err)
		}
		hlen = int(n)
	default:
		return nil, fmt.Errorf("npy: unsupported format version %d", major)
	}

	raw := make([]byte, hlen)
	if _, err := io.ReadFull(br, raw); err != nil {
		return nil, fmt.Errorf("npy: read header: %w", err)
	}
	shape, err := parseHeader(string(raw))
	if err != nil {
		return nil, err
	}

	n := 1
	for _, d := range shape {
		if d != 0 && n > MaxElements/d {
			return nil, fmt.Errorf("%w: shape %v exceeds %d elements", errBadHeader, shape, MaxElements)
		}
		n *= d
	}
	data := make([]uint16, n)
	if err := binary.Read(br, littleEndian, data); err != nil {
		return nil, fmt.Errorf("npy: read data: %w", err)
	}
	return &Array{Shape: shape, Data: data}, nil
}

// ReadFile decodes the array stored at path.
func ReadFile(path string) (*Array, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("npy: %w", err)
	}
	defer f.Close()
	return Read(f)
}

func parseHeader(h string) ([]int, error) {
	m := reDescr.FindStringSubmatch(h)
	if m == nil {
		return nil, fmt.Errorf("%w: missing descr", errBadHeader)
	}
	if m[1] != descrUint16 {
		return nil, fmt.Errorf("npy: unsupported dtype %q, want %q", m[1], descrUint16)
	}

	m = reFortran.FindStringSubmatch(h)
	if m == nil {
		return nil, fmt.Errorf("%w: missing fortran_order", errBadHeader)
	}
	if m[1] == "True" {
		return nil, errors.New("npy: fortran-ordered arrays are not supported")
	}

	m = reShape.FindStringSubmatch(h)
	if m == nil {
		return nil, fmt.Errorf("%w: missing shape", errBadHeader)
	}
	var shape []int
	for _, f := range strings.Split(m[1], ",") {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		d, err := strconv.Atoi(f)
		if err != nil || d < 0 {
			return nil, fmt.Errorf("%w: bad dimension %q", errBadHeader, f)
		}
		shape = append(shape, d)
	}
	return shape, nil
}

package copyengine_test

import (
	"bytes"
	"testing"

	"github.com/momentics/hioload-video/api"
	"github.com/momentics/hioload-video/core/copyengine"
	"github.com/momentics/hioload-video/core/resource"
)

// pitched lays out rows of rowWidth payload bytes separated by padding up
// to rowPitch, padding filled with 0xAA.
func pitched(rows, rowWidth, rowPitch int, fill func(row, col int) byte) []byte {
	buf := make([]byte, (rows-1)*rowPitch+rowWidth)
	for i := range buf {
		buf[i] = 0xAA
	}
	for r := 0; r < rows; r++ {
		for c := 0; c < rowWidth; c++ {
			buf[r*rowPitch+c] = fill(r, c)
		}
	}
	return buf
}

func TestWriteStridedExcludesPitchPadding(t *testing.T) {
	const (
		rowWidth  = 4
		rowHeight = 2
		rowPitch  = 6
		totalRows = 3 // semi-planar: 2 luma rows + 1 chroma row
	)
	// first slice ends mid-row: row 1 crosses the 5/4 boundary
	run := makeRun(5, 4, 3)
	res, err := resource.New(1, [][]resource.Slice{run})
	if err != nil {
		t.Fatal(err)
	}

	y := pitched(2, rowWidth, rowPitch, func(r, c int) byte { return byte(0x10 + r*rowWidth + c) })
	uv := pitched(1, rowWidth, rowPitch, func(r, c int) byte { return byte(0x80 + c) })

	e := copyengine.New(nil)
	err = e.WriteStrided(res, 0, y, uv, rowWidth, rowHeight, rowPitch, rowWidth*totalRows, totalRows)
	if err != nil {
		t.Fatal(err)
	}

	want := []byte{
		0x10, 0x11, 0x12, 0x13, // luma row 0
		0x14, 0x15, 0x16, 0x17, // luma row 1
		0x80, 0x81, 0x82, 0x83, // chroma row 0
	}
	got := flatten(run)
	if !bytes.Equal(got, want) {
		t.Fatalf("strided output = % x, want % x", got, want)
	}
	for i, b := range got {
		if b == 0xAA {
			t.Fatalf("pitch padding leaked into output at byte %d", i)
		}
	}
}

func TestWriteStridedShortfall(t *testing.T) {
	run := makeRun(5, 4)
	res, _ := resource.New(1, [][]resource.Slice{run})
	e := copyengine.New(nil)

	y := pitched(3, 4, 6, func(r, c int) byte { return byte(r*4 + c) })
	err := e.WriteStrided(res, 0, y, nil, 4, 3, 6, 12, 3)
	if err != api.ErrBufferInsufficient {
		t.Fatalf("WriteStrided = %v, want ErrBufferInsufficient", err)
	}
	// the 9 available destination bytes hold packed rows, no padding
	want := []byte{0, 1, 2, 3, 4, 5, 6, 7, 8}
	if !bytes.Equal(flatten(run), want) {
		t.Errorf("partial strided output = % x, want % x", flatten(run), want)
	}
}

func TestWriteStridedRejectsBadGeometry(t *testing.T) {
	res, _ := resource.New(1, [][]resource.Slice{makeRun(8)})
	e := copyengine.New(nil)

	if err := e.WriteStrided(res, 0, pattern(8), nil, 4, 2, 2, 8, 2); err != api.ErrMalformedGeometry {
		t.Errorf("pitch < width = %v, want ErrMalformedGeometry", err)
	}
	if err := e.WriteStrided(res, 0, nil, nil, 4, 2, 4, 8, 2); err != api.ErrMalformedGeometry {
		t.Errorf("nil primary = %v, want ErrMalformedGeometry", err)
	}
	if err := e.WriteStrided(res, 0, pattern(8), nil, 4, 1, 4, 8, 2); err != api.ErrMalformedGeometry {
		t.Errorf("missing secondary = %v, want ErrMalformedGeometry", err)
	}
	if err := e.WriteStrided(res, 0, pattern(4), nil, 4, 2, 6, 8, 2); err != api.ErrMalformedGeometry {
		t.Errorf("source row overrun = %v, want ErrMalformedGeometry", err)
	}
}

func TestWriteNV12ContiguousRegions(t *testing.T) {
	run := makeRun(5, 4, 3)
	res, _ := resource.New(1, [][]resource.Slice{run})
	e := copyengine.New(nil)

	y := pattern(8)
	uv := pattern(4)
	if err := e.WriteNV12(res, y, uv); err != nil {
		t.Fatal(err)
	}
	want := append(append([]byte(nil), y...), uv...)
	if !bytes.Equal(flatten(run), want) {
		t.Error("NV12 luma+chroma not packed back to back")
	}
}

func TestWriteNV12Insufficient(t *testing.T) {
	res, _ := resource.New(1, [][]resource.Slice{makeRun(5, 4)})
	e := copyengine.New(nil)
	if err := e.WriteNV12(res, pattern(8), pattern(4)); err != api.ErrBufferInsufficient {
		t.Fatalf("WriteNV12 = %v, want ErrBufferInsufficient", err)
	}
}

func TestWriteNV12StridedWrapper(t *testing.T) {
	// width=4, height=2: 8 luma + 4 chroma bytes, 3 copy rows
	run := makeRun(12)
	res, _ := resource.New(1, [][]resource.Slice{run})
	e := copyengine.New(nil)

	y := pitched(2, 4, 7, func(r, c int) byte { return byte(0x20 + r*4 + c) })
	uv := pitched(1, 4, 7, func(r, c int) byte { return byte(0x90 + c) })
	if err := e.WriteNV12Strided(res, y, uv, 4, 2, 7); err != nil {
		t.Fatal(err)
	}
	want := []byte{
		0x20, 0x21, 0x22, 0x23,
		0x24, 0x25, 0x26, 0x27,
		0x90, 0x91, 0x92, 0x93,
	}
	if !bytes.Equal(flatten(run), want) {
		t.Errorf("NV12 strided output = % x, want % x", flatten(run), want)
	}
}

func TestWriteARGBStridedWrapper(t *testing.T) {
	// width=2, height=2: rows of 8 bytes at pitch 10
	run := makeRun(7, 9)
	res, _ := resource.New(1, [][]resource.Slice{run})
	e := copyengine.New(nil)

	src := pitched(2, 8, 10, func(r, c int) byte { return byte(r*8 + c) })
	if err := e.WriteARGBStrided(res, src, 2, 2, 10); err != nil {
		t.Fatal(err)
	}
	want := []byte{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15}
	if !bytes.Equal(flatten(run), want) {
		t.Errorf("ARGB strided output = % x, want % x", flatten(run), want)
	}
}

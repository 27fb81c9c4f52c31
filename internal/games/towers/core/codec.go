package core

import (
	"encoding/binary"
	"fmt"
	"io"
)

const (
	headerSize     = 4 // width, height, tower count (u16)
	towerRecordLen = 8
	cellRecordLen  = 2
	emptyCellWord  = 0xFFFF
)

// ErrShortBuffer is returned by Decode when the data ends before the
// layout it declares.
var ErrShortBuffer = fmt.Errorf("core: field data truncated: %w", io.ErrUnexpectedEOF)

// EncodedLen returns the number of bytes Encode produces for f.
func (f *Field) EncodedLen() int {
	n := headerSize + len(f.towers)*towerRecordLen + 2*f.area*cellRecordLen + 1
	if f.mask != nil {
		n += 2 + f.mask.w*f.mask.h
	}
	return n
}

// Encode serialises the field:
//
//	u8 width, u8 height, u16 tower count (big-endian)
//	per tower: origin x, origin y, height, flattened height, bounds x, y, w, h (u8 each)
//	width*height occupancy words, then width*height solution words (u16 BE, 0xFFFF = empty)
//	u8 has mask; if set: u8 mask width, u8 mask height, one u8 (0/1) per tile
func (f *Field) Encode() []byte {
	data := make([]byte, 0, f.EncodedLen())

	data = append(data, byte(f.width), byte(f.height))
	data = binary.BigEndian.AppendUint16(data, uint16(len(f.towers)))

	for _, t := range f.towers {
		data = append(data,
			byte(t.Origin.X), byte(t.Origin.Y),
			byte(t.Height), byte(t.FlattenedHeight),
			byte(t.Bounds.X), byte(t.Bounds.Y),
			byte(t.Bounds.W), byte(t.Bounds.H),
		)
	}

	data = appendCells(data, f.cells[:f.area])
	data = appendCells(data, f.solution[:f.area])

	if f.mask == nil {
		return append(data, 0)
	}
	data = append(data, 1, byte(f.mask.w), byte(f.mask.h))
	for i := 0; i < f.mask.w*f.mask.h; i++ {
		if f.mask.playable[i] {
			data = append(data, 1)
		} else {
			data = append(data, 0)
		}
	}
	return data
}

func appendCells(data []byte, cells []Cell) []byte {
	for _, c := range cells {
		word := uint16(emptyCellWord)
		if ti, ok := c.Tower(); ok {
			word = uint16(ti)
		}
		data = binary.BigEndian.AppendUint16(data, word)
	}
	return data
}

// Decode replaces the field's contents with the encoded field at the start
// of data and returns the number of bytes consumed, so callers can find
// their own bytes appended after it.
//
// The declared dimensions, tower count and mask size are trusted: they are
// not checked against the field limits or against each other. Only bytes
// produced by Encode should be decoded. Running out of data returns
// ErrShortBuffer and leaves the field unchanged.
func (f *Field) Decode(data []byte) (int, error) {
	r := reader{data: data}

	w := int(r.u8())
	h := int(r.u8())
	area := w * h
	count := int(r.u16())

	towers := make([]Tower, 0, count)
	for i := 0; i < count; i++ {
		rec := r.bytes(towerRecordLen)
		if rec == nil {
			return 0, ErrShortBuffer
		}
		t := Tower{
			Origin:          C(int(rec[0]), int(rec[1])),
			Height:          int(rec[2]),
			FlattenedHeight: int(rec[3]),
		}
		t.Bounds.X, t.Bounds.Y = int(rec[4]), int(rec[5])
		t.Bounds.W, t.Bounds.H = int(rec[6]), int(rec[7])
		towers = append(towers, t)
	}

	size := max(area, MaxArea)
	cells := r.cells(area, size)
	solution := r.cells(area, size)

	var mask *Mask
	if r.u8() != 0 {
		mw, mh := int(r.u8()), int(r.u8())
		mask = &Mask{w: mw, h: mh, playable: make([]bool, max(mw*mh, MaxArea))}
		for i := range mask.playable {
			mask.playable[i] = true
		}
		for i := 0; i < mw*mh; i++ {
			mask.playable[i] = r.u8() != 0
		}
	}

	if r.short {
		return 0, ErrShortBuffer
	}

	f.width, f.height, f.area = w, h, area
	f.towers = towers
	f.cells = cells
	f.solution = solution
	f.mask = mask
	return r.pos, nil
}

// DecodeField decodes a new field from data and returns it together with
// the number of bytes consumed.
func DecodeField(data []byte) (*Field, int, error) {
	f := &Field{}
	n, err := f.Decode(data)
	if err != nil {
		return nil, 0, err
	}
	return f, n, nil
}

// reader walks a byte slice and records, instead of panicking, when it
// runs past the end.
type reader struct {
	data  []byte
	pos   int
	short bool
}

func (r *reader) bytes(n int) []byte {
	if r.short || r.pos+n > len(r.data) {
		r.short = true
		return nil
	}
	b := r.data[r.pos : r.pos+n]
	r.pos += n
	return b
}

func (r *reader) u8() byte {
	b := r.bytes(1)
	if b == nil {
		return 0
	}
	return b[0]
}

func (r *reader) u16() uint16 {
	b := r.bytes(2)
	if b == nil {
		return 0
	}
	return binary.BigEndian.Uint16(b)
}

func (r *reader) cells(n, size int) []Cell {
	out := make([]Cell, size)
	for i := 0; i < n; i++ {
		b := r.bytes(cellRecordLen)
		if b == nil {
			return out
		}
		if word := binary.BigEndian.Uint16(b); word != emptyCellWord {
			out[i] = Owned(int(word))
		}
	}
	return out
}

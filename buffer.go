// buffer.go - little-endian byte buffer used by the encoders and object writers
package main

import (
	"bytes"
	"encoding/binary"
)

type BufferWrapper struct {
	buf *bytes.Buffer
}

func NewBufferWrapper() *BufferWrapper {
	return &BufferWrapper{buf: &bytes.Buffer{}}
}

func (bw *BufferWrapper) Write(b byte) int {
	bw.buf.WriteByte(b)
	return 1
}

func (bw *BufferWrapper) WriteN(b byte, n int) int {
	for i := 0; i < n; i++ {
		bw.buf.WriteByte(b)
	}
	return n
}

func (bw *BufferWrapper) Write2u(v uint16) int {
	binary.Write(bw.buf, binary.LittleEndian, v)
	return 2
}

func (bw *BufferWrapper) Write4u(v uint32) int {
	binary.Write(bw.buf, binary.LittleEndian, v)
	return 4
}

func (bw *BufferWrapper) Write8u(v uint64) int {
	binary.Write(bw.buf, binary.LittleEndian, v)
	return 8
}

func (bw *BufferWrapper) WriteBytes(bs []byte) int {
	bw.buf.Write(bs)
	return len(bs)
}

func (bw *BufferWrapper) WriteString(s string) int {
	bw.buf.WriteString(s)
	return len(s)
}

// Align pads the buffer with zero bytes up to the given alignment.
func (bw *BufferWrapper) Align(alignment int) {
	for bw.buf.Len()%alignment != 0 {
		bw.buf.WriteByte(0)
	}
}

func (bw *BufferWrapper) Len() int {
	return bw.buf.Len()
}

func (bw *BufferWrapper) Bytes() []byte {
	return bw.buf.Bytes()
}

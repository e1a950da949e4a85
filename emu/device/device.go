/*
 * um - Byte-oriented standard I/O port.
 *
 * Copyright 2024, Richard Cornwell
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

// Package device is the UM's I/O port: a byte-granular standard input and
// standard output, the only peripherals the machine has.
package device

import (
	"bufio"
	"io"
)

// eofSentinel is the value opcode 11 (Input) stores on end-of-input,
// distinct from any valid byte value (0-255).
const eofSentinel = 0xFFFFFFFF

// Port wraps the process's standard input and output as the byte streams
// opcodes 10 (Output) and 11 (Input) operate on.
type Port struct {
	in  *bufio.Reader
	out *bufio.Writer
}

// New builds a Port over the given reader and writer, buffered the way
// the teacher's own stdin handling in main.go is buffered.
func New(in io.Reader, out io.Writer) *Port {
	return &Port{in: bufio.NewReader(in), out: bufio.NewWriter(out)}
}

// Output writes one byte to standard output.
func (p *Port) Output(b byte) error {
	return p.out.WriteByte(b)
}

// Input reads one byte from standard input. It returns eofSentinel
// (0xFFFFFFFF), not an error, when the stream is exhausted - end-of-input
// is a defined machine state, not an I/O failure.
func (p *Port) Input() (uint32, error) {
	b, err := p.in.ReadByte()
	if err == io.EOF {
		return eofSentinel, nil
	}
	if err != nil {
		return 0, err
	}
	return uint32(b), nil
}

// Flush drains buffered output. Called at halt and on any fatal exit so
// partial output is never lost (spec.md §6.3).
func (p *Port) Flush() error {
	return p.out.Flush()
}

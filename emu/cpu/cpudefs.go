/*
 * um - Instruction decoder and engine state definitions.
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

package cpu

import "github.com/rcornwell/um/emu/device"

// field describes one bit range of a 32-bit code word: width bits wide,
// starting at bit lsb. Bit 0 is least significant.
type field struct {
	width uint32
	lsb   uint32
}

// Code-word field layout, spec.md §4.1.
var (
	fieldOP = field{width: 4, lsb: 28}
	fieldA  = field{width: 3, lsb: 6}
	fieldB  = field{width: 3, lsb: 3}
	fieldC  = field{width: 3, lsb: 0}
	fieldAp = field{width: 3, lsb: 25} // A' - register field for opcode 13
	fieldV  = field{width: 25, lsb: 0} // immediate value for opcode 13
)

func mask(bits uint32) uint32 {
	return (1 << bits) - 1
}

// get extracts field f from word.
func get(f field, word uint32) uint32 {
	return (word >> f.lsb) & mask(f.width)
}

// Opcode values, spec.md §4.3.
const (
	opCMov uint32 = iota
	opSegLoad
	opSegStore
	opAdd
	opMul
	opDiv
	opBNand
	opHalt
	opMapSeg
	opUnmapSeg
	opOutput
	opInput
	opLoadProg
	opLoadVal
	numOpcodes
)

// stepInfo is the decoded form of one code word. Both register-A forms
// are extracted unconditionally since field-extract is cheap and this
// keeps the dispatch table free of per-opcode special casing: opcodes
// 0-12 use a, opcode 13 (Load Value) uses aLoad (field A').
type stepInfo struct {
	opcode uint32
	a      uint32
	aLoad  uint32
	b      uint32
	c      uint32
	value  uint32 // immediate, opcode 13 only
}

func decode(word uint32) stepInfo {
	return stepInfo{
		opcode: get(fieldOP, word),
		a:      get(fieldA, word),
		aLoad:  get(fieldAp, word),
		b:      get(fieldB, word),
		c:      get(fieldC, word),
		value:  get(fieldV, word),
	}
}

// Code is the outcome of one executed instruction.
type Code uint8

const (
	CodeOK            Code = iota // continue fetching
	CodeHalt                      // opcode 7: orderly termination, exit 0
	CodeInvalidOpcode             // OP in {14,15}, exit 3
	CodeOutputRange               // opcode 10 with R[C] > 255, exit 4
	CodeUndefined                 // freed/oob segment access, bad unmap, divide by zero, exit 5
	CodeIOFailure                 // unrecoverable read/write error, exit 6
)

// cpuState holds everything the engine owns: registers, program counter,
// and the dispatch table. The segment table lives in package memory and
// the byte streams in package device, both reached through this struct
// the same way the teacher's cpuState reaches out to its memory and
// device packages.
type cpuState struct {
	regs  [8]uint32
	pc    uint32
	port  *device.Port
	table [numOpcodes]func(*cpuState, *stepInfo) Code

	// Diagnostic context for the last fatal condition, read by the CLI
	// harness to build a log record (spec.md §4.7).
	failPC     uint32
	failOpcode uint32
	failReason string
}

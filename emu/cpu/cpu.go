/*
 * um - Main fetch, decode, execute loop.
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

// Package cpu is the Universal Machine's execution engine: the register
// file, program counter and the fetch-decode-dispatch loop over the
// fourteen opcodes of spec.md §4.3.
package cpu

import (
	"github.com/rcornwell/um/emu/device"
	"github.com/rcornwell/um/emu/memory"
)

// Holds the state of the one machine this process runs (spec.md §5: no
// multi-program isolation), the same single-instance convention the
// teacher's sysCPU global uses.
var sysCPU cpuState

// Init boots the engine: installs program as segment zero, zeroes every
// register, resets PC to zero, and wires the I/O port.
func Init(program []uint32, port *device.Port) {
	memory.Init(program)
	sysCPU = cpuState{port: port}
	sysCPU.createTable()
}

// Run executes instructions until Halt or a fatal condition. The
// returned code is CodeHalt on success; any other non-CodeOK value
// identifies the error kind (spec.md §7).
func Run() Code {
	for {
		if sysCPU.pc >= memory.ZeroLen() {
			return sysCPU.fail(CodeUndefined, "program counter out of range")
		}
		word, ok := memory.Read(0, sysCPU.pc)
		if !ok {
			return sysCPU.fail(CodeUndefined, "segment zero fetch failed")
		}
		pc := sysCPU.pc
		sysCPU.pc++

		step := decode(word)
		if step.opcode >= numOpcodes {
			sysCPU.failPC, sysCPU.failOpcode = pc, step.opcode
			return sysCPU.fail(CodeInvalidOpcode, "invalid opcode")
		}

		if code := sysCPU.table[step.opcode](&sysCPU, &step); code != CodeOK {
			if code != CodeHalt {
				sysCPU.failPC, sysCPU.failOpcode = pc, step.opcode
			}
			return code
		}
	}
}

// Diagnostics returns the program counter, opcode, and reason recorded
// for the last fatal condition, for the CLI harness to log.
func Diagnostics() (pc, opcode uint32, reason string) {
	return sysCPU.failPC, sysCPU.failOpcode, sysCPU.failReason
}

func (cpu *cpuState) fail(code Code, reason string) Code {
	cpu.failReason = reason
	return code
}

// createTable builds the opcode dispatch table, the same
// table[opcode](step) pattern the teacher's CPU uses for its 256-entry
// instruction table, generalized to this machine's 14 opcodes.
func (cpu *cpuState) createTable() {
	cpu.table = [numOpcodes]func(*cpuState, *stepInfo) Code{
		opCMov:     (*cpuState).opCMov,
		opSegLoad:  (*cpuState).opSegLoad,
		opSegStore: (*cpuState).opSegStore,
		opAdd:      (*cpuState).opAdd,
		opMul:      (*cpuState).opMul,
		opDiv:      (*cpuState).opDiv,
		opBNand:    (*cpuState).opBNand,
		opHalt:     (*cpuState).opHalt,
		opMapSeg:   (*cpuState).opMapSeg,
		opUnmapSeg: (*cpuState).opUnmapSeg,
		opOutput:   (*cpuState).opOutput,
		opInput:    (*cpuState).opInput,
		opLoadProg: (*cpuState).opLoadProg,
		opLoadVal:  (*cpuState).opLoadVal,
	}
}

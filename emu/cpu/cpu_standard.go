/*
 * um - Opcode semantics.
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

import "github.com/rcornwell/um/emu/memory"

// opCMov: if R[C] != 0 then R[A] <- R[B]. Leaves R[A] unchanged otherwise (P5).
func (cpu *cpuState) opCMov(step *stepInfo) Code {
	if cpu.regs[step.c] != 0 {
		cpu.regs[step.a] = cpu.regs[step.b]
	}
	return CodeOK
}

// opSegLoad: R[A] <- segment[R[B]][R[C]].
func (cpu *cpuState) opSegLoad(step *stepInfo) Code {
	v, ok := memory.Read(cpu.regs[step.b], cpu.regs[step.c])
	if !ok {
		return cpu.fail(CodeUndefined, "segmented load from freed or out-of-range cell")
	}
	cpu.regs[step.a] = v
	return CodeOK
}

// opSegStore: segment[R[A]][R[B]] <- R[C].
func (cpu *cpuState) opSegStore(step *stepInfo) Code {
	if !memory.Write(cpu.regs[step.a], cpu.regs[step.b], cpu.regs[step.c]) {
		return cpu.fail(CodeUndefined, "segmented store to freed or out-of-range cell")
	}
	return CodeOK
}

// opAdd: R[A] <- (R[B] + R[C]) mod 2^32 (P4).
func (cpu *cpuState) opAdd(step *stepInfo) Code {
	cpu.regs[step.a] = cpu.regs[step.b] + cpu.regs[step.c]
	return CodeOK
}

// opMul: R[A] <- (R[B] * R[C]) mod 2^32 (P4).
func (cpu *cpuState) opMul(step *stepInfo) Code {
	cpu.regs[step.a] = cpu.regs[step.b] * cpu.regs[step.c]
	return CodeOK
}

// opDiv: R[A] <- R[B] / R[C], unsigned. Division by zero is undefined
// behavior (spec.md §9), reported here rather than left to panic.
func (cpu *cpuState) opDiv(step *stepInfo) Code {
	if cpu.regs[step.c] == 0 {
		return cpu.fail(CodeUndefined, "division by zero")
	}
	cpu.regs[step.a] = cpu.regs[step.b] / cpu.regs[step.c]
	return CodeOK
}

// opBNand: R[A] <- ^(R[B] & R[C]) (P4).
func (cpu *cpuState) opBNand(step *stepInfo) Code {
	cpu.regs[step.a] = ^(cpu.regs[step.b] & cpu.regs[step.c])
	return CodeOK
}

// opHalt terminates execution with success.
func (cpu *cpuState) opHalt(_ *stepInfo) Code {
	return CodeHalt
}

// opMapSeg allocates a zero-filled segment of length R[C] and stores its
// identifier in R[B] (P2, P3, S4).
func (cpu *cpuState) opMapSeg(step *stepInfo) Code {
	cpu.regs[step.b] = memory.Allocate(cpu.regs[step.c])
	return CodeOK
}

// opUnmapSeg frees segment R[C]. Freeing identifier 0 or an already-freed
// identifier is undefined behavior.
func (cpu *cpuState) opUnmapSeg(step *stepInfo) Code {
	if !memory.Free(cpu.regs[step.c]) {
		return cpu.fail(CodeUndefined, "unmap of segment zero or of a non-live segment")
	}
	return CodeOK
}

// opOutput emits the byte R[C] on standard output. R[C] must be <= 255.
func (cpu *cpuState) opOutput(step *stepInfo) Code {
	v := cpu.regs[step.c]
	if v > 255 {
		return cpu.fail(CodeOutputRange, "output value exceeds a byte")
	}
	if err := cpu.port.Output(byte(v)); err != nil {
		return cpu.fail(CodeIOFailure, "standard output write failed: "+err.Error())
	}
	return CodeOK
}

// opInput reads one byte from standard input into R[C], or stores
// 0xFFFFFFFF on end-of-input (S7).
func (cpu *cpuState) opInput(step *stepInfo) Code {
	v, err := cpu.port.Input()
	if err != nil {
		return cpu.fail(CodeIOFailure, "standard input read failed: "+err.Error())
	}
	cpu.regs[step.c] = v
	return CodeOK
}

// opLoadProg replaces segment zero with a duplicate of segment R[B] (a
// no-op when R[B] is 0, S5/P7) and sets PC to R[C]. The new PC is only
// validated at the next fetch (spec.md invariant 3).
func (cpu *cpuState) opLoadProg(step *stepInfo) Code {
	id := cpu.regs[step.b]
	if id != 0 {
		if !memory.ReplaceZero(id) {
			return cpu.fail(CodeUndefined, "load-program from a freed or non-live segment")
		}
	}
	cpu.pc = cpu.regs[step.c]
	return CodeOK
}

// opLoadVal: R[A'] <- V, the 25-bit immediate (P6).
func (cpu *cpuState) opLoadVal(step *stepInfo) Code {
	cpu.regs[step.aLoad] = step.value
	return CodeOK
}

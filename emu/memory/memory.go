/*
 * um - Segment table.
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

// Package memory implements the UM segment table: a growable collection
// of variable-length word arrays addressed by identifier, with freed
// identifiers reused LIFO by Allocate.
package memory

// seg holds one segment's words. A nil seg is a freed (unusable) slot.
type seg []uint32

type table struct {
	segs []seg
	free []uint32
}

// Holds the segment table for the running machine. There is exactly one
// machine per process (no multi-program isolation), so the table is kept
// as package state the way the teacher's memory package keeps a single
// package-level mem.
var segTable table

// Init installs program as segment zero and discards any prior segments.
func Init(program []uint32) {
	segTable.segs = make([]seg, 1, 16)
	segTable.segs[0] = append(seg(nil), program...)
	segTable.free = segTable.free[:0]
}

// Allocate installs a zero-filled segment of length words and returns its
// identifier. Reuses the most recently freed identifier before growing
// the table (P2, P3 and data-model invariant 5 — LIFO reuse, strictly increasing
// identifiers once the free list is exhausted).
func Allocate(length uint32) uint32 {
	s := make(seg, length)
	if n := len(segTable.free); n > 0 {
		id := segTable.free[n-1]
		segTable.free = segTable.free[:n-1]
		segTable.segs[id] = s
		return id
	}
	segTable.segs = append(segTable.segs, s)
	return uint32(len(segTable.segs) - 1)
}

// Free releases segment id's storage and pushes id onto the free list.
// Reports false if id is 0 or not currently live — callers treat that as
// the undefined-access condition from spec.md §7.
func Free(id uint32) bool {
	if id == 0 || !live(id) {
		return false
	}
	segTable.segs[id] = nil
	segTable.free = append(segTable.free, id)
	return true
}

// Read returns segment id's word at offset. Reports false on a freed or
// never-allocated identifier, or an out-of-range offset.
func Read(id, offset uint32) (uint32, bool) {
	if !live(id) || offset >= uint32(len(segTable.segs[id])) {
		return 0, false
	}
	return segTable.segs[id][offset], true
}

// Write stores word into segment id at offset. Same liveness/bounds
// contract as Read.
func Write(id, offset, word uint32) bool {
	if !live(id) || offset >= uint32(len(segTable.segs[id])) {
		return false
	}
	segTable.segs[id][offset] = word
	return true
}

// ReplaceZero copies segment id by value over segment zero's contents.
// A no-op when id is zero. Reports false when id is not live.
func ReplaceZero(id uint32) bool {
	if id == 0 {
		return true
	}
	if !live(id) {
		return false
	}
	dup := make(seg, len(segTable.segs[id]))
	copy(dup, segTable.segs[id])
	segTable.segs[0] = dup
	return true
}

// ZeroLen returns the current length of segment zero, used by the engine
// to validate the program counter before each fetch.
func ZeroLen() uint32 {
	return uint32(len(segTable.segs[0]))
}

func live(id uint32) bool {
	return int(id) < len(segTable.segs) && segTable.segs[id] != nil
}

/*
 * um - Main process.
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

package main

import (
	"log/slog"
	"os"

	getopt "github.com/pborman/getopt/v2"

	"github.com/rcornwell/um/emu/cpu"
	"github.com/rcornwell/um/emu/device"
	"github.com/rcornwell/um/emu/loader"
	"github.com/rcornwell/um/util/logger"
)

// Exit codes, one per error kind in spec.md §7.
const (
	exitOK               = 0
	exitMalformedProgram = 2
	exitInvalidOpcode    = 3
	exitOutputRange      = 4
	exitUndefined        = 5
	exitIOFailure        = 6
)

var errLog *slog.Logger

func main() {
	os.Exit(run())
}

func run() int {
	optLogFile := getopt.StringLong("log", 'l', "", "Diagnostic log file (defaults to standard error only)")
	optHelp := getopt.BoolLong("help", 'h', "Help")
	getopt.SetParameters("[program-file]")
	getopt.Parse()

	if *optHelp {
		getopt.Usage()
		return exitOK
	}

	var file *os.File
	if *optLogFile != "" {
		var err error
		file, err = os.Create(*optLogFile)
		if err != nil {
			// Diagnostics can't reach the log file; fall back to stderr only.
			file = nil
		}
	}
	errLog = slog.New(logger.NewHandler(file, &slog.HandlerOptions{Level: slog.LevelInfo}))

	var path string
	if args := getopt.Args(); len(args) > 0 {
		path = args[0]
	}

	program, err := loader.Load(path)
	if err != nil {
		errLog.Error("could not load program", "error", err.Error())
		return exitMalformedProgram
	}

	port := device.New(os.Stdin, os.Stdout)
	cpu.Init(program, port)

	code := cpu.Run()
	if ferr := port.Flush(); ferr != nil && code != cpu.CodeIOFailure {
		errLog.Error("flushing standard output", "error", ferr.Error())
		return exitIOFailure
	}

	return exitForCode(code)
}

// exitForCode maps an engine outcome to the CLI's process exit status and,
// for a fatal one, logs the program counter and opcode it occurred at.
func exitForCode(code cpu.Code) int {
	switch code {
	case cpu.CodeHalt:
		return exitOK
	case cpu.CodeInvalidOpcode:
		logFault("invalid opcode")
		return exitInvalidOpcode
	case cpu.CodeOutputRange:
		logFault("output value exceeds a byte")
		return exitOutputRange
	case cpu.CodeUndefined:
		logFault("undefined behavior")
		return exitUndefined
	case cpu.CodeIOFailure:
		logFault("I/O failure")
		return exitIOFailure
	default:
		logFault("unknown engine outcome")
		return exitUndefined
	}
}

func logFault(kind string) {
	pc, opcode, reason := cpu.Diagnostics()
	errLog.Error(kind, "pc", pc, "opcode", opcode, "reason", reason)
}

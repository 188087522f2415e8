// Entry point for the slox interpreter.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"runtime"
	"runtime/pprof"
	"runtime/trace"
	"strings"

	"github.com/slox-lang/slox/ast"
	"github.com/slox-lang/slox/interpreter"
	"github.com/slox-lang/slox/parser"
	"github.com/slox-lang/slox/resolver"
)

var (
	cmd      = flag.String("c", "", "Program passed in as string")
	printAST = flag.Bool("p", false, "Print the AST only")

	cpuProfile = flag.String("cpuprofile", "", "Write a CPU profile to the specified file before exiting.")
	memProfile = flag.String("memprofile", "", "Write an allocation profile to the file before exiting.")
	traceFile  = flag.String("trace", "", "Write an execution trace to the specified file before exiting.")
)

// nolint:revive
func Usage() {
	fmt.Fprintf(flag.CommandLine.Output(), "Usage: slox [options] script\n")
	fmt.Fprintf(flag.CommandLine.Output(), "\n")
	fmt.Fprintf(flag.CommandLine.Output(), "Options:\n")
	flag.PrintDefaults()
}

func main() {
	log.SetFlags(0)

	flag.Usage = Usage
	flag.Parse()

	if *cpuProfile != "" {
		f, err := os.Create(*cpuProfile)
		if err != nil {
			log.Fatalf("failed to create CPU profile: %s", err)
		}
		defer func() {
			if err := f.Close(); err != nil {
				log.Fatalf("failed to close CPU profile: %s", err)
			}
		}()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatalf("failed to start CPU profile: %s", err)
		}
		defer pprof.StopCPUProfile()
	}
	if *memProfile != "" {
		defer func() {
			f, err := os.Create(*memProfile)
			if err != nil {
				log.Fatalf("failed to create memory profile: %s", err)
			}
			defer func() {
				if err := f.Close(); err != nil {
					log.Fatalf("failed to close memory profile: %s", err)
				}
			}()
			runtime.GC()
			if err := pprof.WriteHeapProfile(f); err != nil {
				log.Fatalf("failed to write memory profile: %s", err)
			}
		}()
	}
	if *traceFile != "" {
		f, err := os.Create(*traceFile)
		if err != nil {
			log.Fatalf("failed to create trace output file: %s", err)
		}
		defer func() {
			if err := f.Close(); err != nil {
				log.Fatalf("failed to close trace file: %s", err)
			}
		}()

		if err := trace.Start(f); err != nil {
			log.Fatalf("failed to start trace: %s", err)
		}
		defer trace.Stop()
	}

	if *cmd != "" {
		if err := run(strings.NewReader(*cmd), "<string>"); err != nil {
			os.Exit(1)
		}
		return
	}

	switch len(flag.Args()) {
	case 0:
		fmt.Fprintln(os.Stderr, "script file was not provided")
		os.Exit(1)
	case 1:
		if err := runFile(flag.Arg(0)); err != nil {
			os.Exit(1)
		}
	default:
		flag.Usage()
		os.Exit(2)
	}
}

func runFile(name string) error {
	f, err := os.Open(name)
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()
	return run(f, name)
}

// run parses, resolves, and interprets the source code read from r. All syntax and runtime errors are reported
// to stderr; a non-nil error is returned if any occurred.
func run(r io.Reader, filename string) error {
	program, err := parser.Parse(r, filename)
	if *printAST {
		ast.Print(program)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
		return err
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}
	hopsByTok, err := resolver.Resolve(program)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}
	return interpreter.New().Interpret(program, hopsByTok)
}

// Package main provides the scene command-line tool, which plays YAML scene
// files through a stage.
//
// Usage:
//
//	scene run <file>        Play a scene in real time, printing each frame
//	scene snapshot <file>   Play a scene offline and print its final frame
//	scene validate <file>   Check a scene file without playing it
//	scene version           Print version information
//
// Examples:
//
//	scene run --fps 30 demo.yaml
//	scene run --final --metrics-addr :9090 demo.yaml
//	scene snapshot --frames 10 demo.yaml
package main

import (
	"fmt"
	"os"
)

const version = "0.1.0"

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// A tiny ahead-of-time compiler for x86_64 and aarch64
package main

import "os"

func main() {
	if err := NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

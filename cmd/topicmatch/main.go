// Command topicmatch validates and matches MQTT topics from the command line.
//
// Usage:
//
//	topicmatch validate --role filter <topic>...
//	topicmatch match <filter> <topic>
//	topicmatch find --filters filters.yaml <topic>...
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

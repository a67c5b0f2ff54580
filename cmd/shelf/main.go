// Command shelf manages a library catalog backed by a flat-file archive.
package main

import "github.com/bookstead/shelf/internal/cli"

func main() {
	cli.Execute()
}

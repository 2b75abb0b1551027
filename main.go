// main.go
package main

import (
	"os"

	"movie-reviews/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

package main

import (
	"os"

	"github.com/dylanjwolff/linepeek/preview"
)

func main() {
	preview.Run(os.Stdout, os.Args[1:])
}

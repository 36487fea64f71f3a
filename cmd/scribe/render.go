package main

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

const (
	ansiReset = "\x1b[0m"
	ansiRed   = "\x1b[31m"
	ansiGreen = "\x1b[32m"
)

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func availabilityLabel(available, colorize bool) string {
	if available {
		if colorize {
			return ansiGreen + "yes" + ansiReset
		}
		return "yes"
	}
	if colorize {
		return ansiRed + "no" + ansiReset
	}
	return "no"
}

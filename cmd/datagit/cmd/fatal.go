package cmd

import (
	"fmt"
	"io"
	"log"
	"os"
)

const (
	// exitUnmerged is the exit code of a merge which left the destination untouched
	exitUnmerged = 2
)

var (
	// globals used to patch over calls to os.Exit() during test

	logFatalln = log.Fatalln
	logFatalf  = log.Fatalf
	osExit     = os.Exit

	// stdout receives the output of commands. Informative messages go to the log, on stderr.
	stdout io.Writer = os.Stdout
)

func wrapFatalln(msg string, err error) {
	if err == nil {
		logFatalln(msg)
	} else {
		logFatalf("%v", fmt.Errorf(msg+": %w", err))
	}
}

func wrapFatalWithCodef(code int, format string, args ...interface{}) {
	_, _ = fmt.Fprintf(os.Stderr, format+"\n", args...)
	osExit(code)
}

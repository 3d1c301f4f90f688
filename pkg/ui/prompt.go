package ui

import (
	"bufio"
	"fmt"
	"io"
)

// WaitForEnter prints msg and blocks until a line (or EOF) is read from in.
func WaitForEnter(in io.Reader, out io.Writer, msg string) {
	_, _ = fmt.Fprint(out, msg)
	_, _ = bufio.NewReader(in).ReadString('\n')
}

package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

var errStdinUnavailable = errors.New("stdin unavailable")

// PromptSecret writes prompt to out and reads one line from stdin with
// terminal echo switched off.
func PromptSecret(stdin *os.File, out io.Writer, prompt string) ([]byte, error) {
	if stdin == nil {
		return nil, errStdinUnavailable
	}
	fmt.Fprint(out, prompt)
	defer fmt.Fprintln(out)

	restore, err := disableEcho(stdin)
	if err != nil {
		return nil, err
	}
	defer restore()

	return readLine(stdin)
}

func readLine(input io.Reader) ([]byte, error) {
	line, err := bufio.NewReader(input).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return []byte(strings.TrimRight(line, "\r\n")), nil
}

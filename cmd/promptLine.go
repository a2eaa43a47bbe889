package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// promptLine writes the label to stderr and reads one line from stdin.
// Used for first-run identity prompts and for the broker password when no
// cached token is usable. Tests stub promptFunc/promptSecretFunc instead.
func promptLine(label string) string {
	_, _ = fmt.Fprint(os.Stderr, label)
	line, _ := bufio.NewReader(os.Stdin).ReadString('\n')
	return strings.TrimSpace(line)
}

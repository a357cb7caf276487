package admin

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

// ask prints label and reads one trimmed line. An empty answer yields def.
// A final line without a newline is accepted.
func (a *App) ask(label, def string) (string, error) {
	if def != "" {
		label = fmt.Sprintf("%s [%s]", label, def)
	}
	if _, err := fmt.Fprintf(a.out, "%s: ", label); err != nil {
		return "", err
	}

	line, err := a.reader.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}

	if answer := strings.TrimSpace(line); answer != "" {
		return answer, nil
	}
	return def, nil
}

// askPassword reads a password from the terminal without echo. Callers wipe
// the result with common.WipeByteArray.
func (a *App) askPassword() ([]byte, error) {
	if _, err := fmt.Fprint(a.out, "Password: "); err != nil {
		return nil, err
	}
	pw, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(a.out)
	if err != nil {
		return nil, fmt.Errorf("read password: %w", err)
	}
	if len(pw) == 0 {
		return nil, errors.New("empty password")
	}
	return pw, nil
}

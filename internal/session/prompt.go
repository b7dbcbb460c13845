package session

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
)

type promptValidator func(string) (bool, string)

type promptConfig struct {
	tries     int
	validator promptValidator
}

type promptOption func(*promptConfig)

func withValidator(v promptValidator) promptOption {
	return func(cfg *promptConfig) {
		cfg.validator = v
	}
}

func withMaxTries(i int) promptOption {
	return func(cfg *promptConfig) {
		cfg.tries = i
	}
}

// prompt writes a prompt and reads back one line, re-asking until the
// validator accepts it or the try limit is hit.
func prompt(rw io.ReadWriter, text string, opts ...promptOption) (string, error) {
	config := &promptConfig{}
	for _, opt := range opts {
		opt(config)
	}

	br := bufio.NewReader(rw)

	tries := 0
	for {
		if _, err := rw.Write([]byte(text)); err != nil {
			return "", err
		}

		line, err := br.ReadString('\n')
		if err != nil {
			return "", err
		}
		input := trimLine(line)

		if config.validator != nil {
			ok, msg := config.validator(input)
			if !ok {
				if _, err := rw.Write([]byte(msg)); err != nil {
					return "", err
				}

				tries++
				if config.tries > 0 && config.tries == tries {
					return "", fmt.Errorf("too many tries")
				}
				continue
			}
		}

		return input, nil
	}
}

var namePattern = regexp.MustCompile(`^[a-zA-Z0-9]{1,12}$`)

// promptName asks for a character name until a well-formed one is given.
func promptName(rw io.ReadWriter) (string, error) {
	return prompt(rw, "What is your name? ",
		withMaxTries(5),
		withValidator(func(s string) (bool, string) {
			if !namePattern.MatchString(s) {
				return false, "Names are 1-12 letters or digits.\n"
			}
			return true, ""
		}),
	)
}

func trimLine(s string) string {
	for len(s) > 0 && (s[len(s)-1] == '\n' || s[len(s)-1] == '\r') {
		s = s[:len(s)-1]
	}
	return s
}

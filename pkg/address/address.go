// Package address collects a US property address from interactive input.
package address

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrNoInput is returned when input ends before a non-empty value is entered.
var ErrNoInput = errors.New("input ended before a value was entered")

const emptyInputMessage = "Input cannot be empty. Please try again."

// maxLineBytes bounds one line of input, long enough for pasted questions.
const maxLineBytes = 1 << 20

// Address is a free-text US address. No structural validation is applied.
type Address struct {
	Street string
	City   string
	State  string
	Zip    string
}

// String joins the components as "street, city, state, zip".
func (a Address) String() string {
	return strings.Join([]string{a.Street, a.City, a.State, a.Zip}, ", ")
}

// Collector prompts for values on Out and reads answers line by line from In.
type Collector struct {
	scanner *bufio.Scanner
	out     io.Writer
}

// NewCollector returns a Collector reading from in and prompting on out.
func NewCollector(in io.Reader, out io.Writer) *Collector {
	if out == nil {
		out = io.Discard
	}
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	return &Collector{scanner: scanner, out: out}
}

// ReadNonEmpty prompts until a line with non-whitespace content is entered
// and returns it trimmed.
func (c *Collector) ReadNonEmpty(prompt string) (string, error) {
	for {
		_, _ = fmt.Fprint(c.out, prompt)
		if !c.scanner.Scan() {
			if err := c.scanner.Err(); err != nil {
				return "", fmt.Errorf("read input: %w", err)
			}
			return "", ErrNoInput
		}

		value := strings.TrimSpace(c.scanner.Text())
		if value != "" {
			return value, nil
		}
		_, _ = fmt.Fprintln(c.out, emptyInputMessage)
	}
}

// CollectAddress prompts for street, city, state and zip in that order.
func (c *Collector) CollectAddress() (Address, error) {
	var a Address
	fields := []struct {
		prompt string
		dst    *string
	}{
		{"Enter the street address: ", &a.Street},
		{"Enter the city: ", &a.City},
		{"Enter the state: ", &a.State},
		{"Enter the zip code: ", &a.Zip},
	}
	for _, f := range fields {
		v, err := c.ReadNonEmpty(f.prompt)
		if err != nil {
			return Address{}, err
		}
		*f.dst = v
	}
	return a, nil
}

// CollectPropertyID prompts for the listing's zpid.
func (c *Collector) CollectPropertyID() (string, error) {
	return c.ReadNonEmpty("Enter the properties zpid from zillow.com: ")
}

// Scanner exposes the underlying line scanner so later prompts can keep
// reading from the same buffered input.
func (c *Collector) Scanner() *bufio.Scanner {
	return c.scanner
}

package settings

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Setup prompts the user for each setting, starting from the current settings. Pressing <ENTER> keeps the current
// value. Entering a single space unsets it. An entry that can't be parsed also unsets the value.
//
// Setup does not validate the resulting settings.
func Setup(r io.Reader, w io.Writer, current Weather) (Weather, error) {
	p := prompter{scanner: bufio.NewScanner(r), w: w}
	_, _ = fmt.Fprintln(w, "Weather setup.")
	_, _ = fmt.Fprintln(w, "Press <ENTER> to skip an entry and keep the current value.")
	_, _ = fmt.Fprintln(w, "Press <SPACE> then <ENTER> to set an entry to empty (unset).")

	var next Weather
	var err error
	if next.APIKey, err = prompt(&p, "weatherapi.com API Key", current.APIKey, stringValue, parseString); err != nil {
		return current, err
	}
	if next.Query, err = prompt(&p, "query", current.Query, stringValue, parseString); err != nil {
		return current, err
	}
	if next.Metric, err = prompt(&p, "use metric?", current.Metric, boolValue, strconv.ParseBool); err != nil {
		return current, err
	}
	if next.CoolAbove, err = prompt(&p, "cool above", current.CoolAbove, floatValue, parseFloat); err != nil {
		return current, err
	}
	if next.HeatBelow, err = prompt(&p, "heat below", current.HeatBelow, floatValue, parseFloat); err != nil {
		return current, err
	}
	if next.OffAbove, err = prompt(&p, "turn hvac off above", current.OffAbove, floatValue, parseFloat); err != nil {
		return current, err
	}
	if next.OffBelow, err = prompt(&p, "turn hvac off below", current.OffBelow, floatValue, parseFloat); err != nil {
		return current, err
	}
	if next.Interval, err = prompt(&p, "interval in minutes", current.Interval, intValue, strconv.Atoi); err != nil {
		return current, err
	}
	return next, nil
}

type prompter struct {
	scanner *bufio.Scanner
	w       io.Writer
}

func (p *prompter) readLine(msg, current string) (string, error) {
	_, _ = fmt.Fprintf(p.w, "%s (current value: %s)> ", msg, current)
	if !p.scanner.Scan() {
		if err := p.scanner.Err(); err != nil {
			return "", err
		}
		return "", fmt.Errorf("%s: %w", msg, io.ErrUnexpectedEOF)
	}
	return strings.TrimSuffix(p.scanner.Text(), "\r"), nil
}

func prompt[T any](p *prompter, msg string, current *T, format func(*T) string, parse func(string) (T, error)) (*T, error) {
	entry, err := p.readLine(msg, format(current))
	if err != nil {
		return nil, err
	}
	switch entry {
	case " ":
		return nil, nil
	case "":
		return current, nil
	}
	value, err := parse(entry)
	if err != nil {
		return nil, nil
	}
	return &value, nil
}

func parseString(s string) (string, error) {
	return s, nil
}

func parseFloat(s string) (float64, error) {
	return strconv.ParseFloat(s, 64)
}

// Package format renders timestamps for display.
package format

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Display styles understood by DateTime.
const (
	StyleFull   = "full"
	StyleMedium = "medium"
)

const (
	fullLayout     = "Monday January, 2, 2006 at 3:04PM"
	mediumLayout   = "Mon Jan, 02, 2006 3:04PM"
	showTimeLayout = "01/02/06, 15:04"
)

// ErrUnknownStyle is returned when DateTime is asked for a style it does not know.
var ErrUnknownStyle = errors.New("unknown datetime style")

// ParseError reports a timestamp that matched none of the accepted layouts.
type ParseError struct {
	Value string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse datetime %q: unrecognised format", e.Value)
}

// Accepted input layouts, most specific first.
var inputLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// Parse reads an ISO-8601-like timestamp. Values without a zone are taken as UTC.
func Parse(value string) (time.Time, error) {
	v := strings.TrimSpace(value)
	for _, layout := range inputLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t, nil
		}
	}
	return time.Time{}, &ParseError{Value: value}
}

// DateTime parses value and renders it in the requested style. An empty style means medium.
func DateTime(value, style string) (string, error) {
	t, err := Parse(value)
	if err != nil {
		return "", err
	}
	return Time(t, style)
}

// Time renders an already parsed time in the requested style.
func Time(t time.Time, style string) (string, error) {
	switch style {
	case StyleFull:
		return t.Format(fullLayout), nil
	case StyleMedium, "":
		return t.Format(mediumLayout), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownStyle, style)
	}
}

// ShowTime renders a show's start time in UTC the way listings display it, e.g. "05/21/19, 21:30".
func ShowTime(t time.Time) string {
	return t.UTC().Format(showTimeLayout)
}

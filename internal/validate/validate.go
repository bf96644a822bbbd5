package validate

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	reBarcode = regexp.MustCompile(`^[A-Za-z0-9-]{1,64}$`)
	reDate    = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	rePhone   = regexp.MustCompile(`^[0-9+() -]{3,20}$`)
	reEmail   = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
)

// ID parses a positive integer route/query parameter.
func ID(s string) (int64, bool) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	return n, err == nil && n > 0
}

// Name validates a displayable name with a reasonable max length.
func Name(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > 100 {
		return "", false
	}
	return s, true
}

func Phone(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", true // optional
	}
	return s, rePhone.MatchString(s)
}

func Email(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", true // optional
	}
	if len(s) > 100 {
		return "", false
	}
	return s, reEmail.MatchString(s)
}

func Barcode(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && reBarcode.MatchString(s)
}

// Date validates a YYYY-MM-DD report parameter.
func Date(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, reDate.MatchString(s)
}

// Limit clamps a result-count parameter to a sane window.
func Limit(s string, def, max int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return def
	}
	if n > max {
		return max
	}
	return n
}

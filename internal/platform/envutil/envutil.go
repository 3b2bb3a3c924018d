package envutil

import (
	"os"
	"strconv"
	"strings"
)

// String returns the trimmed value of name, or "" when unset.
func String(name string) string {
	return strings.TrimSpace(os.Getenv(name))
}

// Bool accepts 1/true/yes/on in any case; everything else is false.
func Bool(name string) bool {
	switch strings.ToLower(String(name)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}

func Float(name string, def float64) float64 {
	v := String(name)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}

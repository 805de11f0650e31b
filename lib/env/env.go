package env

import (
	"os"
)

func Test() bool {
	return os.Getenv("TEST_MODE") != ""
}

func Debug() bool {
	return os.Getenv("DEBUG") != ""
}

// Chaos controls how many random models the ddchaos property tests generate.
func Chaos() string {
	return os.Getenv("DOCDIAG_CHAOS_N")
}

package main

import (
	"strings"
	"testing"
)

func TestWatchRequiresDirectory(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	_, _, err := runCLI(t, "watch")
	if err == nil || !strings.Contains(err.Error(), "no watch directory") {
		t.Errorf("watch error = %v, want no watch directory", err)
	}
}

//go:build !windows
// +build !windows

package main_test

import (
	"os"
	"testing"

	main "constellation.io/devserve"
	"fortio.org/testscript"
)

func TestMain(m *testing.M) {
	os.Exit(testscript.RunMain(m, map[string]func() int{
		"devserve": main.Main,
	}))
}

func TestDevserveCli(t *testing.T) {
	testscript.Run(t, testscript.Params{Dir: "testdata"})
}

package main

import (
	"fmt"
	"io"
	"os/exec"
	"strings"

	oxhugo "github.com/loochao/ox-hugo"
)

// runDoctor reports whether pandoc is usable for citation processing.
func runDoctor(w io.Writer, flags *cliFlags) error {
	pandoc := flags.document.pandoc
	if pandoc == "" {
		pandoc = "pandoc"
	}

	path, err := exec.LookPath(pandoc)
	if err != nil {
		fmt.Fprintf(w, "pandoc: NOT FOUND (%q)\n", pandoc)
		return fmt.Errorf("%w: %q", oxhugo.ErrPandocNotFound, pandoc)
	}
	fmt.Fprintf(w, "pandoc: %s\n", path)

	out, err := exec.Command(path, "--version").CombinedOutput() // #nosec G204 -- path comes from LookPath
	if err == nil {
		version, _, _ := strings.Cut(string(out), "\n")
		fmt.Fprintf(w, "version: %s\n", version)
	}
	return nil
}

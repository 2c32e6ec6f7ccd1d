package reports

import (
	"bytes"
	"io"
	"os"

	"github.com/gookit/color"
)

// captureOutput runs f and returns what it wrote through gookit/color followed by what it wrote to stdout.
func captureOutput(f func()) string {
	var colored bytes.Buffer
	color.SetOutput(&colored)

	stdout := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w
	defer func() {
		os.Stdout = stdout
		color.ResetOutput()
	}()

	done := make(chan struct{})
	go func() {
		defer close(done)
		f()
		_ = w.Close()
	}()

	var plain bytes.Buffer
	_, _ = io.Copy(&plain, r)
	<-done
	return colored.String() + plain.String()
}

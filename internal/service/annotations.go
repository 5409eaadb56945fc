package service

import (
	"fmt"
	"io"
	"strings"
)

// Annotator emits workflow commands that surface as annotations in the run UI.
type Annotator struct {
	out     io.Writer
	enabled bool
}

// NewAnnotator creates an Annotator writing to out. A disabled annotator
// writes nothing.
func NewAnnotator(out io.Writer, enabled bool) *Annotator {
	return &Annotator{out: out, enabled: enabled}
}

// Warning emits a ::warning:: command.
func (a *Annotator) Warning(msg string) {
	a.emit("warning", msg)
}

// Error emits an ::error:: command.
func (a *Annotator) Error(msg string) {
	a.emit("error", msg)
}

func (a *Annotator) emit(level, msg string) {
	if a == nil || !a.enabled {
		return
	}
	fmt.Fprintf(a.out, "::%s::%s\n", level, escapeData(msg))
}

var dataEscaper = strings.NewReplacer("%", "%25", "\r", "%0D", "\n", "%0A")

func escapeData(s string) string {
	return dataEscaper.Replace(s)
}

package app

import (
	"errors"

	"github.com/Faultbox/twistview/internal/engine/shader"
	"github.com/Faultbox/twistview/internal/engine/window"
)

// ErrorKind classifies startup failures for the user-facing message.
type ErrorKind int

const (
	KindOther ErrorKind = iota
	KindContextUnavailable
	KindShaderCompile
	KindShaderLink
)

func (k ErrorKind) String() string {
	switch k {
	case KindContextUnavailable:
		return "context unavailable"
	case KindShaderCompile:
		return "shader compile"
	case KindShaderLink:
		return "shader link"
	default:
		return "other"
	}
}

// KindOf returns the kind of a startup error.
func KindOf(err error) ErrorKind {
	var compileErr *shader.CompileError
	var linkErr *shader.LinkError

	switch {
	case errors.Is(err, window.ErrContextUnavailable):
		return KindContextUnavailable
	case errors.As(err, &compileErr):
		return KindShaderCompile
	case errors.As(err, &linkErr):
		return KindShaderLink
	default:
		return KindOther
	}
}

// UserMessage is the text shown once when startup fails. Shader failures
// carry the compiler or linker diagnostic.
func UserMessage(err error) string {
	if KindOf(err) == KindContextUnavailable {
		return "Sorry, could not get a graphics context."
	}
	return "Sorry, could not initialize the graphics context: " + err.Error()
}

// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// WireframeVertexShader transforms surface positions by the combined
// ModelViewProjectionMatrix uniform.
//
//go:embed wireframe.vert
var WireframeVertexShader string

// WireframeFragmentShader fills every fragment with the color uniform.
//
//go:embed wireframe.frag
var WireframeFragmentShader string

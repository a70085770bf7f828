// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// DiscVertexShader places and stretches the instanced item discs.
//
//go:embed disc.vert
var DiscVertexShader string

// DiscFragmentShader samples each disc's cell from the item atlas.
//
//go:embed disc.frag
var DiscFragmentShader string

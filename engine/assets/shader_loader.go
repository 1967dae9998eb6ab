package assets

import (
	"fmt"
	"os"
	"path/filepath"
)

// DefaultShaderDir is where shaders live relative to the working directory.
var DefaultShaderDir = filepath.Join("assets", "shaders")

// LoadShader reads a GLSL file from dir into a null-terminated string for OpenGL.
func LoadShader(dir, name string) (string, error) {
	path := filepath.Join(dir, name)
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("load shader %q: %w", name, err)
	}
	if len(b) == 0 {
		return "", fmt.Errorf("load shader %q: empty file", name)
	}
	// Ensure null termination for gl.Str
	if b[len(b)-1] != 0 {
		b = append(b, 0)
	}
	return string(b), nil
}

// ShaderPair is a vertex + fragment source couple.
type ShaderPair struct {
	Dir      string
	Vertex   string
	Fragment string
}

// Load reads both stages.
func (p ShaderPair) Load() (vs, fs string, err error) {
	if vs, err = LoadShader(p.Dir, p.Vertex); err != nil {
		return "", "", err
	}
	if fs, err = LoadShader(p.Dir, p.Fragment); err != nil {
		return "", "", err
	}
	return vs, fs, nil
}

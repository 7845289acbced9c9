// SPDX-License-Identifier: Unlicense OR MIT

package gl

import (
	"errors"
	"fmt"
	"strings"
)

// CompileShader creates a shader of type typ from src and compiles it. The
// shader is deleted again if compilation fails.
func CompileShader(f Functions, typ Enum, src string) (Shader, error) {
	sh := f.CreateShader(typ)
	if !sh.Valid() {
		return Shader{}, errors.New("glCreateShader failed")
	}
	f.ShaderSource(sh, src)
	f.CompileShader(sh)
	if f.GetShaderi(sh, COMPILE_STATUS) == 0 {
		log := f.GetShaderInfoLog(sh)
		f.DeleteShader(sh)
		return Shader{}, fmt.Errorf("shader compilation failed: %s", strings.TrimSpace(log))
	}
	return sh, nil
}

// LinkProgram creates a program from the vertex and fragment shaders, binding
// attribs[i] to attribute location i before linking.
func LinkProgram(f Functions, vs, fs Shader, attribs []string) (Program, error) {
	prog := f.CreateProgram()
	if !prog.Valid() {
		return Program{}, errors.New("glCreateProgram failed")
	}
	f.AttachShader(prog, vs)
	f.AttachShader(prog, fs)
	for i, a := range attribs {
		if a == "" {
			continue
		}
		f.BindAttribLocation(prog, Attrib(i), a)
	}
	f.LinkProgram(prog)
	if f.GetProgrami(prog, LINK_STATUS) == 0 {
		log := f.GetProgramInfoLog(prog)
		f.DeleteProgram(prog)
		return Program{}, fmt.Errorf("program link failed: %s", strings.TrimSpace(log))
	}
	return prog, nil
}

func ParseGLVersion(glVer string) (version [2]int, gles bool, err error) {
	var ver [2]int
	if _, err := fmt.Sscanf(glVer, "OpenGL ES %d.%d", &ver[0], &ver[1]); err == nil {
		return ver, true, nil
	} else if _, err := fmt.Sscanf(glVer, "WebGL %d.%d", &ver[0], &ver[1]); err == nil {
		// WebGL major version v corresponds to OpenGL ES version v + 1
		ver[0]++
		return ver, true, nil
	} else if _, err := fmt.Sscanf(glVer, "%d.%d", &ver[0], &ver[1]); err == nil {
		return ver, false, nil
	}
	return ver, false, fmt.Errorf("failed to parse OpenGL ES version (%s)", glVer)
}

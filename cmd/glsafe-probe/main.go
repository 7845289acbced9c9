// SPDX-License-Identifier: Unlicense OR MIT

// Command glsafe-probe opens a hidden OpenGL 3.3 context, wraps it in a
// glsafe device and reports the device limits. It then renders a clear
// color into an offscreen framebuffer and reads it back to check that the
// driver and the binding layer agree.
package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"

	"gioui.org/glsafe"
	"gioui.org/glsafe/gl"
	"gioui.org/glsafe/gl/glcore"
)

var (
	configPath = flag.String("config", "", "TOML configuration file")
	verbose    = flag.Bool("v", false, "log device and object events")
	outPath    = flag.String("o", "", "write the rendered framebuffer to this PNG file")
	size       = flag.Int("size", 64, "framebuffer size in pixels")
)

func init() {
	// OpenGL contexts are bound to the thread that made them current.
	runtime.LockOSThread()
}

func main() {
	flag.Parse()
	if err := mainErr(); err != nil {
		fmt.Fprintf(os.Stderr, "glsafe-probe: %v\n", err)
		os.Exit(1)
	}
}

func mainErr() error {
	if *verbose {
		glsafe.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}
	cfg := glsafe.DefaultConfig()
	if *configPath != "" {
		var err error
		cfg, err = glsafe.LoadConfig(*configPath)
		if err != nil {
			return err
		}
	}
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("glfw: %w", err)
	}
	defer glfw.Terminate()
	glfw.WindowHint(glfw.Visible, glfw.False)
	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	win, err := glfw.CreateWindow(*size, *size, "glsafe-probe", nil, nil)
	if err != nil {
		return fmt.Errorf("glfw: %w", err)
	}
	defer win.Destroy()
	win.MakeContextCurrent()

	funcs, err := glcore.Init()
	if err != nil {
		return err
	}
	d, err := glsafe.NewDevice(funcs, nil, cfg)
	if err != nil {
		var lerr *glsafe.LimitError
		if errors.As(err, &lerr) {
			return fmt.Errorf("driver %q is not supported: %w", funcs.GetString(gl.VERSION), err)
		}
		return err
	}
	defer d.Release()
	lim := d.Limits()
	fmt.Printf("version:               %s\n", funcs.GetString(gl.VERSION))
	fmt.Printf("max vertex attribs:    %d\n", lim.MaxVertexAttribs)
	fmt.Printf("max draw buffers:      %d\n", lim.MaxDrawBuffers)
	fmt.Printf("max color attachments: %d\n", lim.MaxColorAttachments)
	fmt.Printf("max texture units:     %d\n", lim.MaxTextureUnits)
	fmt.Printf("max texture size:      %d\n", lim.MaxTextureSize)

	img, err := render(d, *size)
	if err != nil {
		return err
	}
	if got := img.RGBAAt(0, 0); got.R != 0xff || got.G != 0 || got.B != 0xff {
		return fmt.Errorf("read back %v, expected magenta", got)
	}
	fmt.Println("readback:              ok")
	if *outPath != "" {
		f, err := os.Create(*outPath)
		if err != nil {
			return err
		}
		if err := png.Encode(f, img); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	}
	return nil
}

func render(d *glsafe.Device, size int) (*image.RGBA, error) {
	tex, err := d.Textures().New2D(gl.RGBA8, size, size)
	if err != nil {
		return nil, err
	}
	defer d.Textures().Delete(tex)
	fb, err := d.Framebuffers().Allocate(glsafe.FramebufferDesc{
		Colors: []glsafe.ColorAttachment{glsafe.ColorTexture2D{Texture: tex}},
	})
	if err != nil {
		return nil, err
	}
	defer d.Framebuffers().Delete(fb)
	if err := d.Framebuffers().Bind(fb); err != nil {
		return nil, err
	}
	r := image.Rect(0, 0, size, size)
	if err := d.State().SetViewport(r); err != nil {
		return nil, err
	}
	if err := d.Clearing().ClearColor(1, 0, 1, 1); err != nil {
		return nil, err
	}
	return d.Framebuffers().ReadPixels(fb, r)
}

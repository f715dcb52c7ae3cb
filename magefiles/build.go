//go:build mage

package main

import (
	"fmt"
	"path/filepath"

	"github.com/magefile/mage/mg"
)

const (
	binaryName = "nanite"
	shaderDir  = "assets/shaders"
)

type Build mg.Namespace

// Tidies the module and builds the testbed binary into bin/.
func (Build) Binary() error {
	if err := goTidy(); err != nil {
		return err
	}
	if _, err := executeCmd("go", withArgs("build", "-o", filepath.Join("bin", binaryName), "."), withStream()); err != nil {
		return err
	}
	return nil
}

// Validates every GLSL source under assets/shaders.
func (Build) Shaders() error {
	return buildShaders()
}

func buildShaders() error {
	sources, err := filepath.Glob(filepath.Join(shaderDir, "*.vert"))
	if err != nil {
		return err
	}
	frags, err := filepath.Glob(filepath.Join(shaderDir, "*.frag"))
	if err != nil {
		return err
	}
	sources = append(sources, frags...)
	if len(sources) == 0 {
		return fmt.Errorf("no shader sources found in %s", shaderDir)
	}
	for _, src := range sources {
		if _, err := executeCmd("glslangValidator", withArgs(src), withStream()); err != nil {
			return err
		}
	}
	return nil
}

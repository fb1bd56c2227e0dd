// Package cubemap wraps a GL cube map array texture.
package cubemap

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// FacesPerCube is the number of array layers one cube occupies.
const FacesPerCube = 6

// Array is a TEXTURE_CUBE_MAP_ARRAY with one cube per probe slot.
type Array struct {
	texture    uint32
	resolution int32
	layers     int32
	mips       int32
}

// New allocates storage for layers cubes of resolution texels with mips levels.
func New(resolution, layers, mips int32) (*Array, error) {
	if resolution < 1 || layers < 1 || mips < 1 {
		return nil, fmt.Errorf("invalid cube map array %dx%d, %d mips", resolution, layers, mips)
	}
	if mips > MaxMips(resolution) {
		return nil, fmt.Errorf("%d mips exceed what a %d texel face supports", mips, resolution)
	}

	a := &Array{resolution: resolution, layers: layers, mips: mips}

	gl.GenTextures(1, &a.texture)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP_ARRAY, a.texture)

	size := resolution
	for level := int32(0); level < mips; level++ {
		gl.TexImage3D(gl.TEXTURE_CUBE_MAP_ARRAY, level, gl.RGBA8, size, size, layers*FacesPerCube, 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)
		size /= 2
	}

	gl.TexParameteri(gl.TEXTURE_CUBE_MAP_ARRAY, gl.TEXTURE_BASE_LEVEL, 0)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP_ARRAY, gl.TEXTURE_MAX_LEVEL, mips-1)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP_ARRAY, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP_ARRAY, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP_ARRAY, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP_ARRAY, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP_ARRAY, 0)

	if errCode := gl.GetError(); errCode != gl.NO_ERROR {
		a.Destroy()
		return nil, fmt.Errorf("allocating cube map array: GL error 0x%x", errCode)
	}

	return a, nil
}

// Resolution returns the mip 0 face size.
func (a *Array) Resolution() int32 { return a.resolution }

// Layers returns the number of cubes.
func (a *Array) Layers() int32 { return a.layers }

// Mips returns the number of levels.
func (a *Array) Mips() int32 { return a.mips }

// Texture returns the GL texture name.
func (a *Array) Texture() uint32 { return a.texture }

// Bind binds the array to the given texture unit for sampling.
func (a *Array) Bind(unit uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP_ARRAY, a.texture)
}

// Destroy releases the texture.
func (a *Array) Destroy() {
	if a.texture != 0 {
		gl.DeleteTextures(1, &a.texture)
		a.texture = 0
	}
}

// LayerFace returns the array layer of a face of cube.
func LayerFace(cube, face int32) int32 {
	return cube*FacesPerCube + face
}

// MaxMips returns the number of levels down to a 1x1 face.
func MaxMips(resolution int32) int32 {
	n := int32(1)
	for resolution > 1 {
		resolution /= 2
		n++
	}
	return n
}

package capture

import "github.com/go-gl/mathgl/mgl32"

// FaceCount is the number of faces in a cube map.
const FaceCount = 6

// Cube faces in GL_TEXTURE_CUBE_MAP_POSITIVE_X + i order.
const (
	FacePosX = iota
	FaceNegX
	FacePosY
	FaceNegY
	FacePosZ
	FaceNegZ
)

// FaceLook is the view direction for each face.
var FaceLook = [FaceCount]mgl32.Vec3{
	{1, 0, 0},
	{-1, 0, 0},
	{0, 1, 0},
	{0, -1, 0},
	{0, 0, 1},
	{0, 0, -1},
}

// FaceUp is the up vector for each face, following the GL cube map convention.
var FaceUp = [FaceCount]mgl32.Vec3{
	{0, -1, 0},
	{0, -1, 0},
	{0, 0, 1},
	{0, 0, -1},
	{0, -1, 0},
	{0, -1, 0},
}

// FaceName returns a short name such as "+x".
func FaceName(face int) string {
	names := [FaceCount]string{"+x", "-x", "+y", "-y", "+z", "-z"}
	if face < 0 || face >= FaceCount {
		return "?"
	}
	return names[face]
}

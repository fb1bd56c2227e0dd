package shader

import (
	"strings"
	"testing"
)

func TestTexelSize(t *testing.T) {
	tests := []struct {
		res  int32
		want float32
	}{
		{512, 1.0 / 512},
		{2, 0.5},
		{1, 1},
		{0, 1},
	}
	for _, tt := range tests {
		if got := TexelSize(tt.res); got != tt.want {
			t.Errorf("TexelSize(%d) = %f, want %f", tt.res, got, tt.want)
		}
	}
}

func TestMipSourcesDeclareUniforms(t *testing.T) {
	for _, name := range []string{"uSource", "uTexelSize"} {
		if !strings.Contains(mipFragmentSrc, "uniform") || !strings.Contains(mipFragmentSrc, name) {
			t.Errorf("fragment source is missing uniform %s", name)
		}
	}
	if !strings.HasPrefix(mipVertexSrc, "#version 410 core") {
		t.Error("vertex source must target GLSL 4.10 core")
	}
}

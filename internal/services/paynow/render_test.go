package paynow

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	appErrors "splitpay/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodePNG(t *testing.T, data []byte) image.Image {
	t.Helper()
	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	return img
}

func rgba(c color.Color) color.RGBA {
	return color.RGBAModel.Convert(c).(color.RGBA)
}

func TestQRRenderer_Render(t *testing.T) {
	r, err := NewQRRenderer(RenderOptions{})
	require.NoError(t, err)

	data, err := r.Render(sampleMobilePayload, "purple")
	require.NoError(t, err)

	img := decodePNG(t, data)
	b := img.Bounds()
	assert.Equal(t, b.Dx(), b.Dy())
	assert.Zero(t, b.Dx()%DefaultModuleSize)

	// Quiet zone is white; the first finder module sits just inside it.
	assert.Equal(t, color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}, rgba(img.At(5, 5)))
	assert.Equal(t, brandColours["purple"], rgba(img.At(45, 45)))
}

func TestQRRenderer_RenderHexColour(t *testing.T) {
	r, err := NewQRRenderer(RenderOptions{ErrorCorrection: "M", ModuleSize: 10})
	require.NoError(t, err)

	data, err := r.Render(sampleMobilePayload, "#123456")
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{R: 0x12, G: 0x34, B: 0x56, A: 0xFF}, rgba(decodePNG(t, data).At(45, 45)))
}

func TestQRRenderer_RenderErrors(t *testing.T) {
	t.Run("unknown colour", func(t *testing.T) {
		r, err := NewQRRenderer(RenderOptions{})
		require.NoError(t, err)
		_, err = r.Render(sampleMobilePayload, "chartreuse-ish")
		assert.ErrorIs(t, err, appErrors.ErrValidation)
	})

	t.Run("forced version too small", func(t *testing.T) {
		r, err := NewQRRenderer(RenderOptions{Version: 1})
		require.NoError(t, err)
		_, err = r.Render(sampleMobilePayload, "black")
		assert.ErrorIs(t, err, appErrors.ErrRender)
	})
}

func TestNewQRRendererValidatesOptions(t *testing.T) {
	_, err := NewQRRenderer(RenderOptions{ErrorCorrection: "X"})
	assert.Error(t, err)

	_, err = NewQRRenderer(RenderOptions{Version: 41})
	assert.Error(t, err)

	_, err = NewQRRenderer(RenderOptions{Logo: []byte("not a png")})
	assert.Error(t, err)
}

func TestQRRenderer_RenderWithLogo(t *testing.T) {
	logo := image.NewRGBA(image.Rect(0, 0, 40, 10))
	for x := 0; x < 40; x++ {
		for y := 0; y < 10; y++ {
			logo.Set(x, y, color.RGBA{R: 0xFF, A: 0xFF})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, logo))

	plain, err := NewQRRenderer(RenderOptions{})
	require.NoError(t, err)
	branded, err := NewQRRenderer(RenderOptions{Logo: buf.Bytes()})
	require.NoError(t, err)

	a, err := plain.Render(sampleMobilePayload, "purple")
	require.NoError(t, err)
	b, err := branded.Render(sampleMobilePayload, "purple")
	require.NoError(t, err)

	assert.Greater(t, decodePNG(t, b).Bounds().Dx(), decodePNG(t, a).Bounds().Dx())
}

func TestParseBrandColour(t *testing.T) {
	tests := []struct {
		input   string
		want    color.RGBA
		wantErr bool
	}{
		{input: "purple", want: color.RGBA{R: 0x80, G: 0x00, B: 0x80, A: 0xFF}},
		{input: " Navy ", want: color.RGBA{R: 0x00, G: 0x00, B: 0x80, A: 0xFF}},
		{input: "#fff", want: color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}},
		{input: "#7C1A78", want: color.RGBA{R: 0x7C, G: 0x1A, B: 0x78, A: 0xFF}},
		{input: "#12345", wantErr: true},
		{input: "#zzzzzz", wantErr: true},
		{input: "mauve", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseBrandColour(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

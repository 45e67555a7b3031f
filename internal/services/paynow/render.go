package paynow

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"strconv"
	"strings"

	appErrors "splitpay/internal/errors"

	qrcode "github.com/skip2/go-qrcode"
	xdraw "golang.org/x/image/draw"
)

const (
	// DefaultModuleSize is the pixel width of one QR module.
	DefaultModuleSize = 10
)

// brandColours use the HTML 4 colour values.
var brandColours = map[string]color.RGBA{
	"purple": {R: 0x80, G: 0x00, B: 0x80, A: 0xFF},
	"black":  {R: 0x00, G: 0x00, B: 0x00, A: 0xFF},
	"navy":   {R: 0x00, G: 0x00, B: 0x80, A: 0xFF},
	"blue":   {R: 0x00, G: 0x00, B: 0xFF, A: 0xFF},
	"red":    {R: 0xFF, G: 0x00, B: 0x00, A: 0xFF},
	"maroon": {R: 0x80, G: 0x00, B: 0x00, A: 0xFF},
	"green":  {R: 0x00, G: 0x80, B: 0x00, A: 0xFF},
	"teal":   {R: 0x00, G: 0x80, B: 0x80, A: 0xFF},
}

// RenderOptions configures QRRenderer.
type RenderOptions struct {
	// Version forces a QR version (1-40). Zero picks the smallest version
	// that fits. A forced version too small for the payload is an error; the
	// renderer never escalates on its own.
	Version int
	// ErrorCorrection is one of L, M, Q, H. Empty means H.
	ErrorCorrection string
	// ModuleSize is pixels per module; defaults to DefaultModuleSize.
	ModuleSize int
	// Logo is an optional PNG composited beneath the code.
	Logo []byte
}

// QRRenderer turns payload strings into PNG images.
type QRRenderer struct {
	opts  RenderOptions
	level qrcode.RecoveryLevel
	logo  image.Image
}

func NewQRRenderer(opts RenderOptions) (*QRRenderer, error) {
	level, err := recoveryLevel(opts.ErrorCorrection)
	if err != nil {
		return nil, err
	}
	if opts.ModuleSize <= 0 {
		opts.ModuleSize = DefaultModuleSize
	}
	if opts.Version < 0 || opts.Version > 40 {
		return nil, fmt.Errorf("invalid QR version %d", opts.Version)
	}

	r := &QRRenderer{opts: opts, level: level}
	if len(opts.Logo) > 0 {
		logo, err := png.Decode(bytes.NewReader(opts.Logo))
		if err != nil {
			return nil, fmt.Errorf("failed to decode logo: %w", err)
		}
		r.logo = logo
	}
	return r, nil
}

func recoveryLevel(s string) (qrcode.RecoveryLevel, error) {
	switch strings.ToUpper(s) {
	case "", "H":
		return qrcode.Highest, nil
	case "Q":
		return qrcode.High, nil
	case "M":
		return qrcode.Medium, nil
	case "L":
		return qrcode.Low, nil
	default:
		return 0, fmt.Errorf("invalid error correction level %q", s)
	}
}

// Render draws payload in brandColour on white and returns PNG bytes.
func (r *QRRenderer) Render(payload, brandColour string) ([]byte, error) {
	fg, err := ParseBrandColour(brandColour)
	if err != nil {
		return nil, appErrors.Wrap(appErrors.ErrValidation, err)
	}

	var q *qrcode.QRCode
	if r.opts.Version > 0 {
		q, err = qrcode.NewWithForcedVersion(payload, r.opts.Version, r.level)
	} else {
		q, err = qrcode.New(payload, r.level)
	}
	if err != nil {
		return nil, appErrors.Wrap(appErrors.ErrRender, err)
	}
	q.ForegroundColor = fg
	q.BackgroundColor = color.White

	img := q.Image(-r.opts.ModuleSize)
	if r.logo != nil {
		img = r.withLogo(img)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, appErrors.Wrap(appErrors.ErrRender, err)
	}
	return buf.Bytes(), nil
}

// withLogo pads the code with a white border of a fifth of its size and
// centres the logo in the bottom band.
func (r *QRRenderer) withLogo(code image.Image) image.Image {
	cb := code.Bounds()
	padX, padY := cb.Dx()/5, cb.Dy()/5
	canvas := image.NewRGBA(image.Rect(0, 0, cb.Dx()+2*padX, cb.Dy()+2*padY))
	draw.Draw(canvas, canvas.Bounds(), image.White, image.Point{}, draw.Src)
	draw.Draw(canvas, cb.Add(image.Pt(padX, padY)), code, cb.Min, draw.Src)

	// Fit the logo inside the bottom band, keeping its aspect ratio.
	lb := r.logo.Bounds()
	maxW, maxH := canvas.Bounds().Dx()*4/5, padY*4/5
	w, h := maxW, maxW*lb.Dy()/max(lb.Dx(), 1)
	if h > maxH {
		w, h = maxH*lb.Dx()/max(lb.Dy(), 1), maxH
	}
	if w <= 0 || h <= 0 {
		return canvas
	}
	x := (canvas.Bounds().Dx() - w) / 2
	y := padY + cb.Dy() + (padY-h)/2
	xdraw.CatmullRom.Scale(canvas, image.Rect(x, y, x+w, y+h), r.logo, lb, draw.Over, nil)
	return canvas
}

// ParseBrandColour accepts a named colour or #RGB / #RRGGBB.
func ParseBrandColour(s string) (color.RGBA, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if c, ok := brandColours[name]; ok {
		return c, nil
	}
	if !strings.HasPrefix(name, "#") {
		return color.RGBA{}, fmt.Errorf("unknown brand colour %q", s)
	}

	hex := name[1:]
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return color.RGBA{}, fmt.Errorf("invalid brand colour %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid brand colour %q", s)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xFF}, nil
}

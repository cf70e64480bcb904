package render

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/vgqr/wifiqr-go/pkg/wifiqr/models"
)

func testCredential() models.WiFiCredential {
	return models.WiFiCredential{
		Room:     "101",
		SSID:     "GuestNet",
		Password: "secret",
		Security: "WPA2",
	}
}

// writeLogo saves a small opaque PNG and returns its path.
func writeLogo(t *testing.T, size int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: 30, B: 30, A: 255})
		}
	}
	path := filepath.Join(t.TempDir(), "logo.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("creating logo: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encoding logo: %v", err)
	}
	return path
}

func TestComposeCanvasInvariant(t *testing.T) {
	// The persisted size never depends on the native QR scale.
	for _, scale := range []int{4, 30} {
		opts := DefaultOptions()
		opts.QRScale = scale
		artifact, err := NewComposer(opts, nil).Compose(testCredential())
		if err != nil {
			t.Fatalf("Compose(scale=%d) failed: %v", scale, err)
		}
		w, h := artifact.Size()
		if w != DefaultCanvasWidth || h != DefaultCanvasHeight {
			t.Errorf("scale %d: canvas = %dx%d, expected %dx%d",
				scale, w, h, DefaultCanvasWidth, DefaultCanvasHeight)
		}
		if !artifact.CaptionApplied {
			t.Errorf("scale %d: caption not applied", scale)
		}
	}
}

func TestComposeUnknownPropertySkipsLogo(t *testing.T) {
	cred := testCredential()
	cred.PropertyTag = "UNKNOWN"
	artifact, err := NewComposer(DefaultOptions(), nil).Compose(cred)
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}
	if artifact.LogoApplied {
		t.Error("logo applied for an unrecognized property tag")
	}
	w, h := artifact.Size()
	if w != DefaultCanvasWidth || h != DefaultCanvasHeight {
		t.Errorf("canvas = %dx%d, expected standard dimensions", w, h)
	}
}

func TestComposeWithLogo(t *testing.T) {
	opts := DefaultOptions()
	opts.Logos = map[string]string{"VDPF": writeLogo(t, 64)}

	cred := testCredential()
	// An alias, not the canonical code.
	cred.PropertyTag = "flamingos"
	artifact, err := NewComposer(opts, nil).Compose(cred)
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}
	if !artifact.LogoApplied {
		t.Fatal("logo not applied for a recognized alias")
	}
}

func TestApplyLogoMissingAsset(t *testing.T) {
	opts := DefaultOptions()
	opts.Logos = map[string]string{"VLEV": filepath.Join(t.TempDir(), "missing.png")}
	c := NewComposer(opts, nil)

	src := image.NewRGBA(image.Rect(0, 0, 100, 100))
	out, applied := c.ApplyLogo(src, "VLEV")
	if applied {
		t.Error("logo reported applied despite missing asset")
	}
	if out != image.Image(src) {
		t.Error("image changed despite missing asset")
	}
}

func TestApplyLogoSizeCap(t *testing.T) {
	opts := DefaultOptions()
	opts.Logos = map[string]string{"VLEV": writeLogo(t, 500)}
	c := NewComposer(opts, nil)

	// 370x370 base with the default divisor caps the logo at 100 pixels.
	base := image.NewRGBA(image.Rect(0, 0, 370, 370))
	for y := 0; y < 370; y++ {
		for x := 0; x < 370; x++ {
			base.Set(x, y, color.White)
		}
	}
	out, applied := c.ApplyLogo(base, "VLEV")
	if !applied {
		t.Fatal("logo not applied")
	}

	// The logo is centered; a pixel at the center must be logo-colored and
	// a pixel outside the capped region must still be white.
	center := out.At(185, 185)
	r, _, _, _ := center.RGBA()
	if r>>8 != 200 {
		t.Errorf("center pixel red = %d, expected the logo color", r>>8)
	}
	edge := out.At(185, 185-60)
	er, eg, eb, _ := edge.RGBA()
	if er>>8 != 255 || eg>>8 != 255 || eb>>8 != 255 {
		t.Errorf("pixel above the capped logo region = %v, expected white", edge)
	}
}

func TestNormalizeProperty(t *testing.T) {
	aliases := DefaultAliases()
	tests := []struct {
		tag  string
		want string
	}{
		{"VLEV", "VLEV"},
		{"vle", "VLEV"},
		{" Flamingos ", "VDPF"},
		{"VG", "VDPF"},
		{"VDP", "VDPF"},
		{"", ""},
		{"RESORT9", ""},
	}
	for _, tt := range tests {
		if got := NormalizeProperty(tt.tag, aliases); got != tt.want {
			t.Errorf("NormalizeProperty(%q) = %q, expected %q", tt.tag, got, tt.want)
		}
	}
}

func TestStandardizeCanvasGeometry(t *testing.T) {
	c := NewComposer(DefaultOptions(), nil)

	// A black square on the canvas: scaled content starts exactly at the
	// top margin and the rows above it stay white.
	src := image.NewRGBA(image.Rect(0, 0, 400, 400))
	for y := 0; y < 400; y++ {
		for x := 0; x < 400; x++ {
			src.Set(x, y, color.Black)
		}
	}
	canvas := c.StandardizeCanvas(src)

	if canvas.Bounds().Dx() != DefaultCanvasWidth || canvas.Bounds().Dy() != DefaultCanvasHeight {
		t.Fatalf("canvas = %dx%d, expected %dx%d",
			canvas.Bounds().Dx(), canvas.Bounds().Dy(), DefaultCanvasWidth, DefaultCanvasHeight)
	}

	cx := DefaultCanvasWidth / 2
	above := canvas.At(cx, DefaultTopMargin-1)
	r, g, b, _ := above.RGBA()
	if r>>8 != 255 || g>>8 != 255 || b>>8 != 255 {
		t.Errorf("pixel above the top margin = %v, expected white", above)
	}
	first := canvas.At(cx, DefaultTopMargin+1)
	fr, fg, fb, _ := first.RGBA()
	if fr>>8 != 0 || fg>>8 != 0 || fb>>8 != 0 {
		t.Errorf("pixel below the top margin = %v, expected black content", first)
	}
}

func TestPersist(t *testing.T) {
	c := NewComposer(DefaultOptions(), nil)
	artifact, err := c.Compose(testCredential())
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}

	// Persist creates missing directories.
	path := filepath.Join(t.TempDir(), "out", "nested", Filename("GuestNet"))
	if err := c.Persist(artifact, path); err != nil {
		t.Fatalf("Persist failed: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("opening artifact: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decoding artifact: %v", err)
	}
	if img.Bounds().Dx() != DefaultCanvasWidth || img.Bounds().Dy() != DefaultCanvasHeight {
		t.Errorf("persisted image = %dx%d, expected %dx%d",
			img.Bounds().Dx(), img.Bounds().Dy(), DefaultCanvasWidth, DefaultCanvasHeight)
	}

	// Overwriting an existing file is silent.
	if err := c.Persist(artifact, path); err != nil {
		t.Errorf("Persist over existing file failed: %v", err)
	}
}

func TestFilename(t *testing.T) {
	tests := []struct {
		ssid string
		want string
	}{
		{"GuestNet", "qr_GuestNet.png"},
		{" GuestNet ", "qr_GuestNet.png"},
		{"net/5G", "qr_net_5G.png"},
		{`a:b*c?d"e<f>g|h\i`, "qr_a_b_c_d_e_f_g_h_i.png"},
	}
	for _, tt := range tests {
		if got := Filename(tt.ssid); got != tt.want {
			t.Errorf("Filename(%q) = %q, expected %q", tt.ssid, got, tt.want)
		}
	}
}

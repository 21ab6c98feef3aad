package bramble

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	_ "image/png" // png decoder for Png textures
	"io/fs"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

// TextureType says where the pixels of a Texture come from.
type TextureType uint8

const (
	TexturePng             TextureType = iota // an image file of the assets
	TextureConstantString                     // a string shared by content
	TextureMutableString                      // a string owned by one surface, editable in place
	TextureLocalizedString                    // a string looked up by key in the current language
)

func (t TextureType) String() string {
	switch t {
	case TexturePng:
		return "png"
	case TextureConstantString:
		return "constant-string"
	case TextureMutableString:
		return "mutable-string"
	case TextureLocalizedString:
		return "localized-string"
	default:
		return "unknown"
	}
}

// Tiling splits a png texture into M columns and N rows of tiles.
// AsLinear selects linear filtering instead of nearest.
type Tiling struct {
	M, N     int
	AsLinear bool
}

var defaultTiling = Tiling{M: 1, N: 1, AsLinear: true}

// String texture rasterization parameters.
const (
	// TextSize is the pixel size string textures are rendered at.
	TextSize = 48.0
	// textExtraWidth is the horizontal margin, relative to TextSize, added
	// around strings.
	textExtraWidth = 0.15
)

// Texture is an image a surface draws, split in tiles. Size and ratio are
// known as soon as the texture exists; the GPU image is created on first
// use and dropped by TextureCache.Suspend.
type Texture struct {
	Tiling
	Type TextureType

	// Name is the string content for string textures, the file for png.
	Name string
	// Width and Height are in pixels; Ratio is the width/height ratio of one
	// tile.
	Width, Height, Ratio float64

	key   string // png path or localization key
	cache *TextureCache
	image *ebiten.Image
}

// UpdateAsMutableString replaces the content of a mutable string texture.
func (t *Texture) UpdateAsMutableString(s string) {
	if t.Type != TextureMutableString {
		warnf(nil, "texture %q is not a mutable string", t.Name)
		return
	}
	t.Name = s
	t.cache.measureString(t)
	t.release()
}

// TileSize returns the pixel size of one tile.
func (t *Texture) TileSize() (w, h float64) {
	return t.Width / float64(t.M), t.Height / float64(t.N)
}

// Image returns the GPU image of the texture, creating it if needed.
func (t *Texture) Image() *ebiten.Image {
	if t.image != nil {
		return t.image
	}
	if !t.cache.loaded {
		return ensurePlaceholderImage()
	}
	var err error
	if t.Type == TexturePng {
		t.image, err = t.cache.decodePng(t)
	} else {
		t.image = t.cache.drawString(t)
	}
	if err != nil {
		warnf(nil, "texture %q: %v", t.key, err)
		return ensurePlaceholderImage()
	}
	return t.image
}

func (t *Texture) release() {
	if t.image != nil {
		t.image.Deallocate()
		t.image = nil
	}
}

// placeholder singleton (no sync.Once: bramble is single-threaded)
var placeholderImage *ebiten.Image

func ensurePlaceholderImage() *ebiten.Image {
	if placeholderImage == nil {
		placeholderImage = ebiten.NewImage(1, 1)
		placeholderImage.Fill(color.RGBA{R: 255, G: 0, B: 255, A: 255})
	}
	return placeholderImage
}

// --- Tilings ---

type jsonTiling struct {
	M        int   `json:"m"`
	N        int   `json:"n"`
	AsLinear *bool `json:"linear,omitempty"`
}

// LoadTilings parses a JSON object mapping png paths to their tiling:
//
//	{"digits_black.png": {"m": 12, "n": 2}, "the_cat.png": {"m": 1, "n": 1, "linear": false}}
//
// Linear filtering is the default.
func LoadTilings(jsonData []byte) (map[string]Tiling, error) {
	var raw map[string]jsonTiling
	if err := json.Unmarshal(jsonData, &raw); err != nil {
		return nil, fmt.Errorf("bramble: failed to parse tilings JSON: %w", err)
	}
	tilings := make(map[string]Tiling, len(raw))
	for name, jt := range raw {
		if jt.M <= 0 || jt.N <= 0 {
			return nil, fmt.Errorf("bramble: tiling %q has %dx%d tiles", name, jt.M, jt.N)
		}
		t := Tiling{M: jt.M, N: jt.N, AsLinear: true}
		if jt.AsLinear != nil {
			t.AsLinear = *jt.AsLinear
		}
		tilings[name] = t
	}
	return tilings, nil
}

// --- Cache ---

// StringLookup returns the text of a localization key in the current
// language.
type StringLookup func(key string) (string, bool)

// TextureCache creates textures on demand and keeps one per png path,
// constant string and localization key.
type TextureCache struct {
	assets    fs.FS
	tilings   map[string]Tiling
	lookup    StringLookup
	face      *text.GoTextFace
	lineSpace float64

	pngs      map[string]*Texture
	constants map[string]*Texture
	localized map[string]*Texture
	strings   []*Texture

	loaded bool
}

// NewTextureCache returns a cache reading png files from assets (may be nil)
// with the given tilings. lookup resolves localized strings and may be nil.
func NewTextureCache(assets fs.FS, tilings map[string]Tiling, lookup StringLookup) (*TextureCache, error) {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("bramble: failed to parse default font: %w", err)
	}
	face := &text.GoTextFace{Source: src, Size: TextSize}
	m := face.Metrics()
	if tilings == nil {
		tilings = map[string]Tiling{}
	}
	return &TextureCache{
		assets:    assets,
		tilings:   tilings,
		lookup:    lookup,
		face:      face,
		lineSpace: m.HAscent + m.HDescent + m.HLineGap,
		pngs:      make(map[string]*Texture),
		constants: make(map[string]*Texture),
		localized: make(map[string]*Texture),
		loaded:    true,
	}, nil
}

// SetStringLookup replaces the localization source. Call
// UpdateAllLocalizedStrings afterwards to refresh existing textures.
func (c *TextureCache) SetStringLookup(lookup StringLookup) { c.lookup = lookup }

// Png returns the texture of the png file at path. A file that cannot be
// read or has no pixels gives the "?" string texture, cached under path
// like any other png; a file without tiling is used as a
// single tile named "Error".
func (c *TextureCache) Png(path string) *Texture {
	if t, ok := c.pngs[path]; ok {
		return t
	}
	cfg, err := c.pngConfig(path)
	if err == nil && cfg.Height <= 0 {
		err = fmt.Errorf("empty image %dx%d", cfg.Width, cfg.Height)
	}
	if err != nil {
		warnf(nil, "png %q: %v", path, err)
		t := c.ConstantString("?")
		c.pngs[path] = t
		return t
	}
	tiling, ok := c.tilings[path]
	name := path
	if !ok {
		warnf(nil, "png %q has no tiling", path)
		tiling = defaultTiling
		name = "Error"
	}
	t := &Texture{
		Tiling: tiling,
		Type:   TexturePng,
		Name:   name,
		Width:  float64(cfg.Width),
		Height: float64(cfg.Height),
		key:    path,
		cache:  c,
	}
	t.Ratio = t.Width / t.Height * float64(t.N) / float64(t.M)
	c.pngs[path] = t
	return t
}

// ConstantString returns the shared texture showing s.
func (c *TextureCache) ConstantString(s string) *Texture {
	if t, ok := c.constants[s]; ok {
		return t
	}
	t := c.newString(s, TextureConstantString, "")
	c.constants[s] = t
	return t
}

// NewMutableString returns a new texture showing s, editable with
// UpdateAsMutableString.
func (c *TextureCache) NewMutableString(s string) *Texture {
	return c.newString(s, TextureMutableString, "")
}

// LocalizedString returns the texture of the localization key. An unknown
// key shows the key itself.
func (c *TextureCache) LocalizedString(key string) *Texture {
	if t, ok := c.localized[key]; ok {
		return t
	}
	t := c.newString(c.localize(key), TextureLocalizedString, key)
	c.localized[key] = t
	return t
}

// UpdateAllLocalizedStrings looks every localized texture up again, after a
// language change.
func (c *TextureCache) UpdateAllLocalizedStrings() {
	for key, t := range c.localized {
		t.Name = c.localize(key)
		c.measureString(t)
		t.release()
	}
}

// Suspend drops every GPU image. Textures keep their sizes and recreate
// their image on first use after Resume.
func (c *TextureCache) Suspend() {
	if !c.loaded {
		warnf(nil, "textures already suspended")
		return
	}
	logger.Debug("releasing texture images")
	for _, t := range c.strings {
		t.release()
	}
	for _, t := range c.pngs {
		t.release()
	}
	c.loaded = false
}

// Resume allows images to be created again.
func (c *TextureCache) Resume() {
	if c.loaded {
		warnf(nil, "textures already loaded")
		return
	}
	c.loaded = true
}

func (c *TextureCache) localize(key string) string {
	if c.lookup != nil {
		if s, ok := c.lookup(key); ok {
			return s
		}
	}
	warnf(nil, "no localized string for %q", key)
	return key
}

func (c *TextureCache) newString(s string, typ TextureType, key string) *Texture {
	t := &Texture{
		Tiling: defaultTiling,
		Type:   typ,
		Name:   s,
		key:    key,
		cache:  c,
	}
	c.measureString(t)
	c.strings = append(c.strings, t)
	return t
}

// measureString sets the pixel size of a string texture from its content.
func (c *TextureCache) measureString(t *Texture) {
	s := t.Name
	if s == "" {
		s = " "
	}
	w, _ := text.Measure(s, c.face, c.lineSpace)
	m := c.face.Metrics()
	t.Width = float64(int(w + 0.5 + TextSize*textExtraWidth))
	t.Height = float64(int(m.HAscent + m.HDescent + 0.5))
	if t.Width < 2 {
		t.Width = 2
	}
	if t.Height < 2 {
		t.Height = 2
	}
	t.Ratio = t.Width / t.Height
}

func (c *TextureCache) drawString(t *Texture) *ebiten.Image {
	img := ebiten.NewImage(int(t.Width), int(t.Height))
	op := &text.DrawOptions{}
	op.GeoM.Translate(0.5*TextSize*textExtraWidth, 0)
	op.LineSpacing = c.lineSpace
	text.Draw(img, t.Name, c.face, op)
	return img
}

func (c *TextureCache) pngConfig(path string) (image.Config, error) {
	if c.assets == nil {
		return image.Config{}, fmt.Errorf("no assets")
	}
	f, err := c.assets.Open(path)
	if err != nil {
		return image.Config{}, err
	}
	defer f.Close()
	cfg, _, err := image.DecodeConfig(f)
	return cfg, err
}

func (c *TextureCache) decodePng(t *Texture) (*ebiten.Image, error) {
	f, err := c.assets.Open(t.key)
	if err != nil {
		return nil, fmt.Errorf("bramble: failed to open png: %w", err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("bramble: failed to decode png: %w", err)
	}
	return ebiten.NewImageFromImage(img), nil
}

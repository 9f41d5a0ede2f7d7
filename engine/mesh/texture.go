package mesh

// TexelWidth and TexelHeight are the dimensions of the scene texture.
const (
	TexelWidth  = 2
	TexelHeight = 2
)

// Texels returns the RGBA8 pixels of the 2x2 scene texture, row-major, in a fresh slice.
func Texels() []byte {
	return []byte{
		0xdb, 0x45, 0x00, 0x00, 0x45, 0x75, 0x00, 0x3b,
		0x00, 0x00, 0x00, 0x00, 0x00, 0xff, 0x00, 0x00,
	}
}

// Filter selects how the scene texture is sampled between texels.
type Filter int

const (
	FilterNearest Filter = iota
	FilterBilinear
)

// Wrap selects how texture coordinates outside [0, 1] are resolved.
type Wrap int

const (
	WrapClamp Wrap = iota
	WrapRepeat
)

// SamplerInfo describes the sampler for the scene texture.
type SamplerInfo struct {
	Filter Filter
	Wrap   Wrap
}

// Sampler returns the sampler description for the scene texture: bilinear filtering with clamped coordinates.
func Sampler() SamplerInfo {
	return SamplerInfo{Filter: FilterBilinear, Wrap: WrapClamp}
}

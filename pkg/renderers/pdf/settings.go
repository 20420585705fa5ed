package pdf

// Name is the registry name of this renderer.
const Name = "pdf"

// CreatorName is written to the Creator entry of every exported file.
const CreatorName = "go-fosterdocs"

// Subject is written to the Subject entry of every exported file.
const Subject = "Document Export"

// Settings fix the page geometry and image quality of an export.
type Settings struct {
	PageSize    string
	Orientation string
	// MarginMM is applied on all four sides.
	MarginMM float64
	// ImageScale multiplies the pixel size of embedded signature images.
	ImageScale int
	// JPEGQuality is 1-100.
	JPEGQuality int
}

// DefaultSettings are the export settings used when none are supplied.
func DefaultSettings() Settings {
	return Settings{
		PageSize:    "A4",
		Orientation: "P",
		MarginMM:    5,
		ImageScale:  2,
		JPEGQuality: 95,
	}
}

func (s Settings) normalized() Settings {
	def := DefaultSettings()
	if s.PageSize == "" {
		s.PageSize = def.PageSize
	}
	if s.Orientation == "" {
		s.Orientation = def.Orientation
	}
	if s.MarginMM <= 0 {
		s.MarginMM = def.MarginMM
	}
	if s.ImageScale < 1 {
		s.ImageScale = def.ImageScale
	}
	if s.JPEGQuality < 1 || s.JPEGQuality > 100 {
		s.JPEGQuality = def.JPEGQuality
	}
	return s
}

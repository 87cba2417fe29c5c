package summarize

// Length controls how condensed the summary should be. It also selects the
// sampling temperature: terser summaries run colder.
type Length string

const (
	LengthVeryShort    Length = "very_short"
	LengthShort        Length = "short"
	LengthBalanced     Length = "balanced"
	LengthDetailed     Length = "detailed"
	LengthVeryDetailed Length = "very_detailed"
)

// Language selects the output language of the summary.
type Language string

const (
	LanguageEnglish Language = "English"
	LanguageHindi   Language = "Hindi"
)

// Format selects the output layout of the summary.
type Format string

const (
	FormatParagraph    Format = "paragraph"
	FormatBulletPoints Format = "bullet_points"
)

var temperatures = map[Length]float64{
	LengthVeryShort:    0.1,
	LengthShort:        0.3,
	LengthBalanced:     0.5,
	LengthDetailed:     0.7,
	LengthVeryDetailed: 0.9,
}

// Temperature maps a summary length onto its fixed sampling temperature.
func (l Length) Temperature() float64 {
	return temperatures[l]
}

// descriptor is the human phrasing of a length as it appears in the prompt.
func (l Length) descriptor() string {
	switch l {
	case LengthVeryShort:
		return "very short"
	case LengthShort:
		return "short"
	case LengthBalanced:
		return "balanced"
	case LengthDetailed:
		return "detailed"
	case LengthVeryDetailed:
		return "very detailed"
	default:
		return string(l)
	}
}

// label is the human phrasing of a format as it appears in the prompt.
func (f Format) label() string {
	switch f {
	case FormatBulletPoints:
		return "Bullet points"
	default:
		return "Paragraph"
	}
}

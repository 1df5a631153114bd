package timing

// SubjectKind distinguishes the playback variants. At most one
// recording and one playback may be active at a time per kind.
type SubjectKind int

const (
	// SubjectKeyframe scroll-animates between keyframe positions
	// inside one large image.
	SubjectKeyframe SubjectKind = iota

	// SubjectComposite plays a plan of Scroll/Pause segments derived
	// from loop markers.
	SubjectComposite

	// SubjectOriginalImage cycles through a set of still images.
	SubjectOriginalImage
)

// String returns the kind name.
func (k SubjectKind) String() string {
	switch k {
	case SubjectKeyframe:
		return "Keyframe"
	case SubjectComposite:
		return "Composite"
	case SubjectOriginalImage:
		return "OriginalImage"
	default:
		return "Unknown"
	}
}

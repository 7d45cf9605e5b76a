package content

// Kind identifies a block template. The set is closed; values read from a
// document that fall outside it are preserved but never rendered.
type Kind string

const (
	KindHero      Kind = "hero"
	KindParagraph Kind = "paragraph"
	KindImages    Kind = "images"
	KindFeatures  Kind = "features"
	KindFeature   Kind = "feature"
)

// KindKey is the discriminator key carried by every block object.
const KindKey = "_template"

var knownKinds = []Kind{KindHero, KindParagraph, KindImages, KindFeatures, KindFeature}

// Kinds returns the closed kind set in declaration order.
func Kinds() []Kind {
	out := make([]Kind, len(knownKinds))
	copy(out, knownKinds)
	return out
}

// Valid reports whether k is part of the closed kind set.
func (k Kind) Valid() bool {
	for _, known := range knownKinds {
		if k == known {
			return true
		}
	}
	return false
}

func (k Kind) String() string {
	return string(k)
}

// KindOf reads the discriminator from a decoded block object.
func KindOf(data map[string]any) Kind {
	if data == nil {
		return ""
	}
	raw, _ := data[KindKey].(string)
	return Kind(raw)
}

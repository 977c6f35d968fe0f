package domain

// Script style categories the writer is asked for.
const (
	StyleGritty     = "gritty"
	StyleFriendly   = "friendly"
	StyleHighEnergy = "high-energy"
)

// MaxHashtags caps the hashtag list on every response entry.
const MaxHashtags = 6

// Variant is one stylistic rendition of a voiceover script, as returned by
// the script writer. Immutable once created.
type Variant struct {
	Style     string   `json:"style"`
	Voiceover string   `json:"voiceover"`
	Beats     []string `json:"beats"`
	Hashtags  []string `json:"hashtags"`
}

// GeneratedFile pairs a variant with its synthesized audio file, as returned
// to the caller.
type GeneratedFile struct {
	Label    string   `json:"label"`
	URL      string   `json:"url"`
	Script   string   `json:"script"`
	Beats    []string `json:"beats"`
	Hashtags []string `json:"hashtags"`
}

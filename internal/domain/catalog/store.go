package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Store holds the read-only reference catalog: the prompt library, the
// design-template gallery, and the vendor quote list. Services receive it
// injected and never mutate it; entries are addressed by id.
type Store struct {
	prompts   []Prompt
	templates []Template
	quotes    []VendorQuote
}

type catalogFile struct {
	Prompts   []Prompt      `yaml:"prompts"`
	Templates []Template    `yaml:"templates"`
	Quotes    []VendorQuote `yaml:"vendor_quotes"`
}

// Load reads a catalog from a YAML file.
func Load(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse catalog file: %w", err)
	}
	return &Store{
		prompts:   file.Prompts,
		templates: file.Templates,
		quotes:    file.Quotes,
	}, nil
}

// Default returns the built-in seed catalog so the server runs without a
// catalog file configured.
func Default() *Store {
	return &Store{
		prompts: []Prompt{
			{ID: "prompt-heritage", Label: "Heritage", Text: "Lean into the club's founding colors and crest history", Tags: []string{"classic"}},
			{ID: "prompt-bold-geometry", Label: "Bold geometry", Text: "Angular panels and a strong diagonal sash", Tags: []string{"modern"}},
			{ID: "prompt-minimal", Label: "Minimal", Text: "Single tone body with tonal crest and clean sponsor lockup", Tags: []string{"minimal"}},
			{ID: "prompt-street", Label: "Street", Text: "Streetwear influence, oversized typography, gradient fade", Tags: []string{"bold"}},
		},
		templates: []Template{
			{ID: "template-classic-stripe", Name: "Classic stripe", Style: "classic", PreviewURL: "https://cdn.kitforge.dev/templates/classic-stripe.png"},
			{ID: "template-sash", Name: "Diagonal sash", Style: "modern", PreviewURL: "https://cdn.kitforge.dev/templates/sash.png"},
			{ID: "template-gradient", Name: "Gradient fade", Style: "bold", PreviewURL: "https://cdn.kitforge.dev/templates/gradient.png"},
		},
		quotes: []VendorQuote{
			{ID: "vendor-stitchworks", VendorName: "Stitchworks", Region: "EU", Currency: "EUR", UnitPrice: 38.5, MinimumOrder: 15, LeadTimeWeeks: 4, SizeRuns: []string{"XS", "S", "M", "L", "XL", "XXL"}},
			{ID: "vendor-rapidkits", VendorName: "RapidKits", Region: "APAC", Currency: "USD", UnitPrice: 29, MinimumOrder: 25, LeadTimeWeeks: 3, SizeRuns: []string{"S", "M", "L", "XL"}},
			{ID: "vendor-heritage-textile", VendorName: "Heritage Textile Co", Region: "NA", Currency: "USD", UnitPrice: 52, MinimumOrder: 10, LeadTimeWeeks: 6, SizeRuns: []string{"XS", "S", "M", "L", "XL"}},
		},
	}
}

// Prompts returns the full prompt library.
func (s *Store) Prompts() []Prompt {
	return s.prompts
}

// PromptsByID returns the prompts matching the given ids, in the given
// order. Ids not present in the library are silently dropped.
func (s *Store) PromptsByID(ids []string) []Prompt {
	var out []Prompt
	for _, id := range ids {
		for _, p := range s.prompts {
			if p.ID == id {
				out = append(out, p)
				break
			}
		}
	}
	return out
}

// DefaultPrompts returns the first n prompts of the library.
func (s *Store) DefaultPrompts(n int) []Prompt {
	if n > len(s.prompts) {
		n = len(s.prompts)
	}
	out := make([]Prompt, n)
	copy(out, s.prompts[:n])
	return out
}

// Templates returns the design-template gallery.
func (s *Store) Templates() []Template {
	return s.templates
}

// Quote looks up a vendor quote by id.
func (s *Store) Quote(id string) (VendorQuote, bool) {
	for _, q := range s.quotes {
		if q.ID == id {
			return q, true
		}
	}
	return VendorQuote{}, false
}

// Quotes returns all vendor quotes.
func (s *Store) Quotes() []VendorQuote {
	return s.quotes
}

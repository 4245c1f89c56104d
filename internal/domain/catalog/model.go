package catalog

// Prompt is a reusable design-brief prompt from the prompt library.
type Prompt struct {
	ID    string   `json:"id" yaml:"id"`
	Label string   `json:"label" yaml:"label"`
	Text  string   `json:"text" yaml:"text"`
	Tags  []string `json:"tags,omitempty" yaml:"tags,omitempty"`
}

// Template is an entry in the design-template gallery.
type Template struct {
	ID         string `json:"id" yaml:"id"`
	Name       string `json:"name" yaml:"name"`
	Style      string `json:"style" yaml:"style"`
	PreviewURL string `json:"preview_url" yaml:"preview_url"`
}

// VendorQuote describes a manufacturing partner's pricing and terms.
type VendorQuote struct {
	ID            string   `json:"id" yaml:"id"`
	VendorName    string   `json:"vendor_name" yaml:"vendor_name"`
	Region        string   `json:"region" yaml:"region"`
	Currency      string   `json:"currency" yaml:"currency"`
	UnitPrice     float64  `json:"unit_price" yaml:"unit_price"`
	MinimumOrder  int      `json:"minimum_order" yaml:"minimum_order"`
	LeadTimeWeeks int      `json:"lead_time_weeks" yaml:"lead_time_weeks"`
	SizeRuns      []string `json:"size_runs,omitempty" yaml:"size_runs,omitempty"`
}

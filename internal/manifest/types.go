package manifest

// FileName is the manifest file extension authors place at their
// repository root.
const FileName = "extension.yaml"

// Manifest describes an extension: its bare name (without the just-
// prefix), semantic version, and publishing metadata.
type Manifest struct {
	Name        string   `yaml:"name" json:"name"`
	Version     string   `yaml:"version" json:"version"`
	Description string   `yaml:"description" json:"description"`
	Homepage    string   `yaml:"homepage,omitempty" json:"homepage,omitempty"`
	License     string   `yaml:"license,omitempty" json:"license,omitempty"`
	Authors     []string `yaml:"authors,omitempty" json:"authors,omitempty"`
	Keywords    []string `yaml:"keywords,omitempty" json:"keywords,omitempty"`
}

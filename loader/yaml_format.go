package loader

import "gopkg.in/yaml.v3"

// YAMLFormat decodes configuration with gopkg.in/yaml.v3, the same
// library cuemby-warren uses directly to parse its resource manifests
// (cmd/warren/apply.go).
type YAMLFormat struct{}

// Extensions implements Format.
func (YAMLFormat) Extensions() []string { return []string{"yaml", "yml"} }

// Parse implements Format.
func (YAMLFormat) Parse(input []byte, dst any) error {
	if err := yaml.Unmarshal(input, dst); err != nil {
		return NewErrParse("yaml", err)
	}
	return nil
}

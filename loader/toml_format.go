package loader

import "github.com/pelletier/go-toml/v2"

// TOMLFormat decodes configuration with github.com/pelletier/go-toml/v2,
// present in the reference corpus's dependency graph (cuemby-warren's
// go.mod) as the ecosystem-standard TOML library.
type TOMLFormat struct{}

// Extensions implements Format.
func (TOMLFormat) Extensions() []string { return []string{"toml"} }

// Parse implements Format.
func (TOMLFormat) Parse(input []byte, dst any) error {
	if err := toml.Unmarshal(input, dst); err != nil {
		return NewErrParse("toml", err)
	}
	return nil
}

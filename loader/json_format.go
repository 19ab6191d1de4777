package loader

import "encoding/json"

// JSONFormat decodes configuration with the standard library's
// encoding/json. No third-party JSON library appears used directly by any
// repo in the reference corpus (goccy/go-json and bytedance/sonic surface
// only as transitive dependencies of unrelated CLI tooling), so the
// stdlib decoder is the grounded choice here — see DESIGN.md.
type JSONFormat struct{}

// Extensions implements Format.
func (JSONFormat) Extensions() []string { return []string{"json"} }

// Parse implements Format.
func (JSONFormat) Parse(input []byte, dst any) error {
	if err := json.Unmarshal(input, dst); err != nil {
		return NewErrParse("json", err)
	}
	return nil
}

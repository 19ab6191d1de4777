package live

import "strings"

// ScanResult reports what a directory scan did.
type ScanResult struct {
	// Added holds keys that were newly loaded.
	Added []string
	// Updated holds keys that were already in the store and reloaded
	// successfully, whether or not the value changed.
	Updated []string
	// Failed holds keys that failed to parse or validate, paired with the
	// error text. The store keeps the prior good value, if any.
	Failed []FailedKey
	// Removed holds keys that were dropped because their file disappeared.
	Removed []string
	// Retained holds keys a Persistent policy kept despite their file
	// disappearing.
	Retained []string
}

// FailedKey pairs a key with the reason its reload attempt failed.
type FailedKey struct {
	Key    string
	Reason string
}

// Loaded returns every key that was successfully (re)loaded this scan.
func (r ScanResult) Loaded() []string {
	out := make([]string, 0, len(r.Added)+len(r.Updated))
	out = append(out, r.Added...)
	out = append(out, r.Updated...)
	return out
}

// KeyExtractorFunc extracts a store key from a filesystem entry name,
// returning ok=false to skip the entry entirely.
type KeyExtractorFunc func(name string) (key string, ok bool)

// KeyPattern controls how LiveDir derives a store key from each directory
// entry's name.
type KeyPattern struct {
	kind       patternKind
	extensions []string
	prefix     string
	suffix     string
	fn         KeyExtractorFunc
}

type patternKind int

const (
	patternIdentity patternKind = iota
	patternExtensions
	patternBracketed
	patternStrip
	patternCustom
)

// IdentityPattern strips the last extension from the name: "app.json" ->
// "app", "config.backup.json" -> "config.backup", "noext" -> "noext".
// Hidden files (leading '.') extract to nothing.
func IdentityPattern() KeyPattern {
	return KeyPattern{kind: patternIdentity}
}

// ExtensionsPattern tries each suffix in order, stripping the first match
// together with the dot before it ("tar.gz" and ".tar.gz" both turn
// "archive.tar.gz" into "archive"); falls back to Identity behavior when
// none match. Useful for compound extensions like ".tar.gz".
func ExtensionsPattern(extensions ...string) KeyPattern {
	return KeyPattern{kind: patternExtensions, extensions: extensions}
}

// BracketedPattern extracts the content between a leading '[' and the
// first ']': "[443]" -> "443". Empty brackets extract to nothing.
func BracketedPattern() KeyPattern {
	return KeyPattern{kind: patternBracketed}
}

// StripPattern removes a fixed prefix and suffix from the name, in that
// order, yielding no key if either is absent or the remainder is empty.
func StripPattern(prefix, suffix string) KeyPattern {
	return KeyPattern{kind: patternStrip, prefix: prefix, suffix: suffix}
}

// CustomPattern delegates key extraction entirely to fn.
func CustomPattern(fn KeyExtractorFunc) KeyPattern {
	return KeyPattern{kind: patternCustom, fn: fn}
}

// Extract derives a store key from name, or reports ok=false if this
// pattern does not claim the name at all.
func (p KeyPattern) Extract(name string) (key string, ok bool) {
	switch p.kind {
	case patternExtensions:
		for _, ext := range p.extensions {
			if k, stripped := strings.CutSuffix(name, "."+strings.TrimPrefix(ext, ".")); stripped && k != "" {
				return k, true
			}
		}
		return extractIdentity(name)

	case patternBracketed:
		if !strings.HasPrefix(name, "[") {
			return "", false
		}
		end := strings.IndexByte(name, ']')
		if end < 0 {
			return "", false
		}
		k := name[1:end]
		if k == "" {
			return "", false
		}
		return k, true

	case patternStrip:
		s := name
		if p.prefix != "" {
			var stripped bool
			s, stripped = strings.CutPrefix(s, p.prefix)
			if !stripped {
				return "", false
			}
		}
		if p.suffix != "" {
			var stripped bool
			s, stripped = strings.CutSuffix(s, p.suffix)
			if !stripped {
				return "", false
			}
		}
		if s == "" {
			return "", false
		}
		return s, true

	case patternCustom:
		if p.fn == nil {
			return "", false
		}
		return p.fn(name)

	default: // patternIdentity
		return extractIdentity(name)
	}
}

func extractIdentity(name string) (string, bool) {
	if strings.HasPrefix(name, ".") {
		return "", false
	}
	idx := strings.LastIndexByte(name, '.')
	key := name
	if idx >= 0 {
		key = name[:idx]
	}
	if key == "" {
		return "", false
	}
	return key, true
}

// ScanMode selects what LiveDir looks for inside its directory.
type ScanMode struct {
	subdirs    bool
	configFile string
}

// FilesScanMode scans only files directly inside the directory (default).
func FilesScanMode() ScanMode {
	return ScanMode{}
}

// SubdirsScanMode scans subdirectories, loading configFile from each.
func SubdirsScanMode(configFile string) ScanMode {
	return ScanMode{subdirs: true, configFile: configFile}
}

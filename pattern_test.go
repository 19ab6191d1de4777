package live

import "testing"

func TestIdentityPatternStripsLastExtension(t *testing.T) {
	cases := map[string]struct {
		key string
		ok  bool
	}{
		"app.json":          {"app", true},
		"a.b.c.json":        {"a.b.c", true},
		"noext":             {"noext", true},
		".hidden":           {"", false},
		".hidden.json":      {"", false},
	}
	p := IdentityPattern()
	for name, want := range cases {
		key, ok := p.Extract(name)
		if ok != want.ok || (ok && key != want.key) {
			t.Errorf("Extract(%q) = (%q, %v), want (%q, %v)", name, key, ok, want.key, want.ok)
		}
	}
}

func TestExtensionsPatternTriesInOrderThenFallsBack(t *testing.T) {
	p := ExtensionsPattern("tar.gz", "json")
	if key, ok := p.Extract("archive.tar.gz"); !ok || key != "archive" {
		t.Fatalf("Extract(archive.tar.gz) = (%q, %v)", key, ok)
	}
	if key, ok := p.Extract("app.json"); !ok || key != "app" {
		t.Fatalf("Extract(app.json) = (%q, %v)", key, ok)
	}
	// No registered suffix matches "app.yaml"; falls back to Identity.
	if key, ok := p.Extract("app.yaml"); !ok || key != "app" {
		t.Fatalf("Extract(app.yaml) fallback = (%q, %v)", key, ok)
	}
}

func TestBracketedPattern(t *testing.T) {
	p := BracketedPattern()
	if key, ok := p.Extract("[tcp]"); !ok || key != "tcp" {
		t.Fatalf("Extract([tcp]) = (%q, %v)", key, ok)
	}
	if _, ok := p.Extract("[]"); ok {
		t.Fatal("empty brackets should extract to none")
	}
	if _, ok := p.Extract("plain"); ok {
		t.Fatal("unbracketed name should not match")
	}
}

func TestStripPattern(t *testing.T) {
	p := StripPattern("service-", ".conf")
	if key, ok := p.Extract("service-api.conf"); !ok || key != "api" {
		t.Fatalf("Extract = (%q, %v)", key, ok)
	}
	if _, ok := p.Extract("other-api.conf"); ok {
		t.Fatal("mismatched prefix should not match")
	}
	if _, ok := p.Extract("service-.conf"); ok {
		t.Fatal("empty middle should not match")
	}
}

func TestCustomPattern(t *testing.T) {
	p := CustomPattern(func(name string) (string, bool) {
		if name == "special" {
			return "special-key", true
		}
		return "", false
	})
	if key, ok := p.Extract("special"); !ok || key != "special-key" {
		t.Fatalf("Extract(special) = (%q, %v)", key, ok)
	}
	if _, ok := p.Extract("other"); ok {
		t.Fatal("unmatched name should not extract")
	}
}

func TestScanResultLoaded(t *testing.T) {
	r := ScanResult{Added: []string{"a"}, Updated: []string{"b"}}
	loaded := r.Loaded()
	if len(loaded) != 2 {
		t.Fatalf("Loaded() = %v, want 2 entries", loaded)
	}
}

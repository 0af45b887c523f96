package project

import (
	"testing"
)

func scanSource(t *testing.T, relPath, content string) *Exports {
	t.Helper()
	m := ParseModule("/tmp/"+relPath, relPath, content)
	return ScanExports(m)
}

func TestScanExportsDefaultFunction(t *testing.T) {
	ex := scanSource(t, "src/components/header.tsx", `export default function Header() {
  return null;
}
`)
	if ex.Default == nil {
		t.Fatal("Expected a default export")
	}
	if ex.Default.Name != "Header" {
		t.Errorf("Expected default name 'Header', got '%s'", ex.Default.Name)
	}
	if ex.Default.Forward != "" {
		t.Errorf("Inline function should not forward, got '%s'", ex.Default.Forward)
	}
}

func TestScanExportsForwardedDefault(t *testing.T) {
	ex := scanSource(t, "src/components/footer.tsx", `function Footer() {
  return null;
}

export default Footer;
`)
	if ex.Default == nil {
		t.Fatal("Expected a default export")
	}
	if ex.Default.Forward != "Footer" {
		t.Errorf("Expected forward 'Footer', got '%s'", ex.Default.Forward)
	}
	if ex.Default.Line != 4 {
		t.Errorf("Expected forward on body line 4, got %d", ex.Default.Line)
	}
}

func TestScanExportsAnonymousDefaultDerivesName(t *testing.T) {
	ex := scanSource(t, "src/components/mode-toggle.tsx", `export default function () {
  return null;
}
`)
	if ex.Default == nil {
		t.Fatal("Expected a default export")
	}
	if ex.Default.Name != "ModeToggle" {
		t.Errorf("Expected derived name 'ModeToggle', got '%s'", ex.Default.Name)
	}
}

func TestScanExportsNamed(t *testing.T) {
	ex := scanSource(t, "src/lib/utils.ts", `export function cn(...inputs: ClassValue[]) {}
export const SITE_NAME = 'demo';
export interface NavItem { href: string }
export type Variant = 'a' | 'b';
export class Store {}
export const enum Color { Red }
export { helper, internal as publicName };
`)
	want := []string{"cn", "SITE_NAME", "NavItem", "Variant", "Store", "Color", "helper", "publicName"}
	for _, name := range want {
		if !ex.HasNamed(name) {
			t.Errorf("Expected named export '%s'", name)
		}
	}
	if ex.HasNamed("internal") {
		t.Error("Aliased list entry should expose the exported name only")
	}
	if ex.Default != nil {
		t.Errorf("Expected no default export, got %+v", ex.Default)
	}
}

func TestScanExportsFirstDefaultWins(t *testing.T) {
	ex := scanSource(t, "src/a.tsx", `export default function First() {}
export default function Second() {}
`)
	if ex.Default == nil || ex.Default.Name != "First" {
		t.Errorf("Expected first default to win, got %+v", ex.Default)
	}
}

func TestDerivedName(t *testing.T) {
	cases := map[string]string{
		"src/components/header.tsx":      "Header",
		"src/components/mode-toggle.tsx": "ModeToggle",
		"src/components/ui/index.ts":     "Ui",
		"src/lib/api_client.ts":          "ApiClient",
	}
	for in, want := range cases {
		if got := DerivedName(in); got != want {
			t.Errorf("DerivedName(%q): expected %q, got %q", in, want, got)
		}
	}
}

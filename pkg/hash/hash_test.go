package hash

import "testing"

func TestSHA256Hex_KnownValue(t *testing.T) {
	// echo -n "hello" | sha256sum
	got := SHA256Hex("hello")
	want := "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824"
	if got != want {
		t.Errorf("SHA256Hex(hello) = %s, want %s", got, want)
	}
}

func TestURLFingerprint_Deterministic(t *testing.T) {
	a := URLFingerprint("https://youtube.com/@mkbhd")
	b := URLFingerprint("https://youtube.com/@mkbhd")
	if a != b {
		t.Errorf("same URL produced different fingerprints: %s vs %s", a, b)
	}
}

func TestURLFingerprint_TrimsWhitespace(t *testing.T) {
	a := URLFingerprint("https://youtube.com/@mkbhd")
	b := URLFingerprint("  https://youtube.com/@mkbhd \n")
	if a != b {
		t.Errorf("whitespace changed the fingerprint: %s vs %s", a, b)
	}
}

func TestShortHash_Length(t *testing.T) {
	got := ShortHash("UC123", 12)
	if len(got) != 12 {
		t.Errorf("ShortHash length = %d, want 12", len(got))
	}
}

func TestShortHash_PrefixLongerThanHash(t *testing.T) {
	got := ShortHash("x", 100)
	if len(got) != 64 {
		t.Errorf("ShortHash with oversized prefix = %d chars, want full 64", len(got))
	}
}

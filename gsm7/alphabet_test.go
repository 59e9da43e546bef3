package gsm7_test

import (
	"bytes"
	"testing"

	"github.com/go-smpp/esme/gsm7"
)

func TestEncodeBasicLatin(t *testing.T) {
	got, err := gsm7.Encode("Abc1234", gsm7.Strict)
	if err != nil {
		t.Fatal(err)
	}
	want := []byte{0x41, 0x62, 0x63, 0x31, 0x32, 0x33, 0x34}
	if !bytes.Equal(got, want) {
		t.Errorf("got % X, want % X", got, want)
	}
}

func TestEncodeEscapeAndExtended(t *testing.T) {
	got, err := gsm7.Encode("ü and € is à", gsm7.Strict)
	if err != nil {
		t.Fatal(err)
	}
	want := []byte{0x7E, 0x20, 0x61, 0x6E, 0x64, 0x20, 0x1B, 0x65, 0x20, 0x69, 0x73, 0x20, 0x7F}
	if !bytes.Equal(got, want) {
		t.Errorf("got % X, want % X", got, want)
	}
	back, err := gsm7.Decode(got, gsm7.Strict)
	if err != nil {
		t.Fatal(err)
	}
	if back != "ü and € is à" {
		t.Errorf("got %q, want %q", back, "ü and € is à")
	}
}

func TestEncodeBrackets(t *testing.T) {
	got, err := gsm7.Encode("{ brackets text }", gsm7.Strict)
	if err != nil {
		t.Fatal(err)
	}
	want := []byte{
		0x1B, 0x28, 0x20, 0x62, 0x72, 0x61, 0x63, 0x6B, 0x65, 0x74,
		0x73, 0x20, 0x74, 0x65, 0x78, 0x74, 0x20, 0x1B, 0x29,
	}
	if !bytes.Equal(got, want) {
		t.Errorf("got % X, want % X", got, want)
	}
}

func TestBijection(t *testing.T) {
	// Every default-table and extension-plane byte round-trips through
	// encode(decode(b)) = b.
	for b := 0x00; b <= 0x7F; b++ {
		if b == 0x1B {
			continue
		}
		s, err := gsm7.Decode([]byte{byte(b)}, gsm7.Strict)
		if err != nil {
			continue // unassigned byte in the default table
		}
		back, err := gsm7.Encode(s, gsm7.Strict)
		if err != nil {
			t.Fatalf("encode(decode(0x%02X)) failed: %v", b, err)
		}
		if !bytes.Equal(back, []byte{byte(b)}) {
			t.Errorf("encode(decode(0x%02X)) round-trip mismatch: got % X", b, back)
		}
	}
	for _, b := range []byte{0x0A, 0x14, 0x28, 0x29, 0x2F, 0x3C, 0x3D, 0x3E, 0x40, 0x65} {
		s, err := gsm7.Decode([]byte{0x1B, b}, gsm7.Strict)
		if err != nil {
			t.Fatalf("decode escape 0x%02X failed: %v", b, err)
		}
		back, err := gsm7.Encode(s, gsm7.Strict)
		if err != nil {
			t.Fatalf("encode(decode(escape 0x%02X)) failed: %v", b, err)
		}
		if !bytes.Equal(back, []byte{0x1B, b}) {
			t.Errorf("escape 0x%02X round-trip mismatch: got % X", b, back)
		}
	}
}

func TestEncodeStrictFailsOnUnmappable(t *testing.T) {
	if _, err := gsm7.Encode("猫", gsm7.Strict); err == nil {
		t.Error("expected error under strict policy")
	}
}

func TestEncodeReplacePolicy(t *testing.T) {
	got, err := gsm7.Encode("猫", gsm7.Replace)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0] != '?' {
		t.Errorf("expected fallback '?', got % X", got)
	}
}

func TestEncodeIgnorePolicy(t *testing.T) {
	got, err := gsm7.Encode("A猫B", gsm7.Ignore)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, []byte{0x41, 0x42}) {
		t.Errorf("got % X", got)
	}
}

func TestDecodeTrailingEscape(t *testing.T) {
	got, err := gsm7.Decode([]byte{0x41, 0x1B}, gsm7.Strict)
	if err != nil {
		t.Fatal(err)
	}
	want := "A "
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

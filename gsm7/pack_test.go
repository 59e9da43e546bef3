package gsm7_test

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/go-smpp/esme/gsm7"
)

func TestPack7Bit(t *testing.T) {
	got := gsm7.Pack7Bit([]byte("7bit"), 0)
	want, _ := hex.DecodeString("37719a0e")
	if !bytes.Equal(got, want) {
		t.Errorf("got % X, want % X", got, want)
	}
}

func TestUnpack7Bit(t *testing.T) {
	data, _ := hex.DecodeString("37719a0e")
	got := gsm7.Unpack7Bit(data, 0)
	want := []byte("7bit")
	if !bytes.Equal(got, want) {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestPack7BitRoundTrip(t *testing.T) {
	samples := [][]byte{
		[]byte("7bit"),
		[]byte("Abc1234"),
		[]byte("a"),
		[]byte(""),
		[]byte("Lorem ipsum dolor sit amet"),
	}
	for _, s := range samples {
		packed := gsm7.Pack7Bit(s, 0)
		back := gsm7.Unpack7Bit(packed, 0)
		if !bytes.Equal(back, s) {
			t.Errorf("unpack(pack(%q)) = %q", s, back)
		}
	}
}

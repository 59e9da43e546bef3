package smstext_test

import (
	"strings"
	"testing"

	"github.com/go-smpp/esme/smstext"
)

const msgLong = "Lorem ipsum dolor sit amet, consectetur adipiscing elit. Nunc loborti" +
	"s faucibus ante, eget tristique nibh. Mauris feugiat rutrum nisl et d" +
	"ignissim. Suspendisse quam nulla, vulputate vel mi sit amet nunc."

func TestSplitLongGsm0338(t *testing.T) {
	if len(msgLong) != 203 {
		t.Fatalf("fixture length = %d, want 203", len(msgLong))
	}
	esmClass, coding, parts, err := smstext.Split(msgLong, smstext.DataCodingDefault)
	if err != nil {
		t.Fatal(err)
	}
	if esmClass != 0x40 {
		t.Errorf("esm_class = 0x%02X, want 0x40", esmClass)
	}
	if coding != smstext.DataCodingDefault {
		t.Errorf("coding = %v, want DEFAULT", coding)
	}
	if len(parts) != 2 {
		t.Fatalf("got %d parts, want 2", len(parts))
	}
	for _, p := range parts {
		if p[0] != 0x05 || p[1] != 0x00 || p[2] != 0x03 || p[4] != 0x02 {
			t.Errorf("bad UDH header: % X", p[:6])
		}
	}
	ref := parts[0][3]
	for _, p := range parts {
		if p[3] != ref {
			t.Error("concatenation reference differs between parts")
		}
	}
}

func TestSplitUnicodeFallsBackToUCS2(t *testing.T) {
	text := "可輸入英文單字"
	esmClass, coding, parts, err := smstext.Split(text, smstext.DataCodingDefault)
	if err != nil {
		t.Fatal(err)
	}
	if esmClass != 0x00 {
		t.Errorf("esm_class = 0x%02X, want 0x00", esmClass)
	}
	if coding != smstext.DataCodingUCS2 {
		t.Errorf("coding = %v, want UCS2", coding)
	}
	if len(parts) != 1 {
		t.Fatalf("got %d parts, want 1", len(parts))
	}
	if len(parts[0]) != 14 {
		t.Errorf("got %d bytes, want 14", len(parts[0]))
	}
}

func TestSplitShortMessageNotSegmented(t *testing.T) {
	text := "short message"
	esmClass, coding, parts, err := smstext.Split(text, smstext.DataCodingDefault)
	if err != nil {
		t.Fatal(err)
	}
	if esmClass != 0x00 || coding != smstext.DataCodingDefault || len(parts) != 1 {
		t.Errorf("unexpected split result: esm=0x%02X coding=%v parts=%d", esmClass, coding, len(parts))
	}
}

func TestSplitBinary(t *testing.T) {
	data := strings.Repeat("x", 71)
	esmClass, parts := smstext.SplitBytes([]byte(data), smstext.DataCodingBinary)
	if esmClass != 0x40 {
		t.Errorf("esm_class = 0x%02X, want 0x40", esmClass)
	}
	if len(parts) != 2 {
		t.Fatalf("got %d parts, want 2", len(parts))
	}
}

// Package gsm7 implements the GSM 03.38 default alphabet and its
// extension table, plus the 7-into-8-bit packing used to squeeze
// septets into octets on the wire.
package gsm7

import "fmt"

// Policy controls what Encode/Decode do with a code point or byte that
// has no mapping.
type Policy int

const (
	// Strict fails on the first unmappable character or byte.
	Strict Policy = iota
	// Replace substitutes a best-effort lookalike, falling back to '?'.
	Replace
	// Ignore drops the character or byte silently.
	Ignore
)

// EncodingError reports a character that has no GSM 03.38 mapping
// under the Strict policy.
type EncodingError struct {
	Rune rune
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("gsm7: no mapping for %q under strict policy", e.Rune)
}

// DecodingError reports a byte that has no GSM 03.38 mapping under the
// Strict policy.
type DecodingError struct {
	Byte byte
}

func (e *DecodingError) Error() string {
	return fmt.Sprintf("gsm7: no mapping for byte 0x%02X under strict policy", e.Byte)
}

const (
	escape      = 0x1B
	questionMark = 0x3F
	nbsp        = 0x00A0
)

// defaultToUnicode is the default alphabet, byte 0x00-0x7F (except
// 0x1B, the escape prefix) to Unicode code point.
var defaultToUnicode = map[byte]rune{
	0x00: '@', 0x01: '£', 0x02: '$', 0x03: '¥', 0x04: 'è', 0x05: 'é',
	0x06: 'ù', 0x07: 'ì', 0x08: 'ò', 0x09: 'Ç', 0x0A: '\n', 0x0B: 'Ø',
	0x0C: 'ø', 0x0D: '\r', 0x0E: 'Å', 0x0F: 'å',
	0x10: 'Δ', 0x11: '_', 0x12: 'Φ', 0x13: 'Γ', 0x14: 'Λ', 0x15: 'Ω',
	0x16: 'Π', 0x17: 'Ψ', 0x18: 'Σ', 0x19: 'Θ', 0x1A: 'Ξ',
	0x1C: 'Æ', 0x1D: 'æ', 0x1E: 'ß', 0x1F: 'É',
	0x20: ' ', 0x21: '!', 0x22: '"', 0x23: '#', 0x24: '¤', 0x25: '%',
	0x26: '&', 0x27: '\'', 0x28: '(', 0x29: ')', 0x2A: '*', 0x2B: '+',
	0x2C: ',', 0x2D: '-', 0x2E: '.', 0x2F: '/',
	0x30: '0', 0x31: '1', 0x32: '2', 0x33: '3', 0x34: '4', 0x35: '5',
	0x36: '6', 0x37: '7', 0x38: '8', 0x39: '9', 0x3A: ':', 0x3B: ';',
	0x3C: '<', 0x3D: '=', 0x3E: '>', 0x3F: '?',
	0x40: '¡', 0x41: 'A', 0x42: 'B', 0x43: 'C', 0x44: 'D', 0x45: 'E',
	0x46: 'F', 0x47: 'G', 0x48: 'H', 0x49: 'I', 0x4A: 'J', 0x4B: 'K',
	0x4C: 'L', 0x4D: 'M', 0x4E: 'N', 0x4F: 'O',
	0x50: 'P', 0x51: 'Q', 0x52: 'R', 0x53: 'S', 0x54: 'T', 0x55: 'U',
	0x56: 'V', 0x57: 'W', 0x58: 'X', 0x59: 'Y', 0x5A: 'Z', 0x5B: 'Ä',
	0x5C: 'Ö', 0x5D: 'Ñ', 0x5E: 'Ü', 0x5F: '§',
	0x60: '¿', 0x61: 'a', 0x62: 'b', 0x63: 'c', 0x64: 'd', 0x65: 'e',
	0x66: 'f', 0x67: 'g', 0x68: 'h', 0x69: 'i', 0x6A: 'j', 0x6B: 'k',
	0x6C: 'l', 0x6D: 'm', 0x6E: 'n', 0x6F: 'o',
	0x70: 'p', 0x71: 'q', 0x72: 'r', 0x73: 's', 0x74: 't', 0x75: 'u',
	0x76: 'v', 0x77: 'w', 0x78: 'x', 0x79: 'y', 0x7A: 'z', 0x7B: 'ä',
	0x7C: 'ö', 0x7D: 'ñ', 0x7E: 'ü', 0x7F: 'à',
}

// escapedToUnicode is the second "extension" plane, reached via the
// 0x1B escape prefix.
var escapedToUnicode = map[byte]rune{
	0x0A: '\f', 0x14: '^', 0x28: '{', 0x29: '}', 0x2F: '\\',
	0x3C: '[', 0x3D: '~', 0x3E: ']', 0x40: '|', 0x65: '€',
}

// replacements maps code points with no direct mapping to a lookalike
// GSM byte, used by Encode under the Replace policy before falling
// back to '?'.
var replacements = map[rune]byte{
	'ç': 0x09,
	'Ç': 0x09,
	'Α': 0x41, 'Β': 0x42, 'Ε': 0x45, 'Η': 0x48, 'Ι': 0x49, 'Κ': 0x4B,
	'Μ': 0x4D, 'Ν': 0x4E, 'Ο': 0x4F, 'Ρ': 0x50, 'Τ': 0x54, 'Χ': 0x58,
	'Υ': 0x59, 'Ζ': 0x5A,
}

var unicodeToDefault map[rune]byte
var unicodeToEscaped map[rune]byte

func init() {
	unicodeToDefault = make(map[rune]byte, len(defaultToUnicode))
	for b, r := range defaultToUnicode {
		unicodeToDefault[r] = b
	}
	unicodeToEscaped = make(map[rune]byte, len(escapedToUnicode))
	for b, r := range escapedToUnicode {
		unicodeToEscaped[r] = b
	}
}

// Encode converts text to the GSM 03.38 default alphabet, escaping
// extension-plane characters with a leading 0x1B.
func Encode(text string, policy Policy) ([]byte, error) {
	out := make([]byte, 0, len(text))
	for _, c := range text {
		if b, ok := unicodeToDefault[c]; ok {
			out = append(out, b)
			continue
		}
		if b, ok := unicodeToEscaped[c]; ok {
			out = append(out, escape, b)
			continue
		}
		switch policy {
		case Strict:
			return nil, &EncodingError{Rune: c}
		case Replace:
			if b, ok := replacements[c]; ok {
				out = append(out, b)
			} else {
				out = append(out, questionMark)
			}
		case Ignore:
		}
	}
	return out, nil
}

// Decode converts GSM 03.38 default-alphabet bytes back to text.
func Decode(data []byte, policy Policy) (string, error) {
	out := make([]rune, 0, len(data))
	for i := 0; i < len(data); i++ {
		b := data[i]
		if b == escape {
			if i+1 >= len(data) {
				out = append(out, nbsp)
				break
			}
			i++
			if r, ok := escapedToUnicode[data[i]]; ok {
				out = append(out, r)
			} else {
				out = append(out, nbsp)
			}
			continue
		}
		if r, ok := defaultToUnicode[b]; ok {
			out = append(out, r)
			continue
		}
		switch policy {
		case Strict:
			return "", &DecodingError{Byte: b}
		case Replace:
			out = append(out, '?')
		case Ignore:
		}
	}
	return string(out), nil
}

// Package smstext picks a data_coding for a short message and splits
// it into SMPP submit_sm-sized segments, prefixing multi-part messages
// with a concatenation UDH the way the SMSC expects them to arrive.
package smstext

import (
	"crypto/rand"
	"unicode/utf16"

	"golang.org/x/text/encoding/charmap"

	"github.com/go-smpp/esme/gsm7"
)

// DataCoding mirrors the SMPP data_coding values relevant to text
// segmentation.
type DataCoding int

const (
	DataCodingDefault DataCoding = 0x00
	DataCodingIA5     DataCoding = 0x01
	DataCodingBinary  DataCoding = 0x02
	DataCodingLatin1  DataCoding = 0x03
	DataCodingBinary2 DataCoding = 0x04
	DataCodingISO88595 DataCoding = 0x06
	DataCodingISO88598 DataCoding = 0x07
	DataCodingUCS2    DataCoding = 0x08
)

// EsmClass values relevant to segmentation: plain, or UDH-bearing.
const (
	EsmClassPlain DataCoding = 0x00
	EsmClassUDH   DataCoding = 0x40
)

// maxLen/chunkSize per data_coding family.
func limits(coding DataCoding) (maxLen, chunkSize int) {
	switch coding {
	case DataCodingDefault:
		return 160, 153
	case DataCodingBinary, DataCodingBinary2:
		return 70, 67
	default:
		return 140, 134
	}
}

// encodeText turns s into bytes for the requested coding, falling
// back to UCS-2 if the coding can't represent s.
func encodeText(s string, coding DataCoding) ([]byte, DataCoding, error) {
	switch coding {
	case DataCodingDefault:
		b, err := gsm7.Encode(s, gsm7.Strict)
		if err != nil {
			return ucs2(s), DataCodingUCS2, nil
		}
		return b, coding, nil
	case DataCodingLatin1, DataCodingISO88595, DataCodingISO88598:
		b, ok := encodeISO8859(s, coding)
		if !ok {
			return ucs2(s), DataCodingUCS2, nil
		}
		return b, coding, nil
	case DataCodingUCS2:
		return ucs2(s), coding, nil
	default:
		return ucs2(s), DataCodingUCS2, nil
	}
}

func encodeISO8859(s string, coding DataCoding) ([]byte, bool) {
	var enc = charmap.ISO8859_1
	switch coding {
	case DataCodingISO88595:
		enc = charmap.ISO8859_5
	case DataCodingISO88598:
		enc = charmap.ISO8859_8
	}
	b, err := enc.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return nil, false
	}
	return b, true
}

func ucs2(s string) []byte {
	units := utf16.Encode([]rune(s))
	out := make([]byte, 0, len(units)*2)
	for _, u := range units {
		out = append(out, byte(u>>8), byte(u))
	}
	return out
}

// Split picks a data_coding-appropriate encoding for text and, if the
// encoded message exceeds that coding's single-segment limit, splits
// it into UDH-prefixed parts sharing one concatenation reference.
//
// Returns the esm_class (0x00 or 0x40 for UDH), the data_coding
// actually used (may differ from requested on UCS-2 fallback), and
// the message parts ready to carry in successive submit_sm PDUs.
func Split(text string, coding DataCoding) (esmClass byte, used DataCoding, parts [][]byte, err error) {
	data, used, err := encodeText(text, coding)
	if err != nil {
		return 0, 0, nil, err
	}
	maxLen, chunkSize := limits(used)
	if len(data) <= maxLen {
		return byte(EsmClassPlain), used, [][]byte{data}, nil
	}
	ref := make([]byte, 1)
	if _, err := rand.Read(ref); err != nil {
		ref[0] = 0
	}
	var chunks [][]byte
	for len(data) > 0 {
		n := chunkSize
		if n > len(data) {
			n = len(data)
		}
		chunks = append(chunks, data[:n])
		data = data[n:]
	}
	total := byte(len(chunks))
	parts = make([][]byte, len(chunks))
	for i, chunk := range chunks {
		udh := []byte{0x05, 0x00, 0x03, ref[0], total, byte(i + 1)}
		parts[i] = append(udh, chunk...)
	}
	return byte(EsmClassUDH), used, parts, nil
}

// SplitBytes passes already-encoded data straight through to the
// segmenter for the given coding, with no further text conversion.
func SplitBytes(data []byte, coding DataCoding) (esmClass byte, parts [][]byte) {
	maxLen, chunkSize := limits(coding)
	if len(data) <= maxLen {
		return byte(EsmClassPlain), [][]byte{data}
	}
	ref := make([]byte, 1)
	if _, err := rand.Read(ref); err != nil {
		ref[0] = 0
	}
	var chunks [][]byte
	for len(data) > 0 {
		n := chunkSize
		if n > len(data) {
			n = len(data)
		}
		chunks = append(chunks, data[:n])
		data = data[n:]
	}
	total := byte(len(chunks))
	parts = make([][]byte, len(chunks))
	for i, chunk := range chunks {
		udh := []byte{0x05, 0x00, 0x03, ref[0], total, byte(i + 1)}
		parts[i] = append(udh, chunk...)
	}
	return byte(EsmClassUDH), parts
}

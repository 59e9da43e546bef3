package pdu

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestBindTransceiverScenario is the canonical bind_transceiver vector
// (scenario S1): system_id="demofoo", password="secret!", no other
// params set, status=0, sequence=0.
func TestBindTransceiverScenario(t *testing.T) {
	bind := &BindTRx{
		SystemID:         "demofoo",
		Password:         "secret!",
		InterfaceVersion: 0x34,
	}
	body, err := bind.MarshalBinary()
	require.NoError(t, err)
	assert.Equal(t, "64656d6f666f6f0073656372657421000034000000", hex.EncodeToString(body))

	// The full wire vector: header (command_length, bind_transceiver,
	// status=0, sequence_number=0) followed by the body above.
	want, err := hex.DecodeString("00000025000000090000000000000000" + hex.EncodeToString(body))
	require.NoError(t, err)
	assert.EqualValues(t, len(want), binary.BigEndian.Uint32(want[:4]))

	dec := NewDecoder(bytes.NewBuffer(want))
	h, p, err := dec.Decode()
	require.NoError(t, err)
	assert.EqualValues(t, 0, h.Sequence())
	got, ok := p.(*BindTRx)
	require.True(t, ok)
	assert.Equal(t, "demofoo", got.SystemID)
	assert.Equal(t, "secret!", got.Password)
	assert.Equal(t, 0x34, got.InterfaceVersion)
}

// dataSmCanonicalHex is the canonical data_sm test vector (scenario S8):
// sequence 22651, source_addr "IpsumInfo", payload_type=1,
// callback_num="417175102032", a 350-byte message_payload, and a
// trailing TLV tagged 0x1401 that no registry entry declares.
const dataSmCanonicalHex = "000001ac00000103000000000000587b000500497073756d496e666f000101" +
	"343137313735313032303332000000000019000101" +
	"0424015e" +
	"4c6f72656d20697073756d20646f6c6f722073697420616d65742c20636f6e73656374657475722061646970697363696e67" +
	"20656c69742e205072616573656e74207669746165206e6571756520626962656e64756d206f72636920636f6e67756520766573746962756c756d2e" +
	"20446f6e6563207669746165207469" +
	"6e636964756e742072697375732e204d617572697320657520636f6e677565206573742e2053757370656e64697373652072686f6e637573206469" +
	"616d2072697375732e20496e2073656d7065722073656d207175697320636f6e64696d656e74756d2072686f6e6375732e20496e2076656c2075" +
	"726e612072697375732e204e616d2075742070757275732073697420616d6574206c696265726f206c6163696e696120736f6c6c696369747564" +
	"696e2e20446f6e6563207072657469756d206f726e6172652064756920696e206d616c65737561646120706f73756572652e" +
	"0381000c34313731373531303230333214010002f4e0"

// TestDataSmCanonicalVector decodes the canonical data_sm vector and
// checks the declared fields survive, while the trailing unknown TLV
// (tag 0x1401) is dropped -- testable property 3.
func TestDataSmCanonicalVector(t *testing.T) {
	raw, err := hex.DecodeString(dataSmCanonicalHex)
	require.NoError(t, err)

	dec := NewDecoder(bytes.NewBuffer(raw))
	h, p, err := dec.Decode()
	require.NoError(t, err)
	assert.EqualValues(t, 22651, h.Sequence())

	dsm, ok := p.(*DataSm)
	require.True(t, ok)
	assert.Equal(t, "IpsumInfo", dsm.SourceAddr)
	require.NotNil(t, dsm.Options)

	payloadType, ok := dsm.Options.GetSingle(TagPayloadType)
	require.True(t, ok)
	assert.Equal(t, 1, payloadType)

	callback, ok := dsm.Options.Get(TagCallbackNum)
	require.True(t, ok)
	assert.Equal(t, "417175102032", string(callback))

	payload, ok := dsm.Options.Get(TagMessagePayload)
	require.True(t, ok)
	assert.Len(t, payload, 350)

	_, ok = dsm.Options.Get(TagID(0x1401))
	assert.False(t, ok, "unknown TLV tag 0x1401 must be skipped on decode")

	// Appending the unknown TLV must not change the PDU compared to
	// decoding the same bytes without it (property 3, generalized).
	withoutUnknown, err := hex.DecodeString(dataSmCanonicalHex[:len(dataSmCanonicalHex)-len("14010002f4e0")])
	require.NoError(t, err)
	// Patch the command_length field down by the 6 bytes we dropped.
	withoutUnknown[3] -= 6
	dec2 := NewDecoder(bytes.NewBuffer(withoutUnknown))
	_, p2, err := dec2.Decode()
	require.NoError(t, err)
	assert.True(t, reflect.DeepEqual(p, p2), "decoding with/without the unknown trailing TLV must agree")
}

// TestUnknownTLVDropped is the generic form of testable property 3:
// appending an arbitrary TLV whose tag is not in the registry must not
// change the decoded PDU.
func TestUnknownTLVDropped(t *testing.T) {
	orig := &SubmitSm{
		SourceAddr:      "test",
		DestinationAddr: "test2",
		ShortMessage:    "msg",
	}
	body, err := orig.MarshalBinary()
	require.NoError(t, err)

	// tag=0xFFFE (not a standard tag, never registered), len=2, value=AA BB.
	tampered := append(append([]byte{}, body...), 0xFF, 0xFE, 0x00, 0x02, 0xAA, 0xBB)

	var decoded, decodedTampered SubmitSm
	require.NoError(t, decoded.UnmarshalBinary(body))
	require.NoError(t, decodedTampered.UnmarshalBinary(tampered))
	require.NotNil(t, decodedTampered.Options)
	_, ok := decodedTampered.Options.Get(TagID(0xFFFE))
	assert.False(t, ok, "unknown tag must not survive into Options.fields")
	// The tampered copy gains an (empty) Options value simply because the
	// wire body is no longer zero-length past the mandatory fields; what
	// matters is that the unknown tag itself never made it into fields.
	decoded.Options = nil
	decodedTampered.Options = nil
	assert.Equal(t, decoded, decodedTampered)
}

// TestCStringTruncation is testable property 4: encoding a value longer
// than a field's max_len truncates it to max_len-1 bytes plus a NUL.
func TestCStringTruncation(t *testing.T) {
	long := "this-source-address-is-far-too-long-for-the-wire-limit"
	require.True(t, len(long) > 21)

	p := &SubmitSm{
		SourceAddr:      long,
		DestinationAddr: "short",
	}
	body, err := p.MarshalBinary()
	require.NoError(t, err)

	var got SubmitSm
	require.NoError(t, got.UnmarshalBinary(body))
	assert.Equal(t, long[:20], got.SourceAddr)
	assert.Len(t, got.SourceAddr, 20)
}

// TestSequenceWrap is testable property 5: after Next() returns
// MaxSequence, the following call returns MinSequence.
func TestSequenceWrap(t *testing.T) {
	seq := NewSequencer(MaxSequence)
	assert.Equal(t, MaxSequence, seq.Next())
	assert.Equal(t, MinSequence, seq.Next())
}

// TestShortMessagePayloadExclusivity is testable property 9: a submit_sm
// (and its siblings) with both short_message and message_payload set
// must fail to encode with a PduParseError.
func TestShortMessagePayloadExclusivity(t *testing.T) {
	t.Run("submit_sm", func(t *testing.T) {
		p := &SubmitSm{
			ShortMessage: "hi",
			Options:      NewOptions().SetMessagePayload("also set"),
		}
		_, err := p.MarshalBinary()
		require.Error(t, err)
		assert.IsType(t, &PduParseError{}, err)
	})
	t.Run("deliver_sm", func(t *testing.T) {
		p := &DeliverSm{
			ShortMessage: "hi",
			Options:      NewOptions().SetMessagePayload("also set"),
		}
		_, err := p.MarshalBinary()
		require.Error(t, err)
		assert.IsType(t, &PduParseError{}, err)
	})
	t.Run("submit_multi", func(t *testing.T) {
		p := &SubmitMulti{
			ShortMessage: "hi",
			Options:      NewOptions().SetMessagePayload("also set"),
		}
		_, err := p.MarshalBinary()
		require.Error(t, err)
		assert.IsType(t, &PduParseError{}, err)
	})
}

// TestNewPDUTypesRoundTrip exercises Marshal/Unmarshal round trips for
// the six command types with no coverage in pduTT: ReplaceSm, CancelSm,
// Outbind, SubmitMulti, AlertNotification and DataSm.
func TestNewPDUTypesRoundTrip(t *testing.T) {
	cases := []struct {
		desc string
		pdu  PDU
	}{
		{
			"cancel_sm",
			&CancelSm{
				ServiceType:     "SMS",
				MessageID:       "msg-1",
				SourceAddrTon:   1,
				SourceAddrNpi:   1,
				SourceAddr:      "source",
				DestAddrTon:     1,
				DestAddrNpi:     1,
				DestinationAddr: "destination",
			},
		},
		{
			"replace_sm",
			&ReplaceSm{
				MessageID:          "msg-2",
				SourceAddrTon:      1,
				SourceAddrNpi:      1,
				SourceAddr:         "source",
				RegisteredDelivery: 1,
				SmDefaultMsgID:     0,
				ShortMessage:       "replacement text",
			},
		},
		{
			"outbind",
			&Outbind{
				SystemID: "SMSC-ID",
				Password: "secret",
			},
		},
		{
			"alert_notification",
			&AlertNotification{
				SourceAddrTon: 1,
				SourceAddrNpi: 1,
				SourceAddr:    "source",
				EsmeAddrTon:   1,
				EsmeAddrNpi:   1,
				EsmeAddr:      "esme",
			},
		},
		{
			"data_sm",
			&DataSm{
				SourceAddrTon:   1,
				SourceAddrNpi:   1,
				SourceAddr:      "source",
				DestAddrTon:     1,
				DestAddrNpi:     1,
				DestinationAddr: "destination",
				DataCoding:      1,
				Options:         NewOptions().SetUserMessageReference(0x42),
			},
		},
		{
			"submit_multi",
			&SubmitMulti{
				SourceAddr: "source",
				DestAddress: []DestAddress{
					{DestFlag: DestFlagSME, Ton: 1, Npi: 1, Addr: "dest1"},
					{DestFlag: DestFlagDlName, DlName: "distlist"},
				},
				ShortMessage: "hi everyone",
			},
		},
		{
			"submit_multi_resp",
			&SubmitMultiResp{
				MessageID: "msg-3",
				UnsuccessSme: []UnsuccessSme{
					{Ton: 1, Npi: 1, Addr: "dest1", ErrorStatusCode: StatusInvDstAdr},
				},
			},
		},
		{"cancel_sm_resp", &CancelSmResp{}},
		{"replace_sm_resp", &ReplaceSmResp{}},
		{
			"data_sm_resp",
			&DataSmResp{
				MessageID: "msg-4",
				Options:   NewOptions().SetUserMessageReference(0x7),
			},
		},
	}
	for _, c := range cases {
		t.Run(c.desc, func(t *testing.T) {
			body, err := c.pdu.MarshalBinary()
			require.NoError(t, err)
			got := reflect.New(reflect.TypeOf(c.pdu).Elem()).Interface().(PDU)
			require.NoError(t, got.UnmarshalBinary(body))
			assert.Equal(t, c.pdu, got)
		})
	}
}

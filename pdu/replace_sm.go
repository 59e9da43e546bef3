package pdu

import (
	"fmt"
	"time"

	smpptime "github.com/go-smpp/esme/time"
)

// ReplaceSm replaces the short message, scheduling and delivery
// attributes of a previously submitted message identified by MessageID.
// There is no need to set sm_length, it is derived from ShortMessage
// when encoding.
type ReplaceSm struct {
	MessageID            string
	SourceAddrTon        int
	SourceAddrNpi        int
	SourceAddr           string
	ScheduleDeliveryTime time.Time
	ValidityPeriod       time.Time
	RegisteredDelivery   int
	SmDefaultMsgID       int
	ShortMessage         string
}

// CommandID implements pdu.PDU interface.
func (p ReplaceSm) CommandID() CommandID {
	return ReplaceSmID
}

// Response creates new ReplaceSmResp.
func (p ReplaceSm) Response() *ReplaceSmResp {
	return &ReplaceSmResp{}
}

// MarshalBinary implements encoding.BinaryMarshaler interface.
func (p ReplaceSm) MarshalBinary() ([]byte, error) {
	out := cString(p.MessageID, 65)
	out = append(out, byte(p.SourceAddrTon), byte(p.SourceAddrNpi))
	out = append(out, cString(p.SourceAddr, 21)...)
	tm, err := writeTime(smpptime.Absolute, p.ScheduleDeliveryTime)
	if err != nil {
		return nil, err
	}
	out = append(out, tm...)
	tm, err = writeTime(smpptime.Absolute, p.ValidityPeriod)
	if err != nil {
		return nil, err
	}
	out = append(out, tm...)
	l := len(p.ShortMessage)
	out = append(out, byte(p.RegisteredDelivery), byte(p.SmDefaultMsgID), byte(l))
	if l > 0 {
		out = append(out, []byte(p.ShortMessage)...)
	}
	return out, nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler interface.
func (p *ReplaceSm) UnmarshalBinary(body []byte) error {
	if len(body) < 8 {
		return fmt.Errorf("smpp/pdu: replace_sm body too short: %d", len(body))
	}
	buf := newBuffer(body)
	res, err := buf.ReadCString(65)
	if err != nil {
		return fmt.Errorf("smpp/pdu: decoding message_id %s", err)
	}
	p.MessageID = string(res)
	b, err := buf.ReadByte()
	if err != nil {
		return fmt.Errorf("smpp/pdu: decoding source_addr_ton %s", err)
	}
	p.SourceAddrTon = int(b)
	b, err = buf.ReadByte()
	if err != nil {
		return fmt.Errorf("smpp/pdu: decoding source_addr_npi %s", err)
	}
	p.SourceAddrNpi = int(b)
	res, err = buf.ReadCString(21)
	if err != nil {
		return fmt.Errorf("smpp/pdu: decoding source_addr %s", err)
	}
	p.SourceAddr = string(res)
	res, err = buf.ReadCString(17)
	if err != nil {
		return fmt.Errorf("smpp/pdu: decoding schedule_delivery_time %s", err)
	}
	t, err := smpptime.Parse(res)
	if err != nil {
		return fmt.Errorf("smpp/pdu: decoding schedule_delivery_time %s", err)
	}
	p.ScheduleDeliveryTime = t
	res, err = buf.ReadCString(17)
	if err != nil {
		return fmt.Errorf("smpp/pdu: decoding validity_period %s", err)
	}
	t, err = smpptime.Parse(res)
	if err != nil {
		return fmt.Errorf("smpp/pdu: decoding validity_period %s", err)
	}
	p.ValidityPeriod = t
	b, err = buf.ReadByte()
	if err != nil {
		return fmt.Errorf("smpp/pdu: decoding registered_delivery %s", err)
	}
	p.RegisteredDelivery = int(b)
	b, err = buf.ReadByte()
	if err != nil {
		return fmt.Errorf("smpp/pdu: decoding sm_default_msg_id %s", err)
	}
	p.SmDefaultMsgID = int(b)
	sm, err := buf.ReadString(254)
	if err != nil {
		return fmt.Errorf("smpp/pdu: decoding short_message %s", err)
	}
	p.ShortMessage = string(sm)
	return nil
}

// ReplaceSmResp holds the (empty) response to replace_sm.
type ReplaceSmResp struct{}

// CommandID implements pdu.PDU interface.
func (p ReplaceSmResp) CommandID() CommandID {
	return ReplaceSmRespID
}

// MarshalBinary implements encoding.BinaryMarshaler interface.
func (p ReplaceSmResp) MarshalBinary() ([]byte, error) {
	return nil, nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler interface.
func (p *ReplaceSmResp) UnmarshalBinary(body []byte) error {
	return nil
}

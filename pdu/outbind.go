package pdu

import "fmt"

// Outbind is sent by an SMSC to an ESME to signal that it should bind
// as a receiver/transceiver. It has no response PDU. Not produced by
// this library's own ESME role, only decoded when acting as the
// recipient of one.
type Outbind struct {
	SystemID string
	Password string
}

// CommandID implements pdu.PDU interface.
func (p Outbind) CommandID() CommandID {
	return OutbindID
}

// MarshalBinary implements encoding.BinaryMarshaler interface.
func (p Outbind) MarshalBinary() ([]byte, error) {
	out := cString(p.SystemID, 16)
	out = append(out, cString(p.Password, 9)...)
	return out, nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler interface.
func (p *Outbind) UnmarshalBinary(body []byte) error {
	if len(body) < 2 {
		return fmt.Errorf("smpp/pdu: outbind body too short: %d", len(body))
	}
	buf := newBuffer(body)
	res, err := buf.ReadCString(16)
	if err != nil {
		return fmt.Errorf("smpp/pdu: decoding system_id %s", err)
	}
	p.SystemID = string(res)
	res, err = buf.ReadCString(9)
	if err != nil {
		return fmt.Errorf("smpp/pdu: decoding password %s", err)
	}
	p.Password = string(res)
	return nil
}

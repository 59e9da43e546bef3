package pdu

import "fmt"

// DataSm transfers data between an ESME and the SMSC in an
// interactive, session-oriented fashion; the message content itself
// travels only as the message_payload TLV (no short_message/sm_length
// pair, unlike submit_sm/deliver_sm).
type DataSm struct {
	ServiceType        string
	SourceAddrTon      int
	SourceAddrNpi      int
	SourceAddr         string
	DestAddrTon        int
	DestAddrNpi        int
	DestinationAddr    string
	EsmClass           EsmClass
	RegisteredDelivery RegisteredDelivery
	DataCoding         int
	Options            *Options
}

// CommandID implements pdu.PDU interface.
func (p DataSm) CommandID() CommandID {
	return DataSmID
}

// Response creates new DataSmResp.
func (p DataSm) Response(msgID string) *DataSmResp {
	return &DataSmResp{
		MessageID: msgID,
	}
}

// MarshalBinary implements encoding.BinaryMarshaler interface.
func (p DataSm) MarshalBinary() ([]byte, error) {
	out := cString(p.ServiceType, 6)
	out = append(out, byte(p.SourceAddrTon), byte(p.SourceAddrNpi))
	out = append(out, cString(p.SourceAddr, 21)...)
	out = append(out, byte(p.DestAddrTon), byte(p.DestAddrNpi))
	out = append(out, cString(p.DestinationAddr, 21)...)
	out = append(out, p.EsmClass.Byte(), p.RegisteredDelivery.Byte(), byte(p.DataCoding))
	if p.Options == nil {
		return out, nil
	}
	opts, err := p.Options.MarshalBinary()
	if err != nil {
		return nil, err
	}
	return append(out, opts...), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler interface.
func (p *DataSm) UnmarshalBinary(body []byte) error {
	if len(body) < 10 {
		return fmt.Errorf("smpp/pdu: data_sm body too short: %d", len(body))
	}
	buf := newBuffer(body)
	res, err := buf.ReadCString(6)
	if err != nil {
		return fmt.Errorf("smpp/pdu: decoding service_type %s", err)
	}
	p.ServiceType = string(res)
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
	b, err = buf.ReadByte()
	if err != nil {
		return fmt.Errorf("smpp/pdu: decoding dest_addr_ton %s", err)
	}
	p.DestAddrTon = int(b)
	b, err = buf.ReadByte()
	if err != nil {
		return fmt.Errorf("smpp/pdu: decoding dest_addr_npi %s", err)
	}
	p.DestAddrNpi = int(b)
	res, err = buf.ReadCString(21)
	if err != nil {
		return fmt.Errorf("smpp/pdu: decoding destination_addr %s", err)
	}
	p.DestinationAddr = string(res)
	b, err = buf.ReadByte()
	if err != nil {
		return fmt.Errorf("smpp/pdu: decoding esm_class %s", err)
	}
	p.EsmClass = ParseEsmClass(b)
	b, err = buf.ReadByte()
	if err != nil {
		return fmt.Errorf("smpp/pdu: decoding registered_delivery %s", err)
	}
	p.RegisteredDelivery = ParseRegisteredDelivery(b)
	b, err = buf.ReadByte()
	if err != nil {
		return fmt.Errorf("smpp/pdu: decoding data_coding %s", err)
	}
	p.DataCoding = int(b)
	if buf.Len() == 0 {
		return nil
	}
	p.Options = NewOptions()
	return p.Options.UnmarshalBinary(buf.Bytes(), p.CommandID())
}

// DataSmResp holds the response to data_sm.
type DataSmResp struct {
	MessageID string
	Options   *Options
}

// CommandID implements pdu.PDU interface.
func (p DataSmResp) CommandID() CommandID {
	return DataSmRespID
}

// MarshalBinary implements encoding.BinaryMarshaler interface.
func (p DataSmResp) MarshalBinary() ([]byte, error) {
	return cStringOptsRespMarshal(p.MessageID, 65, p.Options)
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler interface.
func (p *DataSmResp) UnmarshalBinary(body []byte) error {
	var err error
	p.MessageID, p.Options, err = cStringOptsRespUnmarshal(body, p.CommandID())
	return err
}

package pdu

import (
	"fmt"
	"time"

	smpptime "github.com/go-smpp/esme/time"
)

// Destination flag values for DestAddress.DestFlag.
const (
	DestFlagSME    = 1
	DestFlagDlName = 2
)

// DestAddress is one entry of submit_multi's dest_address list: a
// tagged union on DestFlag. DestFlagSME carries (Ton, Npi, Addr);
// DestFlagDlName carries only DlName (a pre-defined distribution list).
type DestAddress struct {
	DestFlag int
	Ton      int
	Npi      int
	Addr     string
	DlName   string
}

// UnsuccessSme is one entry of submit_multi_resp's unsuccess_sme list.
type UnsuccessSme struct {
	Ton             int
	Npi             int
	Addr            string
	ErrorStatusCode Status
}

// SubmitMulti submits a short message to multiple recipients in one
// request. There is no need to set SmLength or NumberOfDests, both are
// derived when encoding.
type SubmitMulti struct {
	ServiceType          string
	SourceAddrTon        int
	SourceAddrNpi        int
	SourceAddr           string
	DestAddress          []DestAddress
	EsmClass             EsmClass
	ProtocolID           int
	PriorityFlag         int
	ScheduleDeliveryTime time.Time
	ValidityPeriod       time.Time
	RegisteredDelivery   RegisteredDelivery
	ReplaceIfPresentFlag int
	DataCoding           int
	SmDefaultMsgID       int
	ShortMessage         string
	Options              *Options
}

// CommandID implements pdu.PDU interface.
func (p SubmitMulti) CommandID() CommandID {
	return SubmitMultiID
}

// Response creates new SubmitMultiResp.
func (p SubmitMulti) Response(msgID string) *SubmitMultiResp {
	return &SubmitMultiResp{
		MessageID: msgID,
	}
}

// MarshalBinary implements encoding.BinaryMarshaler interface.
func (p SubmitMulti) MarshalBinary() ([]byte, error) {
	if p.ShortMessage != "" && p.Options != nil && p.Options.MessagePayload() != "" {
		return nil, &PduParseError{Msg: "short_message and message_payload cannot coexist"}
	}
	out := cString(p.ServiceType, 6)
	out = append(out, byte(p.SourceAddrTon), byte(p.SourceAddrNpi))
	out = append(out, cString(p.SourceAddr, 21)...)
	out = append(out, byte(len(p.DestAddress)))
	for _, d := range p.DestAddress {
		out = append(out, byte(d.DestFlag))
		if d.DestFlag == DestFlagDlName {
			out = append(out, cString(d.DlName, 21)...)
			continue
		}
		out = append(out, byte(d.Ton), byte(d.Npi))
		out = append(out, cString(d.Addr, 21)...)
	}
	out = append(out, p.EsmClass.Byte(), byte(p.ProtocolID), byte(p.PriorityFlag))
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
	out = append(out, p.RegisteredDelivery.Byte(), byte(p.ReplaceIfPresentFlag), byte(p.DataCoding), byte(p.SmDefaultMsgID), byte(l))
	if l > 0 {
		out = append(out, []byte(p.ShortMessage)...)
	}
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
func (p *SubmitMulti) UnmarshalBinary(body []byte) error {
	if len(body) < 9 {
		return fmt.Errorf("smpp/pdu: submit_multi body too short: %d", len(body))
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
	numDests, err := buf.ReadByte()
	if err != nil {
		return fmt.Errorf("smpp/pdu: decoding number_of_dests %s", err)
	}
	p.DestAddress = make([]DestAddress, 0, numDests)
	for i := 0; i < int(numDests); i++ {
		flag, err := buf.ReadByte()
		if err != nil {
			return fmt.Errorf("smpp/pdu: decoding dest_flag %s", err)
		}
		d := DestAddress{DestFlag: int(flag)}
		if d.DestFlag == DestFlagDlName {
			res, err := buf.ReadCString(21)
			if err != nil {
				return fmt.Errorf("smpp/pdu: decoding dl_name %s", err)
			}
			d.DlName = string(res)
		} else {
			ton, err := buf.ReadByte()
			if err != nil {
				return fmt.Errorf("smpp/pdu: decoding dest_addr_ton %s", err)
			}
			npi, err := buf.ReadByte()
			if err != nil {
				return fmt.Errorf("smpp/pdu: decoding dest_addr_npi %s", err)
			}
			res, err := buf.ReadCString(21)
			if err != nil {
				return fmt.Errorf("smpp/pdu: decoding destination_addr %s", err)
			}
			d.Ton = int(ton)
			d.Npi = int(npi)
			d.Addr = string(res)
		}
		p.DestAddress = append(p.DestAddress, d)
	}
	b, err = buf.ReadByte()
	if err != nil {
		return fmt.Errorf("smpp/pdu: decoding esm_class %s", err)
	}
	p.EsmClass = ParseEsmClass(b)
	b, err = buf.ReadByte()
	if err != nil {
		return fmt.Errorf("smpp/pdu: decoding protocol_id %s", err)
	}
	p.ProtocolID = int(b)
	b, err = buf.ReadByte()
	if err != nil {
		return fmt.Errorf("smpp/pdu: decoding priority_flag %s", err)
	}
	p.PriorityFlag = int(b)
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
	p.RegisteredDelivery = ParseRegisteredDelivery(b)
	b, err = buf.ReadByte()
	if err != nil {
		return fmt.Errorf("smpp/pdu: decoding replace_if_present_flag %s", err)
	}
	p.ReplaceIfPresentFlag = int(b)
	b, err = buf.ReadByte()
	if err != nil {
		return fmt.Errorf("smpp/pdu: decoding data_coding %s", err)
	}
	p.DataCoding = int(b)
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
	if buf.Len() == 0 {
		return nil
	}
	p.Options = NewOptions()
	return p.Options.UnmarshalBinary(buf.Bytes(), p.CommandID())
}

// SubmitMultiResp holds the response to submit_multi, reporting the
// per-destination addresses it failed to submit to.
type SubmitMultiResp struct {
	MessageID    string
	UnsuccessSme []UnsuccessSme
}

// CommandID implements pdu.PDU interface.
func (p SubmitMultiResp) CommandID() CommandID {
	return SubmitMultiRespID
}

// MarshalBinary implements encoding.BinaryMarshaler interface.
func (p SubmitMultiResp) MarshalBinary() ([]byte, error) {
	out := cString(p.MessageID, 65)
	out = append(out, byte(len(p.UnsuccessSme)))
	for _, u := range p.UnsuccessSme {
		out = append(out, byte(u.Ton), byte(u.Npi))
		out = append(out, cString(u.Addr, 21)...)
		out = append(out, byte(u.ErrorStatusCode))
	}
	return out, nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler interface.
func (p *SubmitMultiResp) UnmarshalBinary(body []byte) error {
	if len(body) < 2 {
		return fmt.Errorf("smpp/pdu: submit_multi_resp body too short: %d", len(body))
	}
	buf := newBuffer(body)
	res, err := buf.ReadCString(65)
	if err != nil {
		return fmt.Errorf("smpp/pdu: decoding message_id %s", err)
	}
	p.MessageID = string(res)
	noUnsuccess, err := buf.ReadByte()
	if err != nil {
		return fmt.Errorf("smpp/pdu: decoding no_unsuccess %s", err)
	}
	p.UnsuccessSme = make([]UnsuccessSme, 0, noUnsuccess)
	for i := 0; i < int(noUnsuccess); i++ {
		ton, err := buf.ReadByte()
		if err != nil {
			return fmt.Errorf("smpp/pdu: decoding dest_addr_ton %s", err)
		}
		npi, err := buf.ReadByte()
		if err != nil {
			return fmt.Errorf("smpp/pdu: decoding dest_addr_npi %s", err)
		}
		res, err := buf.ReadCString(21)
		if err != nil {
			return fmt.Errorf("smpp/pdu: decoding destination_addr %s", err)
		}
		errStatus, err := buf.ReadByte()
		if err != nil {
			return fmt.Errorf("smpp/pdu: decoding error_status_code %s", err)
		}
		p.UnsuccessSme = append(p.UnsuccessSme, UnsuccessSme{
			Ton:             int(ton),
			Npi:             int(npi),
			Addr:            string(res),
			ErrorStatusCode: Status(errStatus),
		})
	}
	return nil
}

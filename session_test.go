package smpp_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/go-smpp/esme"
	"github.com/go-smpp/esme/mock"
	"github.com/go-smpp/esme/pdu"
)

type testSequencer struct {
	seq  uint32
	skip bool
}

func (ts *testSequencer) Next() uint32 {
	if !ts.skip {
		ts.seq++
	} else {
		ts.skip = false
	}
	return ts.seq
}

func (ts *testSequencer) skipNext() {
	ts.skip = true
}

type testEncoder struct {
	buf *bytes.Buffer
	enc *pdu.Encoder
	seq *testSequencer
}

func newTestEncoder(i int) *testEncoder {
	buf := bytes.NewBuffer(nil)
	seq := &testSequencer{seq: uint32(i)}
	return &testEncoder{
		buf: buf,
		seq: seq,
		enc: pdu.NewEncoder(buf, seq),
	}
}

// Encode by incrementing counter.
func (te *testEncoder) i(p pdu.PDU, status ...pdu.Status) []byte {
	te.buf.Reset()
	st := pdu.StatusOK
	if len(status) > 0 {
		st = status[0]
	}
	_, err := te.enc.Encode(p, pdu.EncodeStatus(st))
	if err != nil {
		panic(err.Error())
	}
	out := make([]byte, te.buf.Len())
	copy(out, te.buf.Bytes())
	return out
}

// Encode by skipping increment.
func (te *testEncoder) s(p pdu.PDU, status ...pdu.Status) []byte {
	te.buf.Reset()
	st := pdu.StatusOK
	if len(status) > 0 {
		st = status[0]
	}
	te.seq.skipNext()
	_, err := te.enc.Encode(p, pdu.EncodeStatus(st))
	if err != nil {
		panic(err.Error())
	}
	out := make([]byte, te.buf.Len())
	copy(out, te.buf.Bytes())
	return out
}

func TestESMESession(t *testing.T) {
	bindTRx := &pdu.BindTRx{
		SystemID:         "ESME",
		Password:         "password",
		SystemType:       "type",
		InterfaceVersion: smpp.Version,
		AddressRange:     "111111",
	}
	bindTRxResp := bindTRx.Response("SMSC")
	bindTRxResp.Options = pdu.NewOptions().SetScInterfaceVersion(smpp.Version)
	submitSm := &pdu.SubmitSm{
		SourceAddr:      "source",
		DestinationAddr: "destination",
		ShortMessage:    "this is the message",
	}
	submitSmResp := submitSm.Response("id0")
	unbind := pdu.Unbind{}
	unbindResp := pdu.UnbindResp{}
	e := newTestEncoder(0)
	conn := mock.NewConn().
		ByteWrite(e.i(bindTRx)).ByteRead(e.s(bindTRxResp)).
		ByteWrite(e.i(submitSm)).ByteRead(e.s(submitSmResp)).
		Wait(1).
		ByteWrite(e.i(unbind)).ByteRead(e.s(unbindResp)).
		Wait(1).
		Closed()
	conf := smpp.SessionConf{
		SystemID: "TestingESME",
	}
	sess := smpp.NewSession(conn, conf)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	resp, err := sess.Send(ctx, bindTRx)
	if err != nil {
		t.Fatal(err)
	}
	if resp.CommandID() != pdu.BindTransceiverRespID {
		t.Errorf("expected BindTransceiverRespID got %d", resp.CommandID())
	}
	resp, err = sess.Send(ctx, submitSm)
	if err != nil {
		t.Fatal(err)
	}
	if resp.CommandID() != pdu.SubmitSmRespID {
		t.Errorf("expected SubmitSmRespID got %d", resp.CommandID())
	}
	resp, err = sess.Send(ctx, unbind)
	if err != nil {
		t.Fatal(err)
	}
	if resp.CommandID() != pdu.UnbindRespID {
		t.Errorf("expected UnbindRespID got %d", resp.CommandID())
	}
	if err := sess.Close(); err != nil {
		t.Errorf("Got error during session close %+v", err)
	}
	errors := conn.Validate()
	if errors != nil {
		for _, err := range errors {
			t.Error(err)
		}
	}
}

func TestESMESessionInvalidStatus(t *testing.T) {
	bindTRx := &pdu.BindTRx{
		SystemID: "ESME",
	}
	bindTRxResp := bindTRx.Response("SMSC")
	submitSm := &pdu.SubmitSm{
		SourceAddr:      "source",
		DestinationAddr: "destination",
		ShortMessage:    "this is the message",
	}
	submitSmResp := submitSm.Response("id0")
	e := newTestEncoder(0)
	conn := mock.NewConn().
		ByteWrite(e.i(bindTRx)).ByteRead(e.s(bindTRxResp)).
		ByteWrite(e.i(submitSm)).ByteRead(e.s(submitSmResp, pdu.StatusInvDstAdr)).
		Wait(1).
		Closed()
	conf := smpp.SessionConf{}
	sess := smpp.NewSession(conn, conf)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	resp, err := sess.Send(ctx, bindTRx)
	if err != nil {
		t.Fatal(err)
	}
	if resp.CommandID() != pdu.BindTransceiverRespID {
		t.Errorf("expected BindTransceiverRespID got %d", resp.CommandID())
	}
	resp, err = sess.Send(ctx, submitSm)
	if err == nil {
		t.Errorf("Expected status error got nil")
	}
	if resp.CommandID() != pdu.SubmitSmRespID {
		t.Errorf("expected SubmitSmRespID got %d", resp.CommandID())
	}
	if serr, ok := err.(smpp.StatusError); !ok {
		t.Errorf("Expected StatusError type")
	} else {
		expected := "Invalid Destination Address '0xB'"
		if serr.Error() != expected {
			t.Errorf("Status error: %v, expected %s", err, expected)
		}
	}
	if err := sess.Close(); err != nil {
		t.Errorf("Got error during session close %+v", err)
	}
	errors := conn.Validate()
	if errors != nil {
		for _, err := range errors {
			t.Error(err)
		}
	}
}

// TestESMESessionDeliverSm exercises the other direction of traffic on a
// bound session: the SMSC pushes a deliver_sm (e.g. an MO message or a
// delivery receipt) and the ESME's Handler answers it via ctx.Respond,
// the same mechanism used for any unsolicited request from the peer.
func TestESMESessionDeliverSm(t *testing.T) {
	bindTRx := &pdu.BindTRx{
		SystemID:         "ESME",
		Password:         "password",
		SystemType:       "type",
		InterfaceVersion: smpp.Version,
		AddressRange:     "111111",
	}
	bindTRxResp := bindTRx.Response("SMSC")
	bindTRxResp.Options = pdu.NewOptions().SetScInterfaceVersion(smpp.Version)

	deliverSm := &pdu.DeliverSm{
		SourceAddr:      "source",
		DestinationAddr: "destination",
		ShortMessage:    "mo message",
	}
	deliverSmResp := deliverSm.Response("")

	sync := make(chan struct{})
	e := newTestEncoder(0)
	conn := mock.NewConn().
		ByteWrite(e.i(bindTRx)).ByteRead(e.s(bindTRxResp)).
		ByteRead(e.i(deliverSm, pdu.StatusOK)).ByteWrite(e.s(deliverSmResp, pdu.StatusOK)).
		Wait(1).
		Closed()
	conf := smpp.SessionConf{
		SystemID: "TestingESME",
		Handler: smpp.HandlerFunc(func(ctx *smpp.Context) {
			if ctx.CommandID() != pdu.DeliverSmID {
				return
			}
			defer close(sync)
			dsm, err := ctx.DeliverSm()
			if err != nil {
				t.Errorf("Handler can't get DeliverSm request %v", err)
				return
			}
			if err := ctx.Respond(dsm.Response(""), pdu.StatusOK); err != nil {
				t.Errorf("Handler can't respond to DeliverSm request %v", err)
			}
		}),
	}
	sess := smpp.NewSession(conn, conf)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	resp, err := sess.Send(ctx, bindTRx)
	if err != nil {
		t.Fatal(err)
	}
	if resp.CommandID() != pdu.BindTransceiverRespID {
		t.Errorf("expected BindTransceiverRespID got %d", resp.CommandID())
	}
	select {
	case <-time.After(50 * time.Millisecond):
		t.Fatal("timeout waiting for deliver_sm to be handled")
	case <-sync:
	}
	sess.Close()
	errors := conn.Validate()
	if errors != nil {
		for _, err := range errors {
			t.Error(err)
		}
	}
}

// TestESMESessionCallbackResponse exercises the callback-driven response
// path: a Callbacks entry overrides the status for an incoming deliver_sm,
// and the bytes written to the wire must carry deliver_sm_resp's command
// id, not deliver_sm's.
func TestESMESessionCallbackResponse(t *testing.T) {
	bindTRx := &pdu.BindTRx{
		SystemID:         "ESME",
		Password:         "password",
		SystemType:       "type",
		InterfaceVersion: smpp.Version,
		AddressRange:     "111111",
	}
	bindTRxResp := bindTRx.Response("SMSC")
	bindTRxResp.Options = pdu.NewOptions().SetScInterfaceVersion(smpp.Version)

	deliverSm := &pdu.DeliverSm{
		SourceAddr:      "source",
		DestinationAddr: "destination",
		ShortMessage:    "mo message",
	}
	deliverSmResp := &pdu.DeliverSmResp{}

	st := pdu.StatusInvDstAdr
	sync := make(chan struct{})
	e := newTestEncoder(0)
	conn := mock.NewConn().
		ByteWrite(e.i(bindTRx)).ByteRead(e.s(bindTRxResp)).
		ByteRead(e.i(deliverSm, pdu.StatusOK)).ByteWrite(e.s(deliverSmResp, st)).
		Wait(1).
		Closed()
	conf := smpp.SessionConf{
		SystemID: "TestingESME",
		Callbacks: map[pdu.CommandID]func(pdu.PDU) *pdu.Status{
			pdu.DeliverSmID: func(pdu.PDU) *pdu.Status {
				close(sync)
				return &st
			},
		},
	}
	sess := smpp.NewSession(conn, conf)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	resp, err := sess.Send(ctx, bindTRx)
	if err != nil {
		t.Fatal(err)
	}
	if resp.CommandID() != pdu.BindTransceiverRespID {
		t.Errorf("expected BindTransceiverRespID got %d", resp.CommandID())
	}
	select {
	case <-time.After(50 * time.Millisecond):
		t.Fatal("timeout waiting for deliver_sm callback")
	case <-sync:
	}
	// Give the session goroutine a moment to finish encoding and writing
	// the callback's response before tearing down the connection.
	time.Sleep(10 * time.Millisecond)
	sess.Close()
	errors := conn.Validate()
	if errors != nil {
		for _, err := range errors {
			t.Error(err)
		}
	}
}

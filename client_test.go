package smpp_test

import (
	"bytes"
	"context"
	"net"
	"testing"
	"time"

	"github.com/go-smpp/esme"
	"github.com/go-smpp/esme/pdu"
)

func newClientServer(addr string) *mockServer {
	b := &bytes.Buffer{}
	e := pdu.NewEncoder(b, nil)
	return &mockServer{
		Addr: addr,
		Respond: func(c net.Conn, in pdu.PDU, i int) []byte {
			var res pdu.PDU
			switch in.CommandID() {
			case pdu.BindTransceiverID:
				res = &pdu.BindTRxResp{
					SystemID: "testing",
					Options:  pdu.NewOptions().SetScInterfaceVersion(0x34),
				}
			case pdu.SubmitSmID:
				res = &pdu.SubmitSmResp{MessageID: "msg-1"}
			case pdu.UnbindID:
				res = &pdu.UnbindResp{}
			}
			b.Reset()
			if _, err := e.Encode(res); err != nil {
				panic("can't encode pdu")
			}
			return b.Bytes()
		},
	}
}

func TestClientConnectBindSubmitDisconnect(t *testing.T) {
	addr := "localhost:2223"
	finished := make(chan struct{})
	server := newClientServer(addr)
	go func() {
		startServer(server, 3)
		close(finished)
	}()
	time.Sleep(10 * time.Millisecond)

	c, err := smpp.Connect(smpp.SessionConf{}, smpp.BindConf{Addr: addr, SystemID: "ExampleClient"})
	if err != nil {
		t.Fatalf("connect error: %v", err)
	}
	if _, err := c.BindTransceiver(); err != nil {
		t.Fatalf("bind error: %v", err)
	}
	if c.Session().SystemID() != "testing" {
		t.Errorf("invalid SystemID after bind %s", c.Session().SystemID())
	}
	resp, err := c.SubmitSm(context.Background(), &pdu.SubmitSm{
		SourceAddr:      "111111",
		DestinationAddr: "222222",
		ShortMessage:    "hi",
	})
	if err != nil {
		t.Fatalf("submit_sm error: %v", err)
	}
	if resp.MessageID != "msg-1" {
		t.Errorf("got message_id %q, want msg-1", resp.MessageID)
	}
	if err := c.Disconnect(); err != nil {
		t.Errorf("disconnect error: %v", err)
	}
	select {
	case <-finished:
	case <-time.After(200 * time.Millisecond):
		t.Error("mock server didn't close")
	}
}

func TestClientConnectDialError(t *testing.T) {
	_, err := smpp.Connect(smpp.SessionConf{}, smpp.BindConf{Addr: "localhost:1"})
	if err == nil {
		t.Fatal("expected dial error")
	}
	if _, ok := err.(*smpp.SmppConnectionError); !ok {
		t.Errorf("expected *smpp.SmppConnectionError, got %T", err)
	}
}

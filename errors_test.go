package smpp_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-smpp/esme"
	"github.com/go-smpp/esme/mock"
	"github.com/go-smpp/esme/pdu"
)

func TestCommandErrorMessage(t *testing.T) {
	err := &smpp.CommandError{Status: pdu.StatusInvBnd}
	want := "Incorrect BIND Status for given command '0x4'"
	if err.Error() != want {
		t.Errorf("got %q, want %q", err.Error(), want)
	}
}

func TestSmppConnectionErrorUnwrap(t *testing.T) {
	inner := errors.New("connection refused")
	err := &smpp.SmppConnectionError{Op: "dial", Err: inner}
	if !errors.Is(err, inner) {
		t.Error("expected errors.Is to unwrap to the inner error")
	}
}

func TestSubmitSmFromOpenStateFails(t *testing.T) {
	// Sending submit_sm before binding must fail the state gate with
	// ESME_RINVBNDSTS, not reach the wire at all.
	conn := mock.NewConn()
	sess := smpp.NewSession(conn, smpp.SessionConf{})
	defer sess.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := sess.Send(ctx, &pdu.SubmitSm{
		SourceAddr:      "source",
		DestinationAddr: "destination",
		ShortMessage:    "too soon",
	})
	if err == nil {
		t.Fatal("expected a state-gate error")
	}
	cmdErr, ok := err.(*smpp.CommandError)
	if !ok {
		t.Fatalf("expected *smpp.CommandError, got %T", err)
	}
	if cmdErr.Status != pdu.StatusInvBnd {
		t.Errorf("got status 0x%X, want 0x%X", cmdErr.Status, pdu.StatusInvBnd)
	}
}

package smpp

import (
	"context"
	"net"
	"time"

	"github.com/go-smpp/esme/pdu"
)

// Client wraps a Session bound to a single SMSC peer and exposes the
// ESME command set as simple blocking method calls, the same way
// BindTx/BindRx/BindTRx and the package-level Send* helpers do, but
// collected behind one value so a caller doesn't have to keep passing
// the Session and a BindConf around by hand.
type Client struct {
	sess *Session
	sc   SessionConf
	bc   BindConf
}

// Connect dials the SMSC without binding, so callers can install
// SetCallbacks or inspect the raw Session before sending a bind
// request.
func Connect(sc SessionConf, bc BindConf) (*Client, error) {
	conn, err := net.Dial("tcp", bc.Addr)
	if err != nil {
		return nil, &SmppConnectionError{Op: "dial", Err: err}
	}
	return &Client{
		sess: NewSession(conn, sc),
		sc:   sc,
		bc:   bc,
	}, nil
}

func (c *Client) ctx() (context.Context, context.CancelFunc) {
	timeout := c.sc.WindowTimeout
	if timeout == 0 {
		timeout = 5 * time.Second
	}
	return context.WithTimeout(context.Background(), timeout)
}

// Session returns the underlying Session for callers that need direct access.
func (c *Client) Session() *Session {
	return c.sess
}

// BindTransmitter authenticates the connection as a transmitter (tx).
func (c *Client) BindTransmitter() (*pdu.BindTxResp, error) {
	ctx, cancel := c.ctx()
	defer cancel()
	return SendBindTx(ctx, c.sess, &pdu.BindTx{
		SystemID:         c.bc.SystemID,
		Password:         c.bc.Password,
		SystemType:       c.bc.SystemType,
		InterfaceVersion: Version,
		AddrTon:          c.bc.AddrTon,
		AddrNpi:          c.bc.AddrNpi,
		AddressRange:     c.bc.AddrRange,
	})
}

// BindReceiver authenticates the connection as a receiver (rx).
func (c *Client) BindReceiver() (*pdu.BindRxResp, error) {
	ctx, cancel := c.ctx()
	defer cancel()
	return SendBindRx(ctx, c.sess, &pdu.BindRx{
		SystemID:         c.bc.SystemID,
		Password:         c.bc.Password,
		SystemType:       c.bc.SystemType,
		InterfaceVersion: Version,
		AddrTon:          c.bc.AddrTon,
		AddrNpi:          c.bc.AddrNpi,
		AddressRange:     c.bc.AddrRange,
	})
}

// BindTransceiver authenticates the connection as a transceiver (trx).
func (c *Client) BindTransceiver() (*pdu.BindTRxResp, error) {
	ctx, cancel := c.ctx()
	defer cancel()
	return SendBindTRx(ctx, c.sess, &pdu.BindTRx{
		SystemID:         c.bc.SystemID,
		Password:         c.bc.Password,
		SystemType:       c.bc.SystemType,
		InterfaceVersion: Version,
		AddrTon:          c.bc.AddrTon,
		AddrNpi:          c.bc.AddrNpi,
		AddressRange:     c.bc.AddrRange,
	})
}

// SetCallbacks installs per-command callbacks on the underlying session.
func (c *Client) SetCallbacks(cb map[pdu.CommandID]func(pdu.PDU) *pdu.Status) {
	c.sess.SetCallbacks(cb)
}

// SubmitSm submits a short message for delivery.
func (c *Client) SubmitSm(ctx context.Context, p *pdu.SubmitSm) (*pdu.SubmitSmResp, error) {
	return SendSubmitSm(ctx, c.sess, p)
}

// SubmitMulti submits a short message to multiple destinations.
func (c *Client) SubmitMulti(ctx context.Context, p *pdu.SubmitMulti) (*pdu.SubmitMultiResp, error) {
	return SendSubmitMulti(ctx, c.sess, p)
}

// DataSm transfers data in an interactive, session-oriented fashion.
func (c *Client) DataSm(ctx context.Context, p *pdu.DataSm) (*pdu.DataSmResp, error) {
	return SendDataSm(ctx, c.sess, p)
}

// QuerySm queries the state of a previously submitted message.
func (c *Client) QuerySm(ctx context.Context, p *pdu.QuerySm) (*pdu.QuerySmResp, error) {
	return SendQuerySm(ctx, c.sess, p)
}

// CancelSm cancels a previously submitted message.
func (c *Client) CancelSm(ctx context.Context, p *pdu.CancelSm) (*pdu.CancelSmResp, error) {
	return SendCancelSm(ctx, c.sess, p)
}

// ReplaceSm replaces a previously submitted message.
func (c *Client) ReplaceSm(ctx context.Context, p *pdu.ReplaceSm) (*pdu.ReplaceSmResp, error) {
	return SendReplaceSm(ctx, c.sess, p)
}

// EnquireLink probes the link. The session already sends these on its
// own per SessionConf.EnquireLinkTimeout; this is for callers that want
// to probe on demand instead of, or in addition to, that keepalive.
func (c *Client) EnquireLink(ctx context.Context) (*pdu.EnquireLinkResp, error) {
	return SendEnquireLink(ctx, c.sess, &pdu.EnquireLink{})
}

// Listen blocks until the session closes or ctx is canceled. Incoming
// PDUs are already being decoded and dispatched by the Session's own
// goroutine to SessionConf.Handler and SessionConf.Callbacks; Listen
// exists so a caller's main goroutine has something to block on while
// that dispatch runs, mirroring a traditional client read loop without
// reintroducing synchronous, single-threaded PDU pumping.
func (c *Client) Listen(ctx context.Context) error {
	select {
	case <-c.sess.NotifyClosed():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Disconnect sends Unbind and closes the underlying session.
func (c *Client) Disconnect() error {
	ctx, cancel := c.ctx()
	defer cancel()
	return Unbind(ctx, c.sess)
}

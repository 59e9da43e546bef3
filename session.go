package smpp

import (
	"context"
	"crypto/rand"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net"
	"sync"
	"time"

	"github.com/go-smpp/esme/pdu"
)

var smppLogs bool

func init() {
	flag.BoolVar(&smppLogs, "smpp.logs", false, "show smpp logging")
}

// Error implements Error and Temporary interfaces.
type Error struct {
	Msg  string
	Temp bool
}

func (e Error) Error() string {
	return e.Msg
}

// Temporary implements Temporary interface.
func (e Error) Temporary() bool {
	return e.Temp
}

// SessionState describes session state. This library only plays the
// ESME role, so the state set stops at bound/unbound: there is no
// SMSC-side accepting or listening state to model.
type SessionState int

const (
	// StateOpen is the initial session state: connected, not yet bound.
	StateOpen SessionState = iota
	// StateBoundTx session is bound as transmitter.
	StateBoundTx
	// StateBoundRx session is bound as receiver.
	StateBoundRx
	// StateBoundTRx session is bound as transceiver.
	StateBoundTRx
	// StateClosed session is closed.
	StateClosed
)

func (s SessionState) String() string {
	switch s {
	case StateOpen:
		return "Open"
	case StateBoundTx:
		return "BoundTx"
	case StateBoundRx:
		return "BoundRx"
	case StateBoundTRx:
		return "BoundTRx"
	case StateClosed:
		return "Closed"
	}
	return "Unknown"
}

// Logger provides logging interface for getting info about internals of smpp package.
type Logger interface {
	InfoF(msg string, params ...interface{})
	ErrorF(msg string, params ...interface{})
}

// DefaultLogger prints logs if smpp.logs flag is set.
type DefaultLogger struct{}

// InfoF implements Logger interface.
func (dl DefaultLogger) InfoF(msg string, params ...interface{}) {
	if smppLogs {
		log.Printf("INFO: "+msg+"\n", params...)
	}
}

// ErrorF implements Logger interface.
func (dl DefaultLogger) ErrorF(msg string, params ...interface{}) {
	if smppLogs {
		log.Printf("ERRO: "+msg+"\n", params...)
	}
}

// Handler handles smpp requests and unsolicited PDUs arriving on a bound session.
type Handler interface {
	ServeSMPP(ctx *Context)
}

// HandlerFunc wraps func into Handler.
type HandlerFunc func(ctx *Context)

// ServeSMPP implements Handler interface.
func (hc HandlerFunc) ServeSMPP(ctx *Context) {
	hc(ctx)
}

type defaultHandler struct{}

func (h defaultHandler) ServeSMPP(ctx *Context) {
	ctx.Respond(&pdu.GenericNack{}, pdu.StatusSysErr)
}

func genSessionID() string {
	b := make([]byte, 12)
	_, err := rand.Read(b)
	if err != nil {
		panic(err)
	}
	return fmt.Sprintf("%X-%X-%X", b[0:4], b[4:6], b[6:8])
}

// RemoteAddresser is an abstraction to keep Session from depending
// on network connection.
type RemoteAddresser interface {
	RemoteAddr() net.Addr
}

// SessionConf structured session configuration.
type SessionConf struct {
	SendWinSize   int
	ReqWinSize    int
	WindowTimeout time.Duration
	SessionState  func(sessionID, systemID string, state SessionState)
	SystemID      string
	ID            string
	Logger        Logger
	Handler       Handler
	Sequencer     pdu.Sequencer

	// EnquireLinkTimeout is the interval at which a bound session sends
	// an EnquireLink to keep the link alive and detect a dead peer
	// early. The EnquireLink is sent on every tick, whether or not other
	// PDUs arrived in between. Zero selects the default of 30s; a
	// negative value disables the keepalive.
	EnquireLinkTimeout time.Duration

	// Callbacks lets a caller react to specific incoming PDUs without
	// replacing the whole Handler, e.g. to observe DeliverSm receipts
	// while still letting the default Handler respond to it.
	Callbacks map[pdu.CommandID]func(pdu.PDU) *pdu.Status
}

type response struct {
	resp pdu.PDU
	err  error
}

// Session is the engine that coordinates SMPP protocol for a bound ESME peer.
type Session struct {
	conf          *SessionConf
	rwc           io.ReadWriteCloser
	enc           *pdu.Encoder
	dec           *pdu.Decoder
	wg            sync.WaitGroup
	mu            sync.Mutex
	reqCount      int
	sent          map[uint32]chan response
	state         SessionState
	systemID      string
	closed        chan struct{}
	keepaliveDone chan struct{}
	callbacksMu   sync.RWMutex
}

// NewSession creates new SMPP session and starts goroutine for listening incoming
// requests so make sure to call Session.Close() after you are done using it to
// avoid goroutine leak.
// Session will take ownership of the ReadWriteCloser and call Close on it during
// shutdown.
func NewSession(rwc io.ReadWriteCloser, conf SessionConf) *Session {
	if conf.SendWinSize == 0 {
		conf.SendWinSize = 10
	}
	if conf.Logger == nil {
		conf.Logger = DefaultLogger{}
	}
	if conf.Handler == nil {
		conf.Handler = &defaultHandler{}
	}
	if conf.WindowTimeout == 0 {
		conf.WindowTimeout = 10 * time.Second
	}
	if conf.ReqWinSize == 0 {
		conf.ReqWinSize = 10
	}
	if conf.ID == "" {
		conf.ID = genSessionID()
	}
	if conf.EnquireLinkTimeout == 0 {
		conf.EnquireLinkTimeout = 30 * time.Second
	}
	sess := &Session{
		conf:   &conf,
		rwc:    rwc,
		enc:    pdu.NewEncoder(rwc, conf.Sequencer),
		dec:    pdu.NewDecoder(rwc),
		sent:   make(map[uint32]chan response, conf.SendWinSize),
		closed: make(chan struct{}),
	}
	sess.wg.Add(1)
	go sess.serve()
	return sess
}

// ID uniquely identifies the session.
func (sess *Session) ID() string {
	return sess.conf.ID
}

// SystemID identifies connected peer.
func (sess *Session) SystemID() string {
	if sess.conf.SystemID != "" {
		return sess.conf.SystemID
	}
	if sess.systemID != "" {
		return sess.systemID
	}
	return "-"
}

// State reports the current session state.
func (sess *Session) State() SessionState {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.state
}

// SetCallbacks installs (or replaces) the per-command callback map. Safe
// to call at any point in the session's lifetime.
func (sess *Session) SetCallbacks(cb map[pdu.CommandID]func(pdu.PDU) *pdu.Status) {
	sess.callbacksMu.Lock()
	sess.conf.Callbacks = cb
	sess.callbacksMu.Unlock()
}

func (sess *Session) callback(ID pdu.CommandID) func(pdu.PDU) *pdu.Status {
	sess.callbacksMu.RLock()
	defer sess.callbacksMu.RUnlock()
	if sess.conf.Callbacks == nil {
		return nil
	}
	return sess.conf.Callbacks[ID]
}

func (sess *Session) String() string {
	return fmt.Sprintf("(%s:%s)", sess.SystemID(), sess.conf.ID)
}

func (sess *Session) remoteAddr() string {
	if ra, ok := sess.rwc.(RemoteAddresser); ok {
		return ra.RemoteAddr().String()
	}
	return ""
}

// serve handles incoming PDU by decoding it and delegating processing to the handler
// if it's the request or handling it over to the sender if it's a response.
func (sess *Session) serve() {
	defer sess.wg.Done()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	for {
		h, p, err := sess.dec.Decode()
		if err != nil {
			if err == io.EOF {
				sess.conf.Logger.InfoF("decoding pdu: %s %+v", sess, err)
			} else {
				sess.conf.Logger.ErrorF("decoding pdu: %s %+v", sess, err)
			}
			sess.shutdown()
			return
		}
		sess.mu.Lock()
		if id := pdu.SystemID(p); id != "" {
			sess.systemID = id
		}
		if err := sess.makeTransition(h.CommandID(), true); err != nil {
			sess.conf.Logger.ErrorF("transitioning upon receive: %s %+v", sess, err)
			sess.mu.Unlock()
			continue
		}
		sess.mu.Unlock()

		if cb := sess.callback(h.CommandID()); cb != nil {
			if st := cb(p); st != nil && pdu.IsRequest(h.CommandID()) {
				respID, ok := pdu.RespID(h.CommandID())
				if !ok {
					sess.conf.Logger.ErrorF("callback override: %s has no response pdu: %s", h.CommandID(), sess)
					continue
				}
				resp, err := pdu.NewPDU(respID)
				if err != nil {
					sess.conf.Logger.ErrorF("callback override: building response pdu: %s %+v", sess, err)
					continue
				}
				if _, err := sess.enc.Encode(resp, pdu.EncodeStatus(*st), pdu.EncodeSeq(h.Sequence())); err != nil {
					sess.conf.Logger.ErrorF("error encoding callback response: %s %+v", sess, err)
				}
				continue
			}
		}

		sess.mu.Lock()
		// Handle PDU requests.
		if pdu.IsRequest(h.CommandID()) {
			sess.conf.Logger.InfoF("received request: %s %s%+v", sess, p.CommandID(), p)
			if sess.reqCount == sess.conf.ReqWinSize {
				sess.throttle(h.Sequence())
			} else {
				sess.wg.Add(1)
				sess.reqCount++
				go sess.handleRequest(ctx, h, p)
			}
			sess.mu.Unlock()
			continue
		}
		// Handle PDU responses.
		if l, ok := sess.sent[h.Sequence()]; ok {
			sess.conf.Logger.InfoF("received response: %s %s%+v", sess, p.CommandID(), p)
			delete(sess.sent, h.Sequence())
			sess.mu.Unlock()

			l <- response{
				resp: p,
				err:  toError(h.Status()),
			}
			continue
		}
		sess.conf.Logger.ErrorF("unexpected response: %s %s%+v", sess, p.CommandID(), p)
		sess.mu.Unlock()
	}
}

func (sess *Session) throttle(seq uint32) {
	resp := pdu.GenericNack{}
	if _, err := sess.enc.Encode(resp, pdu.EncodeStatus(pdu.StatusThrottled), pdu.EncodeSeq(seq)); err != nil {
		sess.conf.Logger.ErrorF("error encoding pdu: %s %+v", sess, err)
		return
	}
}

func (sess *Session) handleRequest(ctx context.Context, h pdu.Header, req pdu.PDU) {
	ctx, cancel := context.WithTimeout(ctx, sess.conf.WindowTimeout)
	defer func() {
		cancel()
		sess.mu.Lock()
		sess.reqCount--
		sess.mu.Unlock()
		sess.wg.Done()
	}()
	sessCtx := &Context{
		sess: sess,
		ctx:  ctx,
		seq:  h.Sequence(),
		req:  req,
	}
	sess.conf.Handler.ServeSMPP(sessCtx)

	if sessCtx.close {
		sess.shutdown()
	}
}

func (sess *Session) shutdown() {
	go sess.Close()
}

// keepalive sends an EnquireLink every EnquireLinkTimeout. It is started
// when the session first becomes bound and keeps running, also after an
// unbind, until the session closes.
func (sess *Session) keepalive(done chan struct{}) {
	ticker := time.NewTicker(sess.conf.EnquireLinkTimeout)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), sess.conf.WindowTimeout)
			_, err := sess.Send(ctx, &pdu.EnquireLink{})
			cancel()
			if err != nil {
				sess.conf.Logger.ErrorF("enquire_link keepalive: %s %+v", sess, err)
			}
		case <-done:
			return
		}
	}
}

// startKeepalive must be guarded by mutex. It's a no-op if the
// keepalive is disabled or already running.
func (sess *Session) startKeepalive() {
	if sess.conf.EnquireLinkTimeout <= 0 || sess.keepaliveDone != nil {
		return
	}
	sess.keepaliveDone = make(chan struct{})
	sess.wg.Add(1)
	go func(done chan struct{}) {
		defer sess.wg.Done()
		sess.keepalive(done)
	}(sess.keepaliveDone)
}

// Close implements Closer interface. It MUST be called to dispose session cleanly.
// It gracefully waits for all handlers to finish execution before returning.
func (sess *Session) Close() error {
	sess.mu.Lock()
	if sess.state == StateClosed {
		sess.mu.Unlock()
		return fmt.Errorf("smpp: session %s already closed", sess)
	}
	sess.state = StateClosed
	if hook := sess.conf.SessionState; hook != nil {
		hook(sess.conf.ID, sess.SystemID(), sess.state)
	}
	keepaliveDone := sess.keepaliveDone
	for k, l := range sess.sent {
		delete(sess.sent, k)
		close(l)
	}
	sess.rwc.Close()
	sess.mu.Unlock()
	if keepaliveDone != nil {
		close(keepaliveDone)
	}
	sess.wg.Wait()
	sess.conf.Logger.InfoF("session closed: %s", sess)
	close(sess.closed)
	return nil
}

// Must be guarded by mutex.
func (sess *Session) setState(state SessionState) error {
	if sess.state == StateClosed {
		return fmt.Errorf("smpp: session %s already in closed state", sess)
	}
	sess.state = state
	if hook := sess.conf.SessionState; hook != nil {
		hook(sess.conf.ID, sess.SystemID(), sess.state)
	}
	switch state {
	case StateBoundTx, StateBoundRx, StateBoundTRx:
		sess.startKeepalive()
	}
	return nil
}

// Send writes PDU to the bounded connection effectively sending it to the peer.
// Use context deadline to specify how much you would like to wait for the response.
func (sess *Session) Send(ctx context.Context, req pdu.PDU) (pdu.PDU, error) {
	if req == nil {
		return nil, Error{Msg: "smpp: sending nil pdu"}
	}
	sess.mu.Lock()
	if len(sess.sent) == sess.conf.SendWinSize {
		sess.mu.Unlock()
		return nil, Error{Msg: "smpp: sending window closed", Temp: true}
	}
	if err := sess.makeTransition(req.CommandID(), false); err != nil {
		sess.conf.Logger.ErrorF("transitioning before send: %s %+v", sess, err)
		sess.mu.Unlock()
		return nil, err
	}
	seq, err := sess.enc.Encode(req)
	if err != nil {
		sess.mu.Unlock()
		return nil, err
	}
	l := make(chan response, 1)
	sess.sent[seq] = l
	sess.conf.Logger.InfoF("request sent: %s %s%+v", sess, req.CommandID(), req)
	sess.mu.Unlock()
	select {
	case resp, ok := <-l:
		if !ok {
			return nil, errors.New("smpp: session closed before receiving response")
		}
		if resp.err != nil {
			return resp.resp, resp.err
		}
		return resp.resp, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// makeTransition checks if processing pdu ID in the current session state is valid operation,
// if yes it transitions state to the new one triggered by ID. This library only ever acts as
// the ESME so requests flow outbound and responses (plus unsolicited SMSC PDUs) flow inbound.
//
// Must be guarded by mutex.
func (sess *Session) makeTransition(ID pdu.CommandID, received bool) error {
	if !received {
		switch sess.state {
		case StateOpen:
			switch ID {
			case pdu.BindTransceiverID, pdu.BindTransmitterID, pdu.BindReceiverID:
				return nil
			}
		case StateBoundTx:
			switch ID {
			case pdu.UnbindID, pdu.UnbindRespID, pdu.DeliverSmRespID, pdu.DataSmID, pdu.SubmitSmID,
				pdu.SubmitMultiID, pdu.DataSmRespID, pdu.EnquireLinkID, pdu.EnquireLinkRespID,
				pdu.ReplaceSmID, pdu.CancelSmID, pdu.QuerySmID, pdu.GenericNackID:
				return nil
			}
		case StateBoundRx:
			switch ID {
			case pdu.UnbindID, pdu.UnbindRespID, pdu.DeliverSmRespID, pdu.DataSmID,
				pdu.DataSmRespID, pdu.EnquireLinkID, pdu.EnquireLinkRespID, pdu.GenericNackID:
				return nil
			}
		case StateBoundTRx:
			switch ID {
			case pdu.UnbindID, pdu.UnbindRespID, pdu.SubmitSmID, pdu.SubmitSmRespID, pdu.DeliverSmRespID,
				pdu.DataSmID, pdu.DataSmRespID, pdu.EnquireLinkID, pdu.EnquireLinkRespID, pdu.SubmitMultiID,
				pdu.SubmitMultiRespID, pdu.QuerySmID, pdu.CancelSmID, pdu.ReplaceSmID, pdu.GenericNackID:
				return nil
			}
		case StateClosed:
		}
		return &CommandError{Status: pdu.StatusInvBnd}
	}
	switch sess.state {
	case StateOpen:
		switch ID {
		case pdu.OutbindID, pdu.GenericNackID:
			return nil
		case pdu.BindTransceiverRespID:
			return sess.setState(StateBoundTRx)
		case pdu.BindTransmitterRespID:
			return sess.setState(StateBoundTx)
		case pdu.BindReceiverRespID:
			return sess.setState(StateBoundRx)
		}
	case StateBoundTx:
		switch ID {
		case pdu.UnbindID, pdu.UnbindRespID:
			return sess.setState(StateOpen)
		case pdu.SubmitSmRespID, pdu.SubmitMultiRespID, pdu.DataSmID,
			pdu.DataSmRespID, pdu.QuerySmRespID, pdu.CancelSmRespID, pdu.ReplaceSmRespID,
			pdu.EnquireLinkID, pdu.EnquireLinkRespID, pdu.GenericNackID:
			return nil
		}
	case StateBoundRx:
		switch ID {
		case pdu.UnbindID, pdu.UnbindRespID:
			return sess.setState(StateOpen)
		case pdu.DeliverSmID, pdu.DataSmID, pdu.DataSmRespID,
			pdu.EnquireLinkID, pdu.EnquireLinkRespID, pdu.AlertNotificationID, pdu.GenericNackID:
			return nil
		}
	case StateBoundTRx:
		switch ID {
		case pdu.UnbindID, pdu.UnbindRespID:
			return sess.setState(StateOpen)
		case pdu.SubmitSmRespID, pdu.SubmitMultiRespID, pdu.DataSmID,
			pdu.DataSmRespID, pdu.DeliverSmID, pdu.QuerySmRespID, pdu.CancelSmRespID, pdu.AlertNotificationID,
			pdu.ReplaceSmRespID, pdu.EnquireLinkID, pdu.EnquireLinkRespID, pdu.GenericNackID:
			return nil
		}
	case StateClosed:
	}
	return &CommandError{Status: pdu.StatusInvBnd}
}

// NotifyClosed provides channel that will be closed once session enters closed state.
func (sess *Session) NotifyClosed() <-chan struct{} {
	return sess.closed
}

// StatusError implements error interface for SMPP status errors.
type StatusError struct {
	msg    string
	status pdu.Status
}

// Error implements error interface.
func (se StatusError) Error() string {
	return fmt.Sprintf("%s '0x%X'", se.msg, int(se.status))
}

// Status returns PDU status code of the error.
func (se StatusError) Status() pdu.Status {
	return se.status
}

func toError(status pdu.Status) error {
	switch status {
	case pdu.StatusOK:
		return nil
	case pdu.StatusInvMsgLen:
		return StatusError{"Message Length is invalid", pdu.StatusInvMsgLen}
	case pdu.StatusInvCmdLen:
		return StatusError{"Command Length is invalid", pdu.StatusInvCmdLen}
	case pdu.StatusInvCmdID:
		return StatusError{"Invalid Command ID", pdu.StatusInvCmdID}
	case pdu.StatusInvBnd:
		return StatusError{"Incorrect BIND Status for given command", pdu.StatusInvBnd}
	case pdu.StatusAlyBnd:
		return StatusError{"ESME Already in Bound State", pdu.StatusAlyBnd}
	case pdu.StatusInvPrtFlg:
		return StatusError{"Invalid Priority Flag", pdu.StatusInvPrtFlg}
	case pdu.StatusInvRegDlvFlg:
		return StatusError{"Invalid Registered Delivery Flag", pdu.StatusInvRegDlvFlg}
	case pdu.StatusSysErr:
		return StatusError{"System Error", pdu.StatusSysErr}
	case pdu.StatusInvSrcAdr:
		return StatusError{"Invalid Source Address", pdu.StatusInvSrcAdr}
	case pdu.StatusInvDstAdr:
		return StatusError{"Invalid Destination Address", pdu.StatusInvDstAdr}
	case pdu.StatusInvMsgID:
		return StatusError{"Message ID is invalid", pdu.StatusInvMsgID}
	case pdu.StatusBindFail:
		return StatusError{"Bind Failed", pdu.StatusBindFail}
	case pdu.StatusInvPaswd:
		return StatusError{"Invalid Password", pdu.StatusInvPaswd}
	case pdu.StatusInvSysID:
		return StatusError{"Invalid System ID", pdu.StatusInvSysID}
	case pdu.StatusCancelFail:
		return StatusError{"Cancel SM Failed", pdu.StatusCancelFail}
	case pdu.StatusReplaceFail:
		return StatusError{"Replace SM Failed", pdu.StatusReplaceFail}
	case pdu.StatusMsgQFul:
		return StatusError{"Message Queue Full", pdu.StatusMsgQFul}
	case pdu.StatusInvSerTyp:
		return StatusError{"Invalid Service Type", pdu.StatusInvSerTyp}
	case pdu.StatusInvNumDe:
		return StatusError{"Invalid number of destinations", pdu.StatusInvNumDe}
	case pdu.StatusInvDLName:
		return StatusError{"Invalid Distribution List name", pdu.StatusInvDLName}
	case pdu.StatusInvDestFlag:
		return StatusError{"Destination flag (submit_multi)", pdu.StatusInvDestFlag}
	case pdu.StatusInvSubRep:
		return StatusError{"Invalid ‘submit with replace’ request", pdu.StatusInvSubRep}
	case pdu.StatusInvEsmClass:
		return StatusError{"Invalid esm_class field data", pdu.StatusInvEsmClass}
	case pdu.StatusCntSubDL:
		return StatusError{"Cannot Submit to Distribution List", pdu.StatusCntSubDL}
	case pdu.StatusSubmitFail:
		return StatusError{"submit_sm or submit_multi failed", pdu.StatusSubmitFail}
	case pdu.StatusInvSrcTON:
		return StatusError{"Invalid Source address TON", pdu.StatusInvSrcTON}
	case pdu.StatusInvSrcNPI:
		return StatusError{"Invalid Source address NPI", pdu.StatusInvSrcNPI}
	case pdu.StatusInvDstTON:
		return StatusError{"Invalid Destination address TON", pdu.StatusInvDstTON}
	case pdu.StatusInvDstNPI:
		return StatusError{"Invalid Destination address NPI", pdu.StatusInvDstNPI}
	case pdu.StatusInvSysTyp:
		return StatusError{"Invalid system_type field", pdu.StatusInvSysTyp}
	case pdu.StatusInvRepFlag:
		return StatusError{"Invalid replace_if_present flag", pdu.StatusInvRepFlag}
	case pdu.StatusInvNumMsgs:
		return StatusError{"Invalid number of messages", pdu.StatusInvNumMsgs}
	case pdu.StatusThrottled:
		return StatusError{"Throttling error (ESME has exceeded allowed message limits)", pdu.StatusThrottled}
	case pdu.StatusInvSched:
		return StatusError{"Invalid Scheduled Delivery Time", pdu.StatusInvSched}
	case pdu.StatusInvExpiry:
		return StatusError{"Invalid message Expiry time", pdu.StatusInvExpiry}
	case pdu.StatusInvDftMsgID:
		return StatusError{"Predefined Message Invalid or Not Found", pdu.StatusInvDftMsgID}
	case pdu.StatusTempAppErr:
		return StatusError{"ESME Receiver Temporary App Error Code", pdu.StatusTempAppErr}
	case pdu.StatusPermAppErr:
		return StatusError{"ESME Receiver Permanent App Error Code", pdu.StatusPermAppErr}
	case pdu.StatusRejeAppErr:
		return StatusError{"ESME Receiver Reject Message Error Code", pdu.StatusRejeAppErr}
	case pdu.StatusQueryFail:
		return StatusError{"query_sm request failed", pdu.StatusQueryFail}
	case pdu.StatusInvOptParStream:
		return StatusError{"Error in the optional part of the PDU Body.", pdu.StatusInvOptParStream}
	case pdu.StatusOptParNotAllwd:
		return StatusError{"Optional Parameter not allowed", pdu.StatusOptParNotAllwd}
	case pdu.StatusInvParLen:
		return StatusError{"Invalid Parameter Length.", pdu.StatusInvParLen}
	case pdu.StatusMissingOptParam:
		return StatusError{"Expected Optional Parameter missing", pdu.StatusMissingOptParam}
	case pdu.StatusInvOptParamVal:
		return StatusError{"Invalid Optional Parameter Value", pdu.StatusInvOptParamVal}
	case pdu.StatusDeliveryFailure:
		return StatusError{"Delivery Failure", pdu.StatusDeliveryFailure}
	case pdu.StatusUnknownErr:
		return StatusError{"Unknown Error", pdu.StatusUnknownErr}
	}
	return StatusError{"Unknown Status", status}
}

package pdu

import "sync"

// optionalParamDef describes a registered TLV: which commands may carry
// it and the human name used when it's looked up. The registry only
// needs to answer "is this tag known for this command", so the decoder
// can skip unknown/unassigned TLVs without error per the SMPP 3.4
// tolerant-parsing rule.
type optionalParamDef struct {
	name     string
	commands map[CommandID]struct{}
}

var (
	registryMu sync.Mutex
	registry   = map[TagID]*optionalParamDef{}
)

// RegisterOptionalParam adds a custom TLV tag to the process-wide
// registry, scoping it to the given commands. Intended for vendor tags
// in the 0x4000-0xFFFF range; registration is append-only and
// re-registering an existing name is a silent no-op, mirroring the
// "register once at start, never remove" discipline of the SMPP
// optional-parameter registry.
func RegisterOptionalParam(tag TagID, name string, commands ...CommandID) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, ok := registry[tag]; ok {
		return
	}
	for _, def := range registry {
		if def.name == name {
			return
		}
	}
	cmds := make(map[CommandID]struct{}, len(commands))
	for _, c := range commands {
		cmds[c] = struct{}{}
	}
	registry[tag] = &optionalParamDef{name: name, commands: cmds}
}

// IsOptionalParamKnown reports whether tag is registered for command.
// Tags from the standard SMPP 3.4 table (constants.go) are not tracked
// here individually: callers only consult this for vendor/custom tags
// registered at runtime via RegisterOptionalParam.
func IsOptionalParamKnown(tag TagID, command CommandID) bool {
	registryMu.Lock()
	defer registryMu.Unlock()
	def, ok := registry[tag]
	if !ok {
		return false
	}
	_, ok = def.commands[command]
	return ok
}

// standardTags holds every TagID constant from the SMPP 3.4 optional
// parameter table (constants.go). A tag in this set is accepted
// regardless of command, since the standard doesn't scope these by
// command the way a vendor tag is scoped at registration.
var standardTags = map[TagID]struct{}{
	TagDestAddrSubUnit:        {},
	TagDestNetworkType:        {},
	TagDestBearerType:         {},
	TagDestTelematicsID:       {},
	TagSourceAddrSubunit:      {},
	TagSourceNetworkType:      {},
	TagSourceBearerType:       {},
	TagSourceTelematicsID:     {},
	TagQosTimeToLive:          {},
	TagPayloadType:            {},
	TagAdditionalStatusInfoTe: {},
	TagReceiptedMessageID:     {},
	TagMsMsgWaitFacilities:    {},
	TagPrivacyIndicator:       {},
	TagSourceSubaddress:       {},
	TagDestSubaddress:         {},
	TagUserMessageReference:   {},
	TagUserResponseCode:       {},
	TagSourcePort:             {},
	TagDestinationPort:        {},
	TagSarMsgRefNum:           {},
	TagLanguageIndicator:      {},
	TagSarTotalSegments:       {},
	TagSarSegmentSeqnum:       {},
	TagScInterfaceVersion:     {},
	TagCallbackNumPresInd:     {},
	TagCallbackNumA:           {},
	TagNumberOfMessages:       {},
	TagCallbackNum:            {},
	TagDpfResult:              {},
	TagSetDPF:                 {},
	TagMsAvailabilityStatus:   {},
	TagNetworkErrorCode:       {},
	TagMessagePayload:         {},
	TagDeliveryFailureReason:  {},
	TagMoreMessagesToSend:     {},
	TagMessageState:           {},
	TagUssdServiceOp:          {},
	TagDisplayTime:            {},
	TagSmsSignal:              {},
	TagMsValidity:             {},
	TagAlertOnMessageDeliv:    {},
	TagItsReplyType:           {},
	TagItsSessionInfo:         {},
}

// isKnownTag reports whether a decoder should keep a TLV with this tag
// for this command: either it's part of the standard SMPP 3.4 table,
// or it was registered at runtime via RegisterOptionalParam for this
// specific command. Anything else is an unknown or command-undeclared
// tag and must be skipped, per the SMPP 3.4 tolerant-parsing rule.
func isKnownTag(tag TagID, command CommandID) bool {
	if _, ok := standardTags[tag]; ok {
		return true
	}
	return IsOptionalParamKnown(tag, command)
}

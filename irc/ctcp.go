package irc

import "bytes"

// CTCP quoting constants per the CTCP specification.
const (
	CTCPDelim     = '\x01'
	CTCPLowQuote  = '\x10'
	CTCPHighQuote = '\x5C'
	CTCPSep       = '\x20'
)

// IsCTCP reports whether msg is delimited by CTCPDelim on both ends.
func IsCTCP(msg string) bool {
	return len(msg) >= 2 && msg[0] == CTCPDelim && msg[len(msg)-1] == CTCPDelim
}

// CTCPUnpack unpacks a delimited CTCP message into its tag and data.
func CTCPUnpack(msg string) (tag, data string) {
	b := []byte(msg)
	if len(b) >= 2 && b[0] == CTCPDelim && b[len(b)-1] == CTCPDelim {
		b = b[1 : len(b)-1]
	}

	b = ctcpLowLevelUnescape(b)
	tagB, dataB := ctcpUnpack(b)
	tagB = ctcpHighLevelUnescape(tagB)
	if dataB != nil {
		dataB = ctcpHighLevelUnescape(dataB)
	}
	return string(tagB), string(dataB)
}

// CTCPPack packs a tag and optional data into a CTCPDelim-wrapped message
// ready to be sent as a PRIVMSG/NOTICE body.
func CTCPPack(tag, data string) string {
	tagB := []byte(tag)
	var dataB []byte
	if data != "" {
		dataB = ctcpHighLevelEscape([]byte(data))
	}
	tagB = ctcpHighLevelEscape(tagB)

	ret := ctcpPack(tagB, dataB)
	ret = ctcpLowLevelEscape(ret)

	out := make([]byte, len(ret)+2)
	out[0] = CTCPDelim
	out[len(out)-1] = CTCPDelim
	copy(out[1:], ret)
	return string(out)
}

// ctcpUnpack extracts tagging data from the message data.
// X-CHR  ::= '\000' | '\002' .. '\377'
// X-N-AS ::= '\000'  | '\002' .. '\037' | '\041' .. '\377'
// SPC    ::= '\040'
// X-MSG  ::= | X-N-AS+ | X-N-AS+ SPC X-CHR*
func ctcpUnpack(in []byte) ([]byte, []byte) {
	splits := bytes.SplitN(in, []byte{CTCPSep}, 2)

	if len(splits) == 2 {
		return splits[0], splits[1]
	}
	return splits[0], nil
}

// ctcpPack packs tagging data in with the message data.
func ctcpPack(tag []byte, data []byte) []byte {
	if len(data) == 0 {
		return tag
	}

	ret := make([]byte, len(tag)+len(data)+1)
	copy(ret, tag)
	ret[len(tag)] = CTCPSep
	copy(ret[len(tag)+1:], data)
	return ret
}

// ctcpHighLevelEscape escapes the highest level of CTCP message.
// X-DELIM ::= '\x01'
// X-QUOTE ::= '\134' (0x5C)
// X-DELIM --> X-QUOTE 'a' (0x61)
// X-QUOTE --> X-QUOTE X-QUOTE
func ctcpHighLevelEscape(in []byte) []byte {
	out := bytes.Replace(in, []byte{CTCPHighQuote},
		[]byte{CTCPHighQuote, CTCPHighQuote}, -1)
	out = bytes.Replace(out, []byte{0x01}, []byte{CTCPHighQuote, 0x61}, -1)
	return out
}

// ctcpHighLevelUnescape reverses ctcpHighLevelEscape on a received message.
func ctcpHighLevelUnescape(in []byte) []byte {
	out := bytes.Replace(in, []byte{CTCPHighQuote, 0x61}, []byte{0x01}, -1)
	out = bytes.Replace(out, []byte{CTCPHighQuote, CTCPHighQuote},
		[]byte{CTCPHighQuote}, -1)
	return out
}

// ctcpLowLevelEscape escapes the low level of CTCP message.
// M-QUOTE ::= '\x10'
// NUL     --> M-QUOTE '0'
// NL      --> M-QUOTE 'n'
// CR      --> M-QUOTE 'r'
// M-QUOTE --> M-QUOTE M-QUOTE
func ctcpLowLevelEscape(in []byte) []byte {
	out := bytes.Replace(in, []byte{CTCPLowQuote},
		[]byte{CTCPLowQuote, CTCPLowQuote}, -1)
	out = bytes.Replace(out, []byte{'\r'}, []byte{CTCPLowQuote, 'r'}, -1)
	out = bytes.Replace(out, []byte{'\n'}, []byte{CTCPLowQuote, 'n'}, -1)
	out = bytes.Replace(out, []byte{0x00}, []byte{CTCPLowQuote, '0'}, -1)
	return out
}

// ctcpLowLevelUnescape reverses ctcpLowLevelEscape on a received message.
func ctcpLowLevelUnescape(in []byte) []byte {
	out := bytes.Replace(in, []byte{CTCPLowQuote, '0'}, []byte{0x00}, -1)
	out = bytes.Replace(out, []byte{CTCPLowQuote, 'n'}, []byte{'\n'}, -1)
	out = bytes.Replace(out, []byte{CTCPLowQuote, 'r'}, []byte{'\r'}, -1)
	out = bytes.Replace(out, []byte{CTCPLowQuote, CTCPLowQuote},
		[]byte{CTCPLowQuote}, -1)
	return out
}

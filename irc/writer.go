package irc

import (
	"fmt"
	"io"
	"strings"
)

const (
	// MaxSendLength is the maximum length for an outbound message body
	// before the Writer splits it across multiple lines. It is smaller than
	// MaxLineLength because the server re-broadcasts the line to other
	// clients prefixed with our own fullhost, which consumes part of their
	// 510-byte budget too.
	MaxSendLength = MaxLineLength - 62
	// splitBackward is how far back from MaxSendLength splitSend will look
	// for a space to split a too-long message on, instead of mid-word.
	splitBackward = 20

	fmtPrivmsgHeader = PRIVMSG + " %s :"
	fmtNoticeHeader  = NOTICE + " %s :"
	fmtCTCP          = PRIVMSG + " %s :%s"
	fmtCTCPReply     = NOTICE + " %s :%s"
	fmtJoin          = JOIN + " :%s"
	fmtPart          = PART + " :%s"
	fmtQuit          = QUIT + " :%s"
)

// Writer provides common write operations in IRC protocol fashion to an
// underlying io.Writer.
type Writer interface {
	io.Writer
	Send(...interface{}) error
	Sendln(...interface{}) error
	Sendf(string, ...interface{}) error

	Privmsg(string, ...interface{}) error
	Privmsgln(string, ...interface{}) error
	Privmsgf(string, string, ...interface{}) error

	Notice(string, ...interface{}) error
	Noticeln(string, ...interface{}) error
	Noticef(string, string, ...interface{}) error

	CTCP(string, string, ...interface{}) error
	CTCPln(string, string, ...interface{}) error
	CTCPf(string, string, string, ...interface{}) error

	CTCPReply(string, string, ...interface{}) error
	CTCPReplyln(string, string, ...interface{}) error
	CTCPReplyf(string, string, string, ...interface{}) error

	Join(...string) error
	Part(...string) error
	Quit(string) error
}

// Helper fulfills Writer's many methods over any io.Writer (typically the
// Send Scheduler's enqueue function, adapted to io.Writer by the caller).
type Helper struct {
	io.Writer
}

// Send sends a string with spaces between non-strings.
func (h Helper) Send(args ...interface{}) error {
	_, err := fmt.Fprint(h, args...)
	return err
}

// Sendln sends a string with spaces between everything. Does not send a
// trailing newline (the scheduler/transport appends CRLF).
func (h Helper) Sendln(args ...interface{}) error {
	str := fmt.Sprintln(args...)
	_, err := h.Write([]byte(str[:len(str)-1]))
	return err
}

// Sendf sends a formatted string.
func (h Helper) Sendf(format string, args ...interface{}) error {
	_, err := fmt.Fprintf(h, format, args...)
	return err
}

// Privmsg sends a string with spaces between non-strings.
func (h Helper) Privmsg(target string, args ...interface{}) error {
	header := []byte(fmt.Sprintf(fmtPrivmsgHeader, target))
	msg := []byte(fmt.Sprint(args...))
	return h.splitSend(header, msg)
}

// Privmsgln sends a privmsg with spaces between everything.
func (h Helper) Privmsgln(target string, args ...interface{}) error {
	header := []byte(fmt.Sprintf(fmtPrivmsgHeader, target))
	str := fmt.Sprintln(args...)
	str = str[:len(str)-1]
	return h.splitSend(header, []byte(str))
}

// Privmsgf sends a formatted privmsg.
func (h Helper) Privmsgf(target, format string, args ...interface{}) error {
	header := []byte(fmt.Sprintf(fmtPrivmsgHeader, target))
	msg := []byte(fmt.Sprintf(format, args...))
	return h.splitSend(header, msg)
}

// Notice sends a string with spaces between non-strings.
func (h Helper) Notice(target string, args ...interface{}) error {
	header := []byte(fmt.Sprintf(fmtNoticeHeader, target))
	msg := []byte(fmt.Sprint(args...))
	return h.splitSend(header, msg)
}

// Noticeln sends a notice with spaces between everything.
func (h Helper) Noticeln(target string, args ...interface{}) error {
	header := []byte(fmt.Sprintf(fmtNoticeHeader, target))
	str := fmt.Sprintln(args...)
	str = str[:len(str)-1]
	return h.splitSend(header, []byte(str))
}

// Noticef sends a formatted notice.
func (h Helper) Noticef(target, format string, args ...interface{}) error {
	header := []byte(fmt.Sprintf(fmtNoticeHeader, target))
	msg := []byte(fmt.Sprintf(format, args...))
	return h.splitSend(header, msg)
}

// CTCP sends a string with spaces between non-strings, CTCP-quoted.
func (h Helper) CTCP(target, tag string, data ...interface{}) error {
	msg := CTCPPack(tag, fmt.Sprint(data...))
	_, err := fmt.Fprintf(h, fmtCTCP, target, msg)
	return err
}

// CTCPln sends a CTCP with spaces between everything.
func (h Helper) CTCPln(target, tag string, data ...interface{}) error {
	str := fmt.Sprintln(data...)
	str = str[:len(str)-1]
	msg := CTCPPack(tag, str)
	_, err := fmt.Fprintf(h, fmtCTCP, target, msg)
	return err
}

// CTCPf sends a formatted CTCP.
func (h Helper) CTCPf(target, tag, format string, data ...interface{}) error {
	msg := CTCPPack(tag, fmt.Sprintf(format, data...))
	_, err := fmt.Fprintf(h, fmtCTCP, target, msg)
	return err
}

// CTCPReply sends a string with spaces between non-strings, CTCP-quoted,
// as a NOTICE (the required response type per the CTCP spec).
func (h Helper) CTCPReply(target, tag string, data ...interface{}) error {
	msg := CTCPPack(tag, fmt.Sprint(data...))
	_, err := fmt.Fprintf(h, fmtCTCPReply, target, msg)
	return err
}

// CTCPReplyln sends a CTCPReply with spaces between everything.
func (h Helper) CTCPReplyln(target, tag string, data ...interface{}) error {
	str := fmt.Sprintln(data...)
	str = str[:len(str)-1]
	msg := CTCPPack(tag, str)
	_, err := fmt.Fprintf(h, fmtCTCPReply, target, msg)
	return err
}

// CTCPReplyf sends a formatted CTCPReply.
func (h Helper) CTCPReplyf(target, tag, format string, data ...interface{}) error {
	msg := CTCPPack(tag, fmt.Sprintf(format, data...))
	_, err := fmt.Fprintf(h, fmtCTCPReply, target, msg)
	return err
}

// Join sends a join message to the writer.
func (h Helper) Join(targets ...string) error {
	if len(targets) == 0 {
		return nil
	}
	_, err := fmt.Fprintf(h, fmtJoin, strings.Join(targets, ","))
	return err
}

// Part sends a part message to the writer.
func (h Helper) Part(targets ...string) error {
	if len(targets) == 0 {
		return nil
	}
	_, err := fmt.Fprintf(h, fmtPart, strings.Join(targets, ","))
	return err
}

// Quit sends a quit message to the writer.
func (h Helper) Quit(msg string) error {
	_, err := fmt.Fprintf(h, fmtQuit, msg)
	return err
}

// splitSend breaks a message down into wire-safe chunks based on
// MaxSendLength, prefixing each chunk with header. It looks up to
// splitBackward characters back from the cut point for a space to split on
// instead of mid-word.
func (h Helper) splitSend(header, msg []byte) error {
	var err error
	ln, lnh := len(msg), len(header)
	msgMax := MaxSendLength - lnh
	if ln <= msgMax {
		_, err = h.Write(append(header, msg...))
		return err
	}

	var size int
	buf := make([]byte, MaxSendLength)
	for ln > 0 {
		nextWriteOffset := 0
		size = msgMax
		if ln <= msgMax {
			size = ln
		} else {
			for i := msgMax; i != 0 && i > msgMax-splitBackward; i-- {
				if msg[i] == ' ' {
					size = i
					nextWriteOffset = 1
					break
				}
			}
		}
		copy(buf, header)
		copy(buf[lnh:], msg[:size])
		_, err = h.Write(buf[:lnh+size])
		if err != nil {
			return err
		}
		msg = msg[size+nextWriteOffset:]
		ln, lnh = len(msg), len(header)
	}

	return nil
}

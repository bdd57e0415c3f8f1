/*
Package parse turns raw IRC wire lines into irc.Message values.
*/
package parse

import (
	"regexp"
	"strings"

	"github.com/aarondl/ircengine/irc"
)

// lineRegex captures, in order: an optional IRCv3 tag block, an optional
// source prefix, the command token, the space-separated middle parameters,
// and the optional trailing parameter.
var lineRegex = regexp.MustCompile(
	`^(?:@(\S+) )?(?::(\S+) )?([A-Za-z]+|[0-9]{3})((?: [^:\s]+)*)(?: :(.*))?$`)

// Parse produces an irc.Message from a single line of the wire protocol,
// with the terminating CRLF already stripped. Returns irc.MalformedLineError
// if the line has no discernible command token.
func Parse(line string) (*irc.Message, error) {
	idx := lineRegex.FindStringSubmatchIndex(line)
	if idx == nil {
		return nil, irc.MalformedLineError{Line: line}
	}
	parts := submatches(line, idx)

	msg := &irc.Message{
		Raw:     line,
		Command: strings.ToUpper(parts[3]),
		Prefix:  parts[2],
	}

	if parts[1] != "" {
		msg.Tags = parseTags(parts[1])
	}

	if mid := strings.TrimSpace(parts[4]); mid != "" {
		msg.Params = strings.Split(mid, " ")
	}

	// Group 5 (the trailing parameter) participated in the match iff its
	// index pair is present, which distinguishes "no trailing at all" from
	// "trailing present but empty" — both report "" from FindStringSubmatch.
	if idx[10] >= 0 {
		msg.Trailing = parts[5]
		msg.HasTrailing = true
	}

	return msg, nil
}

// submatches extracts the FindStringSubmatch-equivalent strings from a
// FindStringSubmatchIndex result, so callers that need HasTrailing's
// participated-vs-empty distinction don't also have to hand-index line.
func submatches(line string, idx []int) []string {
	out := make([]string, len(idx)/2)
	for i := range out {
		lo, hi := idx[2*i], idx[2*i+1]
		if lo < 0 {
			continue
		}
		out[i] = line[lo:hi]
	}
	return out
}

// parseTags parses the ';'-separated tag block (without the leading '@').
// Each item is either "KEY" (no value) or "KEY=VALUE", where VALUE preserves
// embedded '=' characters by splitting on the first one only.
func parseTags(block string) map[string]irc.TagValue {
	tags := make(map[string]irc.TagValue)
	for _, item := range strings.Split(block, ";") {
		if item == "" {
			continue
		}
		if idx := strings.IndexByte(item, '='); idx >= 0 {
			tags[item[:idx]] = irc.TagValue{Value: item[idx+1:], IsSet: true}
		} else {
			tags[item] = irc.TagValue{}
		}
	}
	return tags
}

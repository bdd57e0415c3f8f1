package client

import (
	"strings"
	"time"

	"github.com/aarondl/ircengine/data"
	"github.com/aarondl/ircengine/event"
	"github.com/aarondl/ircengine/irc"
)

// roleLetters maps the standard role-prefix mode letters to the Role they
// grant.
var roleLetters = map[rune]data.Role{
	'q': data.Owner,
	'o': data.Op,
	'h': data.Halfop,
	'v': data.Voice,
}

// dispatch routes one parsed Message to its handler. Unlisted commands are
// silently ignored.
func (e *Engine) dispatch(m *irc.Message) {
	switch m.Command {
	case irc.PING:
		e.handlePing(m)
	case irc.PRIVMSG:
		e.handleMessage(m, false)
	case irc.NOTICE:
		e.handleMessage(m, true)
	case irc.JOIN:
		e.handleJoin(m)
	case irc.PART:
		e.handlePart(m)
	case irc.QUIT:
		e.handleQuit(m)
	case irc.KICK:
		e.handleKick(m)
	case irc.NICK:
		e.handleNick(m)
	case irc.MODE:
		e.handleMode(m)
	case irc.RPL_TOPIC:
		e.handleTopic(m)
	case irc.RPL_ISUPPORT:
		e.handleISupport(m)
	case irc.RPL_WHOISUSER, irc.RPL_WHOISSERVER, irc.RPL_WHOISOPERATOR,
		irc.RPL_WHOISIDLE, irc.RPL_WHOISCHANNELS, irc.RPL_WHOISACCOUNT:
		e.handleWhoisNumeric(m)
	case irc.RPL_ENDOFWHOIS:
		e.handleEndOfWhois(m)
	case irc.RPL_ISON:
		e.handleIsOn(m)
	case irc.RPL_VERSION:
		e.handleVersion(m)
	case irc.RPL_NAMREPLY:
		e.handleNames(m)
	case irc.RPL_BANLIST:
		e.handleBanList(m)
	case irc.RPL_MOTD:
		e.handleMotdLine(m)
	case irc.RPL_ENDOFMOTD, irc.ERR_NOMOTD:
		e.handleEndOfMotd(m)
	case irc.ERR_NICKNAMEINUSE:
		e.handleNickInUse(m)
	case irc.RPL_YOUREOPER:
		e.publish(event.ServerOperator, event.ServerOperatorPayload{})
	case irc.INVITE:
		e.handleInvite(m)
	case irc.PONG:
		e.publish(event.Pong, event.PongPayload{Token: m.Last()})
	case irc.ERROR:
		e.handleError(m)
	}
}

func (e *Engine) publish(kind event.Kind, payload interface{}) {
	e.Bus.Publish(event.Event{Kind: kind, Time: time.Now(), Payload: payload})
}

func (e *Engine) fireReadyOnce() {
	e.State.mu.Lock()
	already := e.State.ready
	e.State.ready = true
	e.State.mu.Unlock()

	if !already {
		e.publish(event.Ready, event.ReadyPayload{})
	}
}

func (e *Engine) handlePing(m *irc.Message) {
	_ = e.sched.Send(irc.PONG+" :"+m.Last(), false)
}

func (e *Engine) handleMessage(m *irc.Message, isNotice bool) {
	target := m.Arg(0)
	text := m.Trailing

	from := m.Hostmask().Nick
	if target == "*" {
		from = m.Prefix
	}

	if !isNotice {
		e.fireReadyOnce()
	}

	if isNotice {
		e.publish(event.Notice, event.MessagePayload{From: from, Target: target, Text: text})
		return
	}

	if irc.IsCTCP(text) {
		tag, data := irc.CTCPUnpack(text)
		e.publish(event.CTCP, event.CTCPPayload{From: from, Target: target, Tag: tag, Data: data})
		if tag == "ACTION" {
			e.publish(event.Action, event.ActionPayload{From: from, Target: target, Text: data})
		}
		return
	}

	e.publish(event.Message, event.MessagePayload{From: from, Target: target, Text: text})
}

func (e *Engine) handleJoin(m *irc.Message) {
	who := m.Hostmask().Nick
	channel := m.Arg(0)
	if channel == "" {
		channel = m.Trailing
	}

	if strings.EqualFold(who, e.State.Nickname()) {
		ch := data.CreateChannel(channel)
		e.State.mu.Lock()
		e.State.channels[strings.ToLower(channel)] = ch
		e.State.mu.Unlock()
		ch.MoveToRole(who, data.Member)

		_ = e.sched.Send(irc.MODE+" "+channel+" +b", false)

		e.publish(event.BotJoin, event.JoinPayload{Who: who, Channel: channel})
		return
	}

	if ch := e.State.GetChannel(channel); ch != nil {
		ch.MoveToRole(who, data.Member)
	}
	e.publish(event.Join, event.JoinPayload{Who: who, Channel: channel})
}

func (e *Engine) handlePart(m *irc.Message) {
	who := m.Hostmask().Nick
	channel := m.Arg(0)
	if channel == "" {
		channel = m.Trailing
	}
	reason := m.Trailing

	if ch := e.State.GetChannel(channel); ch != nil {
		ch.RemoveNick(who)
	}

	if strings.EqualFold(who, e.State.Nickname()) {
		e.State.mu.Lock()
		delete(e.State.channels, strings.ToLower(channel))
		e.State.mu.Unlock()
		e.publish(event.BotPart, event.PartPayload{Who: who, Channel: channel, Reason: reason})
		return
	}

	e.publish(event.Part, event.PartPayload{Who: who, Channel: channel, Reason: reason})
}

// handleQuit implements the Open Question resolution that a self-QUIT is a
// no-op beyond transport teardown: servers essentially never echo a
// client's own QUIT back as a message before dropping the connection, but
// if one arrives, the scheduler is stopped and the transport closed, and
// no Quit/QuitPart events fire for it — the disconnect path (Engine.loop's
// Incoming-channel-closed branch) is what observers should key off of
// instead.
func (e *Engine) handleQuit(m *irc.Message) {
	who := m.Hostmask().Nick
	if strings.EqualFold(who, e.State.Nickname()) {
		if e.sched != nil {
			e.sched.Stop()
		}
		if e.conn != nil {
			_ = e.conn.Close()
		}
		return
	}

	reason := m.Trailing

	e.State.mu.RLock()
	channels := make([]*data.Channel, 0, len(e.State.channels))
	names := make([]string, 0, len(e.State.channels))
	for name, ch := range e.State.channels {
		channels = append(channels, ch)
		names = append(names, name)
	}
	e.State.mu.RUnlock()

	for i, ch := range channels {
		if _, ok := ch.RoleOf(who); ok {
			ch.RemoveNick(who)
			e.publish(event.QuitPart, event.QuitPartPayload{Who: who, Channel: names[i]})
		}
	}

	e.publish(event.Quit, event.QuitPayload{Who: who, Reason: reason})
}

func (e *Engine) handleKick(m *irc.Message) {
	channel := m.Arg(0)
	target := m.Arg(1)
	reason := m.Trailing
	who := m.Hostmask().Nick

	if ch := e.State.GetChannel(channel); ch != nil {
		ch.RemoveNick(target)
	}

	if strings.EqualFold(target, e.State.Nickname()) {
		e.State.mu.Lock()
		delete(e.State.channels, strings.ToLower(channel))
		e.State.mu.Unlock()
	}

	e.publish(event.Kick, event.KickPayload{Who: who, Target: target, Channel: channel, Reason: reason})
}

func (e *Engine) handleNick(m *irc.Message) {
	old := m.Hostmask().Nick
	newNick := m.Trailing
	if newNick == "" {
		newNick = m.Arg(0)
	}

	if strings.EqualFold(old, e.State.Nickname()) {
		e.State.setNickname(newNick)
	}

	e.State.mu.RLock()
	channels := make([]*data.Channel, 0, len(e.State.channels))
	for _, ch := range e.State.channels {
		channels = append(channels, ch)
	}
	e.State.mu.RUnlock()

	for _, ch := range channels {
		ch.RenameNick(old, newNick)
	}

	e.publish(event.NickChange, event.NickChangePayload{Old: old, New: newNick})
}

// handleMode applies a channel MODE line's sign runs (role transitions plus
// general ChannelModes). Targets are told apart via the ISUPPORT
// CHANTYPES-driven channel finder; a MODE whose target is not a channel
// (the bot's own user modes) is ignored and publishes no Mode event.
func (e *Engine) handleMode(m *irc.Message) {
	target := m.Arg(0)
	if !e.State.isChannel(target) {
		// user-mode self-targeted MODE: nothing further to track beyond
		// disambiguation.
		return
	}

	ch := e.State.GetChannel(target)
	if ch == nil {
		return
	}

	modestring := m.Arg(1)
	args := m.Params[2:]

	entries := walkModeLine(modestring, args, e.State.support.Chanmodes, roleLetterSet())
	for _, en := range entries {
		if role, ok := roleLetters[en.letter]; ok && en.arg != "" {
			if en.sign == '+' {
				ch.MoveToRole(en.arg, role)
			} else {
				ch.MoveToRole(en.arg, data.Member)
			}
		}
	}

	_ = ch.Modes.Apply(modestring, args, e.State.support.Chanmodes, roleLetterSet())

	if hasLetter(modestring, 'b') {
		ch.SetBans(ch.Modes.Addresses('b'))
	}

	e.publish(event.Mode, event.ModePayload{Channel: target, Who: m.Hostmask().Nick, Mode: modestring, Target: strings.Join(args, " ")})
}

func roleLetterSet() map[rune]bool {
	return map[rune]bool{'q': true, 'o': true, 'h': true, 'v': true}
}

func hasLetter(modestring string, letter rune) bool {
	for _, r := range modestring {
		if r == letter {
			return true
		}
	}
	return false
}

// modeEntry is one resolved letter out of a MODE line's sign runs, with its
// argument already matched up (empty if the letter takes none).
type modeEntry struct {
	sign   byte
	letter rune
	arg    string
}

// walkModeLine performs the single positional-argument walk a MODE line
// requires, shared by role-transition extraction here and mirrored
// independently (over the same inputs) by data.ChannelModes.Apply for
// general mode state.
func walkModeLine(modestring string, args []string, kinds irc.ChanmodeKinds, roles map[rune]bool) []modeEntry {
	sign := byte('+')
	argIdx := 0
	next := func() string {
		if argIdx < len(args) {
			a := args[argIdx]
			argIdx++
			return a
		}
		return ""
	}

	var entries []modeEntry
	for _, letter := range modestring {
		switch letter {
		case '+', '-':
			sign = byte(letter)
			continue
		}

		var arg string
		if roles[letter] {
			arg = next()
		} else if kind, known := kinds[letter]; known {
			switch kind {
			case irc.ArgAddress, irc.ArgAlways:
				arg = next()
			case irc.ArgOnSet:
				if sign == '+' {
					arg = next()
				}
			}
		}

		entries = append(entries, modeEntry{sign: sign, letter: letter, arg: arg})
	}
	return entries
}

func (e *Engine) handleTopic(m *irc.Message) {
	channel := m.Arg(1)
	topic := m.Trailing
	if ch := e.State.GetChannel(channel); ch != nil {
		ch.SetTopic(topic)
	}
	e.publish(event.Topic, event.TopicPayload{Channel: channel, Topic: topic})
}

func (e *Engine) handleISupport(m *irc.Message) {
	tokens := m.Params[1:]
	e.State.mu.Lock()
	_ = e.State.support.Apply(tokens)
	e.State.mu.Unlock()
	e.publish(event.ServerSupports, event.ServerSupportsPayload{Tokens: tokens})
}

func (e *Engine) whoisBuilder(nick string) *data.WhoisBuilder {
	e.State.mu.Lock()
	defer e.State.mu.Unlock()
	key := strings.ToLower(nick)
	w, ok := e.State.whois[key]
	if !ok {
		w = data.NewWhoisBuilder(nick)
		e.State.whois[key] = w
	}
	return w
}

func (e *Engine) handleWhoisNumeric(m *irc.Message) {
	nick := m.Arg(1)
	w := e.whoisBuilder(nick)

	switch m.Command {
	case irc.RPL_WHOISUSER:
		w.User = m.Arg(2)
		w.Host = m.Arg(3)
		w.Realname = m.Trailing
	case irc.RPL_WHOISSERVER:
		w.Server = m.Arg(2)
		w.ServerInfo = m.Trailing
	case irc.RPL_WHOISOPERATOR:
		w.Operator = true
	case irc.RPL_WHOISIDLE:
		w.Idle = true
		w.IdleSeconds = atoiOr(m.Arg(2), 0)
	case irc.RPL_WHOISCHANNELS:
		w.AddChannels(strings.Fields(m.Trailing), e.State.rolePrefixes())
	case irc.RPL_WHOISACCOUNT:
		w.Account = m.Arg(2)
	}
}

func (e *Engine) handleEndOfWhois(m *irc.Message) {
	nick := m.Arg(1)
	key := strings.ToLower(nick)

	e.State.mu.Lock()
	w, ok := e.State.whois[key]
	delete(e.State.whois, key)
	e.State.mu.Unlock()

	if !ok {
		w = data.NewWhoisBuilder(nick)
	}

	e.publish(event.Whois, event.WhoisPayload{
		Nick: w.Nick, User: w.User, Host: w.Host, Realname: w.Realname,
		Server: w.Server, ServerInfo: w.ServerInfo, Account: w.Account,
		Operator: w.Operator, Idle: w.Idle, IdleSeconds: w.IdleSeconds,
		Channels: w.Channels(),
		OwnerIn:  w.OwnerIn(), OpIn: w.OpIn(), HalfOpIn: w.HalfOpIn(), VoiceIn: w.VoiceIn(),
	})
}

func (e *Engine) handleIsOn(m *irc.Message) {
	e.publish(event.IsOn, event.IsOnPayload{Nicks: strings.Fields(m.Trailing)})
}

func (e *Engine) handleVersion(m *irc.Message) {
	e.publish(event.ServerVersion, event.ServerVersionPayload{
		Version: m.Arg(1), Server: m.Arg(2), Comments: m.Trailing,
	})
}

func (e *Engine) handleNames(m *irc.Message) {
	channel := m.Arg(2)
	ch := e.State.GetChannel(channel)
	if ch == nil {
		return
	}

	roles := e.State.rolePrefixes()
	for _, entry := range strings.Fields(m.Trailing) {
		nick := entry
		role := data.Member
		if len(entry) > 0 {
			if letter, ok := roles[rune(entry[0])]; ok {
				if r, known := roleLetters[letter]; known {
					role = r
					nick = entry[1:]
				}
			}
		}
		ch.MoveToRole(nick, role)
	}
}

func (e *Engine) handleBanList(m *irc.Message) {
	channel := m.Arg(1)
	mask := m.Arg(2)
	if ch := e.State.GetChannel(channel); ch != nil {
		ch.AddBan(mask)
		ch.Modes.AddAddress('b', mask)
	}
}

func (e *Engine) handleMotdLine(m *irc.Message) {
	e.State.mu.Lock()
	if e.State.motd.Len() > 0 {
		e.State.motd.WriteByte('\n')
	}
	e.State.motd.WriteString(m.Trailing)
	e.State.mu.Unlock()
}

func (e *Engine) handleEndOfMotd(m *irc.Message) {
	text := e.State.MOTD()
	if text == "" {
		text = "no MOTD"
	}
	e.publish(event.MOTD, event.MOTDPayload{Text: text})
	e.fireReadyOnce()
}

func (e *Engine) handleNickInUse(m *irc.Message) {
	e.publish(event.NickInUse, event.NickInUsePayload{Nick: m.Arg(1)})
}

func (e *Engine) handleInvite(m *irc.Message) {
	e.publish(event.Invite, event.InvitePayload{Who: m.Hostmask().Nick, Channel: m.Trailing})
}

func (e *Engine) handleError(m *irc.Message) {
	e.State.mu.Lock()
	e.State.errored = true
	e.State.mu.Unlock()
	e.publish(event.Error, event.ErrorPayload{Type: "server", Err: irc.ProtocolError{Text: m.Trailing}})
}

func atoiOr(s string, fallback int) int {
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return fallback
		}
		n = n*10 + int(r-'0')
	}
	if s == "" {
		return fallback
	}
	return n
}

package event

import "time"

// Event is the envelope delivered to subscribers. Payload holds one of the
// typed structs below, matching Kind; subscribers that only care about one
// Kind can type-assert without a switch.
type Event struct {
	Kind    Kind
	Time    time.Time
	Payload interface{}
}

// ConnectPayload accompanies Connect.
type ConnectPayload struct{}

// DisconnectPayload accompanies Disconnect.
type DisconnectPayload struct {
	Reason string
}

// LinePayload accompanies LineReceive and LineSent.
type LinePayload struct {
	Line string
}

// ReadyPayload accompanies Ready.
type ReadyPayload struct{}

// MOTDPayload accompanies MOTD.
type MOTDPayload struct {
	Text string
}

// MessagePayload accompanies Message and Notice.
type MessagePayload struct {
	From   string // nickname, or raw prefix if target was "*"
	Target string
	Text   string
}

// CTCPPayload accompanies CTCP.
type CTCPPayload struct {
	From   string
	Target string
	Tag    string
	Data   string
}

// ActionPayload accompanies Action.
type ActionPayload struct {
	From   string
	Target string
	Text   string
}

// JoinPayload accompanies Join and BotJoin.
type JoinPayload struct {
	Who     string
	Channel string
}

// PartPayload accompanies Part and BotPart.
type PartPayload struct {
	Who     string
	Channel string
	Reason  string
}

// QuitPayload accompanies Quit.
type QuitPayload struct {
	Who    string
	Reason string
}

// QuitPartPayload accompanies the per-channel synthetic QuitPart.
type QuitPartPayload struct {
	Who     string
	Channel string
}

// KickPayload accompanies Kick.
type KickPayload struct {
	Who     string
	Target  string
	Channel string
	Reason  string
}

// NickChangePayload accompanies NickChange.
type NickChangePayload struct {
	Old, New string
}

// NickInUsePayload accompanies NickInUse.
type NickInUsePayload struct {
	Nick string
}

// TopicPayload accompanies Topic.
type TopicPayload struct {
	Channel string
	Topic   string
	Who     string
}

// ModePayload accompanies Mode.
type ModePayload struct {
	Channel string
	Who     string
	Mode    string
	Target  string
}

// WhoisPayload accompanies Whois; see data.WhoisBuilder for field meanings.
type WhoisPayload struct {
	Nick, User, Host, Realname, Server, ServerInfo, Account string
	Operator, Idle                                          bool
	IdleSeconds                                             int
	Channels                                                []string
	OwnerIn, OpIn, HalfOpIn, VoiceIn                         []string
}

// PongPayload accompanies Pong.
type PongPayload struct {
	Token string
}

// InvitePayload accompanies Invite.
type InvitePayload struct {
	Who, Channel string
}

// IsOnPayload accompanies IsOn.
type IsOnPayload struct {
	Nicks []string
}

// ServerVersionPayload accompanies ServerVersion.
type ServerVersionPayload struct {
	Version, Server, Comments string
}

// ServerSupportsPayload accompanies ServerSupports.
type ServerSupportsPayload struct {
	Tokens []string
}

// ServerOperatorPayload accompanies ServerOperator.
type ServerOperatorPayload struct{}

// ErrorPayload accompanies Error.
type ErrorPayload struct {
	Type string // "transport" or "server"
	Err  error
}

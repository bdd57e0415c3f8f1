package data

// WhoisBuilder accumulates the scattered RPL_WHOIS* numerics (311, 312,
// 313, 317, 319, 330, terminated by 318) into one record.
type WhoisBuilder struct {
	Nick     string
	User     string
	Host     string
	Realname string

	Server     string
	ServerInfo string

	Operator bool

	Idle        bool
	IdleSeconds int

	Account string

	channels map[string]bool

	// ownerIn/opIn/halfOpIn/voiceIn are the role subsets of channels. A
	// channel with no recognized role-prefix symbol is plain-member and
	// appears only in channels.
	ownerIn  map[string]bool
	opIn     map[string]bool
	halfOpIn map[string]bool
	voiceIn  map[string]bool
}

// NewWhoisBuilder starts a new accumulation for nick.
func NewWhoisBuilder(nick string) *WhoisBuilder {
	return &WhoisBuilder{
		Nick:     nick,
		channels: make(map[string]bool),
		ownerIn:  make(map[string]bool),
		opIn:     make(map[string]bool),
		halfOpIn: make(map[string]bool),
		voiceIn:  make(map[string]bool),
	}
}

// AddChannels records one or more channel names from RPL_WHOISCHANNELS,
// stripping any leading role-prefix symbol and sorting the name into the
// matching role subset. rolePrefixes maps display symbol (e.g. '@') to mode
// letter (e.g. 'o'); the letters q, o, h and v select ownerIn, opIn,
// halfOpIn and voiceIn. Follows the Open Question resolution that '~'
// always means owners, as long as rolePrefixes maps '~' to 'q'.
func (w *WhoisBuilder) AddChannels(names []string, rolePrefixes map[rune]rune) {
	for _, name := range names {
		if name == "" {
			continue
		}
		runes := []rune(name)
		letter, isPrefix := rolePrefixes[runes[0]]
		if isPrefix {
			name = string(runes[1:])
		}
		if name == "" {
			continue
		}

		w.channels[name] = true
		if !isPrefix {
			continue
		}
		switch letter {
		case 'q':
			w.ownerIn[name] = true
		case 'o':
			w.opIn[name] = true
		case 'h':
			w.halfOpIn[name] = true
		case 'v':
			w.voiceIn[name] = true
		}
	}
}

// Channels returns a snapshot of the channel names accumulated so far.
func (w *WhoisBuilder) Channels() []string {
	return setToSlice(w.channels)
}

// OwnerIn, OpIn, HalfOpIn, and VoiceIn return the role-subset snapshots of
// Channels.
func (w *WhoisBuilder) OwnerIn() []string  { return setToSlice(w.ownerIn) }
func (w *WhoisBuilder) OpIn() []string     { return setToSlice(w.opIn) }
func (w *WhoisBuilder) HalfOpIn() []string { return setToSlice(w.halfOpIn) }
func (w *WhoisBuilder) VoiceIn() []string  { return setToSlice(w.voiceIn) }

func setToSlice(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	return out
}

package data

import "github.com/aarondl/ircengine/irc"

// ChannelModes tracks the general (non-role-prefix) CHANMODES state of a
// channel: simple flags (+m, +n, +t, ...), single-value argument modes
// (+k key, +l limit), and address-list modes (+b, +e, +I).
type ChannelModes struct {
	flags     map[rune]bool
	args      map[rune]string
	addresses map[rune][]string
}

// NewChannelModes returns an empty ChannelModes.
func NewChannelModes() *ChannelModes {
	return &ChannelModes{
		flags:     make(map[rune]bool),
		args:      make(map[rune]string),
		addresses: make(map[rune][]string),
	}
}

// IsSet reports whether a simple flag mode is currently set.
func (m *ChannelModes) IsSet(mode rune) bool {
	return m.flags[mode]
}

// Arg returns the current argument for an argument-carrying mode (+k, +l).
func (m *ChannelModes) Arg(mode rune) string {
	return m.args[mode]
}

// Addresses returns the current address list for an address-kind mode
// (+b, +e, +I).
func (m *ChannelModes) Addresses(mode rune) []string {
	out := make([]string, len(m.addresses[mode]))
	copy(out, m.addresses[mode])
	return out
}

// AddAddress appends mask to mode's address list, if not already present.
// Used to seed the list from a numeric reply (e.g. RPL_BANLIST) outside the
// normal sign-run Apply path.
func (m *ChannelModes) AddAddress(mode rune, mask string) {
	m.addresses[mode] = appendUnique(m.addresses[mode], mask)
}

// Apply applies a MODE line's mode string, which may hold several sign runs
// (e.g. "+mk-l" plus its argument tokens), against kinds, which classifies
// each letter's argument
// behavior. prefixLetters are skipped entirely — role-prefix letters
// (o/v/h/q/a typically) are handled by the engine's role-transition logic,
// never by general ChannelModes.
func (m *ChannelModes) Apply(modestring string, args []string, kinds irc.ChanmodeKinds, prefixLetters map[rune]bool) error {
	if len(modestring) == 0 {
		return nil
	}

	sign := byte('+')
	argIdx := 0
	nextArg := func() string {
		if argIdx < len(args) {
			a := args[argIdx]
			argIdx++
			return a
		}
		return ""
	}

	for _, letter := range modestring {
		switch letter {
		case '+', '-':
			sign = byte(letter)
			continue
		}

		if prefixLetters[letter] {
			// consumed by the engine's role-transition logic; a prefix
			// letter's argument (a nickname) must still be skipped here so
			// later arguments don't shift.
			nextArg()
			continue
		}

		kind, known := kinds[letter]
		if !known {
			kind = irc.ArgNone
		}

		switch kind {
		case irc.ArgAddress:
			arg := nextArg()
			if sign == '+' {
				m.addresses[letter] = appendUnique(m.addresses[letter], arg)
			} else {
				m.addresses[letter] = removeAll(m.addresses[letter], arg)
			}
		case irc.ArgAlways:
			arg := nextArg()
			if sign == '+' {
				m.flags[letter] = true
				m.args[letter] = arg
			} else {
				m.flags[letter] = false
				delete(m.args, letter)
			}
		case irc.ArgOnSet:
			if sign == '+' {
				m.flags[letter] = true
				m.args[letter] = nextArg()
			} else {
				m.flags[letter] = false
				delete(m.args, letter)
			}
		default: // ArgNone
			m.flags[letter] = sign == '+'
		}
	}

	return nil
}

func appendUnique(list []string, v string) []string {
	for _, existing := range list {
		if existing == v {
			return list
		}
	}
	return append(list, v)
}

func removeAll(list []string, v string) []string {
	out := list[:0]
	for _, existing := range list {
		if existing != v {
			out = append(out, existing)
		}
	}
	return out
}

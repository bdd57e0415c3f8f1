package irc

import "testing"

func TestMask(t *testing.T) {
	mask := Mask("nick!user@host")
	if mask.GetNick() != "nick" || mask.GetUsername() != "user" ||
		mask.GetHost() != "host" || mask.GetFullhost() != string(mask) {
		t.Errorf("got nick=%q user=%q host=%q full=%q",
			mask.GetNick(), mask.GetUsername(), mask.GetHost(), mask.GetFullhost())
	}

	mask = "nick@user!host"
	if mask.GetNick() != "nick" || mask.GetUsername() != "" || mask.GetHost() != "" {
		t.Errorf("malformed mask parsed unexpectedly: %+v", mask)
	}

	mask = "nick"
	if mask.GetNick() != "nick" || mask.GetUsername() != "" || mask.GetHost() != "" {
		t.Errorf("bare nick parsed unexpectedly: %+v", mask)
	}
}

func TestMaskSplit(t *testing.T) {
	nick, user, host := Mask("nick!user@host").Split()
	if nick != "nick" || user != "user" || host != "host" {
		t.Errorf("got %q %q %q", nick, user, host)
	}

	nick, user, host = WildMask("ni ck!user@host").Split()
	if nick != "" || user != "" || host != "" {
		t.Errorf("expected empty split for invalid wildmask, got %q %q %q", nick, user, host)
	}
}

func TestMaskIsValid(t *testing.T) {
	invalid := []Mask{"", "!@", "nick", "nick!", "nick@", "nick@host!user"}
	for _, m := range invalid {
		if m.IsValid() {
			t.Errorf("%q should be invalid", m)
		}
	}
	if !Mask("nick!user@host").IsValid() {
		t.Error("nick!user@host should be valid")
	}
}

func TestWildMaskSplit(t *testing.T) {
	nick, user, host := WildMask("n?i*ck!u*ser@h*o?st").Split()
	if nick != "n?i*ck" || user != "u*ser" || host != "h*o?st" {
		t.Errorf("got %q %q %q", nick, user, host)
	}

	nick, user, host = WildMask("n?i* ck!u*ser@h*o?st").Split()
	if nick != "" || user != "" || host != "" {
		t.Errorf("expected empty split, got %q %q %q", nick, user, host)
	}
}

func TestWildMaskIsValid(t *testing.T) {
	invalid := []WildMask{"", "!@", "n?i*ck", "n?i*ck!", "n?i*ck@", "n*i?ck@h*o?st!u*ser"}
	for _, m := range invalid {
		if m.IsValid() {
			t.Errorf("%q should be invalid", m)
		}
	}
	if !WildMask("n?i*ck!u*ser@h*o?st").IsValid() {
		t.Error("n?i*ck!u*ser@h*o?st should be valid")
	}
}

func TestWildMaskMatch(t *testing.T) {
	var wmask WildMask
	var mask Mask
	if !wmask.Match(mask) {
		t.Error("empty wildmask should match empty mask")
	}

	if !WildMask("nick!*@*").Match("nick!@") {
		t.Error("nick!*@* should match nick!@")
	}

	mask = "nick!user@host"

	positive := []WildMask{
		`nick!user@host`,
		`*`, `*!*@*`, `**!**@**`, `*@host`, `**@host`,
		`nick!*`, `nick!**`, `*nick!user@host`, `**nick!user@host`,
		`nick!user@host*`, `nick!user@host**`,
		`ni?k!us?r@ho?st`, `ni??k!us??r@ho??st`, `????!????@????`,
		`?ick!user@host`, `??ick!user@host`, `?nick!user@host`,
		`??nick!user@host`, `nick!user@hos?`, `nick!user@hos??`,
		`nick!user@host?`, `nick!user@host??`,
		`?*nick!user@host`, `*?nick!user@host`, `??**nick!user@host`,
		`**??nick!user@host`,
		`nick!user@host?*`, `nick!user@host*?`, `nick!user@host??**`,
		`nick!user@host**??`, `nick!u?*?ser@host`,
	}

	for _, w := range positive {
		if !w.Match(mask) {
			t.Errorf("expected %v to match %v", w, mask)
		}
		if !mask.Match(w) {
			t.Errorf("expected %v to match %v", mask, w)
		}
	}

	negative := []WildMask{
		``, `?nq******c?!*@*`, `nick2!*@*`, `*!*@hostfail`, `*!*@failhost`,
	}

	for _, w := range negative {
		if w.Match(mask) {
			t.Errorf("expected %v not to match %v", w, mask)
		}
		if mask.Match(w) {
			t.Errorf("expected %v not to match %v", mask, w)
		}
	}
}

func TestMatchesBan(t *testing.T) {
	h := ParseHostmask("nick!user@host.com")

	positive := []string{"*!*@host.com", "nick!*@*", "*!*@*"}
	for _, glob := range positive {
		if !MatchesBan(glob, h) {
			t.Errorf("expected %q to match %v", glob, h)
		}
	}

	negative := []string{"other!*@*", "*!*@otherhost"}
	for _, glob := range negative {
		if MatchesBan(glob, h) {
			t.Errorf("expected %q not to match %v", glob, h)
		}
	}
}

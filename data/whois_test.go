package data

import "testing"

func TestWhoisBuilderAddChannels(t *testing.T) {
	w := NewWhoisBuilder("nick")
	rolePrefixes := map[rune]rune{'@': 'o', '+': 'v', '~': 'q'}

	w.AddChannels([]string{"@#chan1", "+#chan2", "#chan3"}, rolePrefixes)

	got := w.Channels()
	want := map[string]bool{"#chan1": true, "#chan2": true, "#chan3": true}
	if len(got) != len(want) {
		t.Fatalf("Channels() = %v, want 3 entries", got)
	}
	for _, ch := range got {
		if !want[ch] {
			t.Errorf("unexpected channel %q", ch)
		}
	}
}

func TestWhoisBuilderAddChannelsRoleSubsets(t *testing.T) {
	w := NewWhoisBuilder("nick")
	rolePrefixes := map[rune]rune{'@': 'o', '+': 'v', '~': 'q', '%': 'h'}

	w.AddChannels([]string{"@#ops", "+#voices", "~#owners", "%#halfops", "#plain"}, rolePrefixes)

	if got := w.OpIn(); len(got) != 1 || got[0] != "#ops" {
		t.Errorf("OpIn() = %v, want [#ops]", got)
	}
	if got := w.VoiceIn(); len(got) != 1 || got[0] != "#voices" {
		t.Errorf("VoiceIn() = %v, want [#voices]", got)
	}
	if got := w.OwnerIn(); len(got) != 1 || got[0] != "#owners" {
		t.Errorf("OwnerIn() = %v, want [#owners]", got)
	}
	if got := w.HalfOpIn(); len(got) != 1 || got[0] != "#halfops" {
		t.Errorf("HalfOpIn() = %v, want [#halfops]", got)
	}
	if len(w.Channels()) != 5 {
		t.Errorf("Channels() = %v, want 5 entries", w.Channels())
	}
}

func TestWhoisBuilderAddChannelsDedup(t *testing.T) {
	w := NewWhoisBuilder("nick")
	w.AddChannels([]string{"#chan1"}, nil)
	w.AddChannels([]string{"#chan1"}, nil)

	if len(w.Channels()) != 1 {
		t.Errorf("Channels() = %v, want single deduped entry", w.Channels())
	}
}

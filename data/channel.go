package data

import (
	"strings"

	"github.com/aarondl/ircengine/irc"
)

// Role names a disjoint per-channel membership bucket.
type Role string

const (
	Owner  Role = "owners"
	Op     Role = "ops"
	Halfop Role = "halfops"
	Voice  Role = "voices"
	Member Role = "members"
)

// roleOrder lists roles in the order they are checked by RoleOf/MoveToRole.
var roleOrder = []Role{Owner, Op, Halfop, Voice, Member}

// Channel encapsulates all the data associated with a channel: topic, ban
// list, general CHANMODES state, and the five disjoint role sets a
// nickname can belong to.
type Channel struct {
	name  string
	topic string

	roles map[Role]map[string]bool
	bans  []string

	Modes *ChannelModes
}

// CreateChannel instantiates a channel object.
func CreateChannel(name string) *Channel {
	c := &Channel{
		name:  strings.ToLower(name),
		roles: make(map[Role]map[string]bool, len(roleOrder)),
		Modes: NewChannelModes(),
	}
	for _, r := range roleOrder {
		c.roles[r] = make(map[string]bool)
	}
	return c
}

// GetName gets the name of the channel.
func (c *Channel) GetName() string {
	return c.name
}

// SetTopic sets the topic of the channel.
func (c *Channel) SetTopic(topic string) {
	c.topic = topic
}

// GetTopic gets the topic of the channel.
func (c *Channel) GetTopic() string {
	return c.topic
}

// RoleOf reports which role set nick currently belongs to, if any.
func (c *Channel) RoleOf(nick string) (Role, bool) {
	nick = strings.ToLower(nick)
	for _, r := range roleOrder {
		if c.roles[r][nick] {
			return r, true
		}
	}
	return "", false
}

// Members returns a snapshot of the nicknames in the given role set.
func (c *Channel) Members(role Role) []string {
	set := c.roles[role]
	out := make([]string, 0, len(set))
	for nick := range set {
		out = append(out, nick)
	}
	return out
}

// MoveToRole places nick into exactly role, removing it from every other
// role set in this channel. This realizes the role-transition invariant:
// after any role-affecting mode change a nickname belongs to exactly one
// role set and no other.
func (c *Channel) MoveToRole(nick string, role Role) {
	nick = strings.ToLower(nick)
	for _, r := range roleOrder {
		delete(c.roles[r], nick)
	}
	c.roles[role][nick] = true
}

// RemoveNick removes nick from every role set, for PART/QUIT/KICK where the
// nick leaves the channel entirely rather than merely changing role.
func (c *Channel) RemoveNick(nick string) {
	nick = strings.ToLower(nick)
	for _, r := range roleOrder {
		delete(c.roles[r], nick)
	}
}

// RenameNick moves whatever role nick currently holds to newNick. A no-op
// if nick holds no role in this channel.
func (c *Channel) RenameNick(nick, newNick string) {
	role, ok := c.RoleOf(nick)
	if !ok {
		return
	}
	c.RemoveNick(nick)
	c.MoveToRole(newNick, role)
}

// SetBans replaces the ban list wholesale, mirroring a RPL_BANLIST/367
// transaction.
func (c *Channel) SetBans(banmasks []string) {
	c.bans = make([]string, len(banmasks))
	copy(c.bans, banmasks)
}

// AddBan appends a ban glob, if not already present.
func (c *Channel) AddBan(mask string) {
	if c.HasBanmask(mask) {
		return
	}
	c.bans = append(c.bans, mask)
}

// GetBanmasks gets the banmasks of the channel.
func (c *Channel) GetBanmasks() []string {
	banmasks := make([]string, len(c.bans))
	copy(banmasks, c.bans)
	return banmasks
}

// IsBanned reports whether hostmask is covered by any glob entry in the ban
// list.
func (c *Channel) IsBanned(hostmask irc.Hostmask) bool {
	for _, b := range c.bans {
		if irc.MatchesBan(b, hostmask) {
			return true
		}
	}
	return false
}

// HasBanmask checks to see if a specific mask is present in the banlist.
func (c *Channel) HasBanmask(banmask string) bool {
	for i := 0; i < len(c.bans); i++ {
		if c.bans[i] == banmask {
			return true
		}
	}
	return false
}

// DeleteBanmask deletes a banmask from the list via swap-remove.
func (c *Channel) DeleteBanmask(banmask string) bool {
	ln := len(c.bans)
	for i := 0; i < ln; i++ {
		if c.bans[i] == banmask {
			c.bans[i], c.bans[ln-1] = c.bans[ln-1], c.bans[i]
			c.bans = c.bans[:ln-1]
			return true
		}
	}

	return false
}

package irc

import "regexp"

// nChannelsAssumed sizes the FindChannels result slice; too small risks a
// reallocation, not correctness.
const nChannelsAssumed = 1

// ChannelFinder recognizes channel-shaped tokens using the server's
// advertised CHANTYPES, caching the compiled regex.
type ChannelFinder struct {
	channelRegexp *regexp.Regexp
}

// CreateChannelFinder builds a ChannelFinder for the given CHANTYPES value
// (e.g. "#&").
func CreateChannelFinder(types string) (*ChannelFinder, error) {
	c := &ChannelFinder{}
	if err := c.BuildRegex(types); err != nil {
		return nil, err
	}
	return c, nil
}

// BuildRegex (re)compiles the channel-matching regex for the given
// CHANTYPES value.
func (c *ChannelFinder) BuildRegex(types string) error {
	safetypes := ""
	for _, r := range types {
		safetypes += `\` + string(r)
	}
	regex, err := regexp.Compile(`[` + safetypes + `][^\s,]+`)
	if err == nil {
		c.channelRegexp = regex
	}
	return err
}

// FindChannels retrieves all channel-shaped tokens present in msg.
func (c *ChannelFinder) FindChannels(msg string) []string {
	channels := make([]string, 0, nChannelsAssumed)
	channels = append(channels, c.channelRegexp.FindAllString(msg, -1)...)
	return channels
}

// IsChannel reports whether target itself (not a substring search) looks
// like a channel name under CHANTYPES.
func (c *ChannelFinder) IsChannel(target string) bool {
	if len(target) == 0 {
		return false
	}
	loc := c.channelRegexp.FindStringIndex(target)
	return loc != nil && loc[0] == 0 && loc[1] == len(target)
}

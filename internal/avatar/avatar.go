// Package avatar builds placeholder image URLs for users and agents without one.
package avatar

import "net/url"

const baseURL = "https://api.dicebear.com/9.x"

// Initials is used for people, including the "Unknown" speaker.
func Initials(seed string) string {
	return build("initials", seed)
}

// Bot is used for agents.
func Bot(seed string) string {
	return build("bottts-neutral", seed)
}

func build(style, seed string) string {
	return baseURL + "/" + style + "/svg?seed=" + url.QueryEscape(seed)
}

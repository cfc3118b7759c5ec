package utils

import (
	"github.com/sandertv/gophertunnel/minecraft/text"
)

// ChatMessage returns the message to post to chat. If colour is true, the message may contain colour tags
// such as <green>hello</green>, which are converted to formatting codes. Otherwise it is returned as is.
func ChatMessage(message string, colour bool) string {
	if !colour {
		return message
	}
	return text.Colourf("%s", message)
}

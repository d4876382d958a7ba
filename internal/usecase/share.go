package usecase

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/mmuslimabdulj/comuno/internal/domain"
)

var shareTemplates = map[domain.Locale]string{
	domain.LocaleES: `¡Únete a mi Watch Party en COMUNO! Estoy viendo "%s". Código: %s - Link: %s`,
	domain.LocaleEN: `Join my Watch Party on COMUNO! I'm watching "%s". Code: %s - Link: %s`,
}

// ShareMessage formats the invite text for a room
func ShareMessage(locale domain.Locale, title, code, link string) string {
	tmpl, ok := shareTemplates[locale]
	if !ok {
		tmpl = shareTemplates[domain.LocaleES]
	}
	return fmt.Sprintf(tmpl, title, code, link)
}

// ShareLinks are the deep links handed to the share dialog
type ShareLinks struct {
	Message  string `json:"message"`
	WhatsApp string `json:"whatsapp"`
	Email    string `json:"email"`
	SMS      string `json:"sms"`
	Facebook string `json:"facebook"`
}

// BuildShareLinks formats the invite message and the per-channel deep links
func BuildShareLinks(locale domain.Locale, title, code, link string) ShareLinks {
	msg := ShareMessage(locale, title, code, link)
	body := escapeComponent(msg)
	return ShareLinks{
		Message:  msg,
		WhatsApp: "https://wa.me/?text=" + body,
		Email:    "mailto:?subject=" + escapeComponent("Watch Party - "+title) + "&body=" + body,
		SMS:      "sms:?body=" + body,
		Facebook: "https://www.facebook.com/sharer/sharer.php?u=" + escapeComponent(link),
	}
}

// componentSafe are the characters QueryEscape encodes but links built in the
// browser leave as they are
var componentSafe = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// escapeComponent percent-encodes s with spaces as %20, leaving !'()* unescaped
func escapeComponent(s string) string {
	return componentSafe.Replace(url.QueryEscape(s))
}

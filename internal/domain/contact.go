package domain

import (
	"strings"
	"unicode"
)

// ContactLinkBase is the messaging service used for contact links.
const ContactLinkBase = "https://wa.me/"

// ContactDigits strips everything but ASCII digits from contact.
func ContactDigits(contact string) string {
	return strings.Map(func(r rune) rune {
		if r <= unicode.MaxASCII && unicode.IsDigit(r) {
			return r
		}
		return -1
	}, contact)
}

// ContactLink builds the external messaging link for a contact string.
// It reports false when the contact holds no digits.
func ContactLink(contact string) (string, bool) {
	digits := ContactDigits(contact)
	if digits == "" {
		return "", false
	}
	return ContactLinkBase + digits, true
}

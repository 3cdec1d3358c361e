// internal/contact/contact.go
//
// Resolves communication targets for a record and builds the device
// deep links the client hands off to the host (tel:, whatsapp://,
// sms:, mailto:). The client never talks to telephony itself.

package contact

import (
	"fmt"
	"net/url"
	"strings"

	"propdesk/internal/crm"
)

// ErrNoPhone is returned when none of the candidate contact fields
// carries a phone number.
var ErrNoPhone = fmt.Errorf("contact: no phone number on record")

// ErrNoEmail is returned when no candidate field carries an email
// address.
var ErrNoEmail = fmt.Errorf("contact: no email address on record")

// Phoneable is anything that exposes the contact reference fields the
// resolver walks. Deals carry all three; bookings and units map their
// customer/owner references into the same chain.
type Phoneable interface {
	ContactRefs() []crm.Ref
}

// Phone resolves a phone number by walking the record's reference
// chain in priority order and returning the first non-empty mobile.
func Phone(record Phoneable) (string, error) {
	for _, ref := range record.ContactRefs() {
		if strings.TrimSpace(ref.Mobile) != "" {
			return strings.TrimSpace(ref.Mobile), nil
		}
	}
	return "", ErrNoPhone
}

// Email resolves an email address the same way.
func Email(record Phoneable) (string, error) {
	for _, ref := range record.ContactRefs() {
		if strings.TrimSpace(ref.Email) != "" {
			return strings.TrimSpace(ref.Email), nil
		}
	}
	return "", ErrNoEmail
}

// WhatsAppNumber normalizes a raw phone value for the WhatsApp deep
// link: every non-digit is stripped, and a bare national number of
// exactly ten digits gets the country calling code prefixed. Anything
// of another length passes through as its digits.
func WhatsAppNumber(raw, countryCode string) string {
	digits := digitsOnly(raw)
	if len(digits) == 10 {
		return countryCode + digits
	}
	return digits
}

// CallLink builds the telephony intent for a raw number.
func CallLink(number string) string {
	return "tel:" + strings.TrimSpace(number)
}

// WhatsAppLink builds the WhatsApp deep link, normalizing the number
// first. Errors when the value contains no digits at all.
func WhatsAppLink(raw, countryCode string) (string, error) {
	digits := WhatsAppNumber(raw, countryCode)
	if digits == "" {
		return "", fmt.Errorf("contact: no digits in phone value %q", raw)
	}
	return "whatsapp://send?phone=" + digits, nil
}

// SMSLink builds the SMS intent for a raw number.
func SMSLink(number string) string {
	return "sms:" + strings.TrimSpace(number)
}

// MailLink builds the mail intent for an address.
func MailLink(address string) string {
	return "mailto:" + url.PathEscape(strings.TrimSpace(address))
}

func digitsOnly(value string) string {
	var b strings.Builder
	for _, r := range value {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

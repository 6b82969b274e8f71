// Package contact relays contact form submissions to the school office by email.
package contact

import "errors"

// ErrDelivery indicates the mail provider did not accept the message.
var ErrDelivery = errors.New("failed to send message")

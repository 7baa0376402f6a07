package common

import "net/url"

// WhatsAppLink builds the wa.me deep link that opens a chat with the given
// number and the body prefilled. The number is international digits without
// the leading plus, the way wa.me expects it.
func WhatsAppLink(number, body string) string {
	q := url.Values{}
	q.Set("text", body)
	u := url.URL{Scheme: "https", Host: "wa.me", Path: "/" + number, RawQuery: q.Encode()}
	return u.String()
}

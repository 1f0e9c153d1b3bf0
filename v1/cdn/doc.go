// Package cdn signs Cloud CDN URL prefixes so clients can fetch report
// exports directly from the CDN.
//
// The signature is an HMAC-SHA1 over
//
//	URLPrefix=<base64url prefix>&Expires=<unix seconds>&KeyName=<key name>
//
// keyed with the decoded CDN secret, base64url encoded without padding.
package cdn

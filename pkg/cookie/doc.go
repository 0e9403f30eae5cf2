// Package cookie writes and verifies HMAC-SHA256 signed cookies.
//
// The booking module stores the visitor id in a signed cookie so a client
// cannot pick another visitor's form session by editing the value.
//
//	m, err := cookie.NewFromConfig(cfg)
//	m.SetSigned(w, "tb_visitor", id.String())
//	id, err := m.GetSigned(r, "tb_visitor")
//
// Verification accepts any configured secret, which allows rotation: put the
// new secret first and keep the old one until existing cookies expire.
package cookie

package common

// SessionCookieName is the cookie that carries the signed session token
// on every browser request.
const SessionCookieName = "token"

package constants

// Input length bounds enforced by binding tags
const (
	MinNameLength     = 2
	MaxNameLength     = 50
	MinPasswordLength = 8
	MaxPasswordLength = 128
	MaxLocationLength = 255
)

// PasswordSpecialChars is the set accepted by the password-complexity rule.
const PasswordSpecialChars = "@$!%*?&#^()-_=+[]{}.,;:"

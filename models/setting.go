package models

// Setting is a single durable key/value slot. The settings collection holds
// small installation-scoped state: the session mirror, the signing key
// encoding, and the admin seed flag.
type Setting struct {
	// Key is the unique slot name.
	Key string `json:"key"`

	// Value is the raw slot content. Structured values are stored as JSON.
	Value string `json:"value"`
}

// Well-known settings slots.
const (
	// SettingSession holds the JSON-encoded StoredSession mirror.
	SettingSession = "session"

	// SettingSigningKey holds the base64 encoding of the token signing key.
	SettingSigningKey = "signing_key"

	// SettingSeeded is set once the initial administrator account has been
	// created, so seeding never repeats.
	SettingSeeded = "seeded"
)

// TableName returns the name of the database table
// associated with the Setting model.
func (s Setting) TableName() string {
	return "settings"
}

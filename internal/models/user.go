package models

// MasterUsername is the single privileged account. Comparison is a
// case-sensitive exact match; "master" and "Master" are different users.
const MasterUsername = "Master"

// DefaultUsers returns the seed credential set used when no user store
// exists yet. Passwords are stored and compared in plaintext, matching the
// persisted format this system inherits.
func DefaultUsers() map[string]string {
	return map[string]string{
		"Arivuselvi":   "arivu123",
		"Venkatesan":   "venkat123",
		"Dhiyanes":     "dhiya123",
		MasterUsername: "Master123",
	}
}

// UserInfo is the management view of a user; passwords never leave the store
// through this type.
type UserInfo struct {
	Username string `json:"username"`
	IsMaster bool   `json:"is_master"`
}

package domain

import "time"

// Activity actions recorded by the audit trail.
const (
	ActivityLogin    = "user.login"
	ActivityRegister = "user.register"
	ActivityRefresh  = "user.refresh"
	ActivityLogout   = "user.logout"
	ActivityCreate   = "user.create"
	ActivityUpdate   = "user.update"
	ActivityDelete   = "user.delete"
)

// ActivityEntry is one audit-trail record. Entries are written
// asynchronously and carry no correctness weight.
type ActivityEntry struct {
	UserID    string
	Action    string
	Detail    string
	IP        string
	CreatedAt time.Time
}

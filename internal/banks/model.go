package banks

import "time"

// Bank is a directory entry for an external bank that deposits come from and
// withdrawals go to.
type Bank struct {
	ID        string
	Name      string
	Code      string
	CreatedAt time.Time
}

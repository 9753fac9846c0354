// File path: internal/sqlite/types.go
package sqlite

// User is an application account row. PasswordHash stays internal to the
// package; API responses marshal the exported fields only.
type User struct {
	ID           int64  `db:"id" json:"id"`
	Email        string `db:"email" json:"email"`
	PasswordHash string `db:"password_hash" json:"-"`
	Name         string `db:"name" json:"name,omitempty"`
	Role         string `db:"role" json:"role"`
	CreatedAt    string `db:"created_at" json:"createdAt"`
	UpdatedAt    string `db:"updated_at" json:"updatedAt"`
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == "admin"
}

// TokenInfo describes a stored CRM token without exposing its value.
type TokenInfo struct {
	TokenName string `db:"token_name" json:"tokenName"`
	TokenType string `db:"token_type" json:"tokenType"`
	CreatedAt string `db:"created_at" json:"createdAt"`
}

// AuditRecord is one entry of a user's audit history.
type AuditRecord struct {
	ID        int64  `db:"id" json:"id"`
	UserID    int64  `db:"user_id" json:"userId"`
	AuditType string `db:"audit_type" json:"auditType"`
	CreatedAt string `db:"created_at" json:"createdAt"`
}

// AdminStats is the aggregate view served to administrators.
type AdminStats struct {
	TotalUsers    int            `json:"totalUsers"`
	TotalAudits   int            `json:"totalAudits"`
	AuditsByType  map[string]int `json:"auditsByType"`
	RecentSignups int            `json:"recentSignups"`
}

package models

// AuditResource names the kind of record an audit entry refers to.
type AuditResource string

const (
	AuditResourceTransaction AuditResource = "transaction"
	AuditResourceCategory    AuditResource = "category"
	AuditResourceBudget      AuditResource = "budget"
)

// AuditAction names a mutation. Values are stable strings stored in
// audit_logs.action.
type AuditAction string

const (
	AuditCreateTransaction AuditAction = "CREATE_TRANSACTION"
	AuditUpdateTransaction AuditAction = "UPDATE_TRANSACTION"
	AuditDeleteTransaction AuditAction = "DELETE_TRANSACTION"
	AuditCreateCategory    AuditAction = "CREATE_CATEGORY"
	AuditUpdateCategory    AuditAction = "UPDATE_CATEGORY"
	AuditDeleteCategory    AuditAction = "DELETE_CATEGORY"
	AuditCreateBudget      AuditAction = "CREATE_BUDGET"
	AuditUpdateBudget      AuditAction = "UPDATE_BUDGET"
	AuditDeleteBudget      AuditAction = "DELETE_BUDGET"
)

// AuditLog records user mutations of transactions, categories and budgets.
type AuditLog struct {
	Base
	UserID       string        `gorm:"type:uuid;not null;index" json:"user_id"`
	Action       AuditAction   `gorm:"not null" json:"action"`
	ResourceType AuditResource `gorm:"not null" json:"resource_type"`
	ResourceID   string        `gorm:"type:uuid" json:"resource_id"`
	IPAddress    string        `json:"ip_address"`
	Changes      string        `json:"changes,omitempty"`
}

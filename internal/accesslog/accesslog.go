package accesslog

import "time"

// Entry is one audited API request. Actor and company are nullable:
// unauthenticated requests and requests that never resolved a company
// are still recorded.
type Entry struct {
	ID          int64     `json:"id" gorm:"primaryKey"`
	UserID      *int64    `json:"user_id,omitempty" gorm:"column:user_id"`
	CompanyCode *int64    `json:"company_code,omitempty" gorm:"column:company_code"`
	Method      string    `json:"method" gorm:"column:method"`
	Path        string    `json:"path" gorm:"column:path"`
	Query       string    `json:"query,omitempty" gorm:"column:query"`
	StatusCode  int       `json:"status_code" gorm:"column:status_code"`
	IPAddress   string    `json:"ip_address" gorm:"column:ip_address"`
	UserAgent   string    `json:"user_agent,omitempty" gorm:"column:user_agent"`
	DurationMs  int64     `json:"duration_ms" gorm:"column:duration_ms"`
	CreatedAt   time.Time `json:"created_at" gorm:"column:created_at"`
}

func (Entry) TableName() string {
	return "access_logs"
}

type RepositoryAPI interface {
	Insert(entry Entry) error
	List(limit, offset int) ([]Entry, int64, error)
}

package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ContextKey string

const (
	RequestIDKey ContextKey = "request_id"
)

// User roles
const (
	RoleCompany    = "company"
	RoleStartup    = "startup"
	RoleAdmin      = "admin"
	RoleSuperAdmin = "superadmin"
)

type AuditAction string

const (
	AuditActionCreate AuditAction = "CREATE"
	AuditActionUpdate AuditAction = "UPDATE"
	AuditActionDelete AuditAction = "DELETE"
	AuditActionLogin  AuditAction = "LOGIN"
	AuditActionSweep  AuditAction = "SWEEP"
)

type Change struct {
	Old interface{} `bson:"old" json:"old"`
	New interface{} `bson:"new" json:"new"`
}

type AuditLog struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Action    AuditAction        `bson:"action" json:"action"`
	Module    string             `bson:"module" json:"module"`                       // The collection name
	RecordID  string             `bson:"record_id" json:"record_id"`                 // The ID of the record being modified
	ActorID   string             `bson:"actor_id" json:"actor_id"`                   // User ID who performed the action
	ActorName string             `bson:"-" json:"actor_name,omitempty"`              // Populated Name of the actor
	Changes   map[string]Change  `bson:"changes,omitempty" json:"changes,omitempty"` // For updates: field -> {old, new}
	Timestamp time.Time          `bson:"timestamp" json:"timestamp"`
}

type User struct {
	ID        primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Email     string              `bson:"email" json:"email"`
	Password  string              `bson:"password" json:"-"`
	Name      string              `bson:"name" json:"name"`
	Phone     string              `bson:"phone,omitempty" json:"phone,omitempty"`
	Role      string              `bson:"role" json:"role"`
	Company   *primitive.ObjectID `bson:"company,omitempty" json:"company,omitempty"`
	Startup   *primitive.ObjectID `bson:"startup,omitempty" json:"startup,omitempty"`
	IsActive  bool                `bson:"isActive" json:"isActive"`
	LastLogin *time.Time          `bson:"lastLogin,omitempty" json:"lastLogin,omitempty"`
	CreatedAt time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time           `bson:"updatedAt" json:"updatedAt"`
}

// IsAdmin reports whether the user may use the admin surface.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin || u.Role == RoleSuperAdmin
}

type Log struct {
	Message      string    `bson:"message" json:"message"`
	Level        string    `bson:"level" json:"level"`
	RequestID    string    `bson:"request_id,omitempty" json:"request_id,omitempty"`
	IpAddress    string    `bson:"ip_address,omitempty" json:"ip_address,omitempty"`
	Caller       string    `bson:"caller,omitempty" json:"caller,omitempty"`
	LogLevelId   int       `bson:"log_level_id" json:"log_level_id"`
	AppId        string    `bson:"app_id" json:"app_id"`
	CreatedOnUtc time.Time `bson:"created_on_utc" json:"created_on_utc"`
}

// Pagination is the page envelope returned by admin list endpoints.
type Pagination struct {
	CurrentPage  int64 `json:"currentPage"`
	TotalPages   int64 `json:"totalPages"`
	TotalItems   int64 `json:"totalItems"`
	ItemsPerPage int64 `json:"itemsPerPage"`
}

func NewPagination(page, limit, total int64) Pagination {
	pages := int64(0)
	if limit > 0 {
		pages = (total + limit - 1) / limit
	}
	return Pagination{CurrentPage: page, TotalPages: pages, TotalItems: total, ItemsPerPage: limit}
}

// PageQuery is the normalized page/limit pair parsed from a request.
type PageQuery struct {
	Page  int64
	Limit int64
}

func (p PageQuery) Skip() int64 {
	return (p.Page - 1) * p.Limit
}

// NewPageQuery clamps raw values to page >= 1 and 1 <= limit <= 100.
func NewPageQuery(page, limit int) PageQuery {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	return PageQuery{Page: int64(page), Limit: int64(limit)}
}

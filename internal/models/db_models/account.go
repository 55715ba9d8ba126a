package db_models

type AccountRole string

const (
	RoleAdmin    AccountRole = "admin"
	RoleSeller   AccountRole = "seller"
	RoleCustomer AccountRole = "customer"
)

type AccountStatus string

const (
	AccountStatusActive    AccountStatus = "active"
	AccountStatusSuspended AccountStatus = "suspended"
)

type Account struct {
	BaseModel
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	FullName     string
	Phone        string
	Role         AccountRole   `gorm:"index;default:customer"`
	Status       AccountStatus `gorm:"default:active"`
}

package entity

import "time"

// ExpenseCategory 支出分类
const (
	ExpenseCategoryFood      = 0
	ExpenseCategoryTransport = 1
	ExpenseCategoryHousing   = 2
	ExpenseCategoryOther     = 3
)

// ExpensePaymentMethod 支付方式
const (
	PaymentMethodCash       = 0
	PaymentMethodCreditCard = 1
	PaymentMethodDebitCard  = 2
	PaymentMethodTransfer   = 3
)

// Expense 支出记录实体
type Expense struct {
	ID          int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	Title       string `json:"title" gorm:"not null;index"`
	Description string `json:"description" gorm:"type:text;default:''"`

	TransactionAt time.Time `json:"transaction_at" gorm:"not null;index"`
	Category      int       `json:"category" gorm:"not null;index"`
	PaymentMethod int       `json:"payment_method" gorm:"not null;index"`
	Amount        float64   `json:"amount" gorm:"not null"`
	Currency      string    `json:"currency" gorm:"type:char(3);not null;default:'USD'"`
	Tags          string    `json:"tags" gorm:"default:''"`
	Location      string    `json:"location" gorm:"default:''"`

	AuditFields
}

// TableName 指定表名
func (Expense) TableName() string {
	return "expenses"
}

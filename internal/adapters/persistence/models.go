package persistence

import (
	"time"
)

// SessionModel represents the sessions table
type SessionModel struct {
	ID               string     `gorm:"column:id;primaryKey"`
	ShipName         string     `gorm:"column:ship_name;not null"`
	StartingCredits  int        `gorm:"column:starting_credits;not null"`
	StartingLocation string     `gorm:"column:starting_location;not null"`
	StartedAt        time.Time  `gorm:"column:started_at;not null"`
	LastActive       *time.Time `gorm:"column:last_active"`
}

func (SessionModel) TableName() string {
	return "sessions"
}

// TransactionModel represents the transactions table
type TransactionModel struct {
	ID              string    `gorm:"column:id;primaryKey"`
	SessionID       string    `gorm:"column:session_id;not null;index:idx_transactions_session_ts,priority:1"`
	Timestamp       time.Time `gorm:"column:timestamp;not null;index:idx_transactions_session_ts,priority:2"`
	TransactionType string    `gorm:"column:transaction_type;not null"`
	Category        string    `gorm:"column:category;not null"`
	Location        string    `gorm:"column:location;not null"`
	GoodID          string    `gorm:"column:good_id"`
	Quantity        int       `gorm:"column:quantity;not null"`
	Amount          int       `gorm:"column:amount;not null"`
	BalanceBefore   int       `gorm:"column:balance_before;not null"`
	BalanceAfter    int       `gorm:"column:balance_after;not null"`
	Sequence        int64     `gorm:"column:sequence;not null"`
}

func (TransactionModel) TableName() string {
	return "transactions"
}

package models

type Customer struct {
	ID           int    `gorm:"primaryKey;autoIncrement" json:"id"`
	FirstName    string `gorm:"column:first_name;type:varchar(50)" json:"fname"`
	LastName     string `gorm:"column:last_name;type:varchar(50)" json:"lname"`
	Username     string `gorm:"type:varchar(50);uniqueIndex;not null" json:"username"`
	PasswordHash string `gorm:"column:pw;type:varchar(255);not null" json:"-"`
}

func (Customer) TableName() string {
	return "customer"
}

// Profile is the public projection of a customer returned by GET /customer.
type Profile struct {
	FirstName string `json:"fname"`
	LastName  string `json:"lname"`
	Username  string `json:"username"`
}

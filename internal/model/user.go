// File: internal/model/user.go
package model

import "time"

// User 帳號資料；Password 只存 bcrypt 雜湊，永不序列化
type User struct {
	ID        string    `db:"id" json:"id"`
	Username  string    `db:"username" json:"username"`
	Email     string    `db:"email" json:"email"`
	Password  string    `db:"password" json:"-"`
	Name      string    `db:"name" json:"name"`
	Phone     *string   `db:"phone" json:"phone"`
	Location  *string   `db:"location" json:"location"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// NewUser 建立使用者所需欄位，Password 必須已經是雜湊
type NewUser struct {
	Username string
	Email    string
	Password string
	Name     string
	Phone    *string
	Location *string
}

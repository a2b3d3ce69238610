package models

import "gorm.io/gorm"

type User struct {
	gorm.Model
	Username  string `json:"username" gorm:"size:150;uniqueIndex"`
	Email     string `json:"email" gorm:"size:255;uniqueIndex"`
	Password  string `json:"-"`
	Role      string `json:"role" gorm:"size:20;default:user"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Address   string `json:"address" gorm:"size:500"`
	Phone     string `json:"phone"`
}

type SignupData struct {
	Username  string `json:"username" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Address   string `json:"address"`
	Phone     string `json:"phone"`
}

type LoginData struct {
	Identifier string `json:"identifier" binding:"required"`
	Password   string `json:"password" binding:"required"`
}

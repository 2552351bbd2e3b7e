package models

import (
	"gorm.io/gorm"

	"golang.org/x/crypto/bcrypt"
)

type Admin struct {
	gorm.Model
	Email    string `json:"email" gorm:"uniqueIndex"`
	Password string `json:"-"`
	Role     string `json:"role" gorm:"default:admin"`
}

func (a *Admin) ComparePassword(candidate string) bool {
	return bcrypt.CompareHashAndPassword([]byte(a.Password), []byte(candidate)) == nil
}

// scripts/create_admin.go
//
// Provisions the portal's admin account. The admin flag lives on the user
// row and is only ever set here, never through the signup endpoint.
package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Bala-Chandrudu/project/config"
	"github.com/Bala-Chandrudu/project/database"
	"github.com/Bala-Chandrudu/project/models"
)

func main() {
	cfg := config.Load()
	database.Connect(cfg)

	reg := os.Getenv("ADMIN_REG")
	if reg == "" {
		reg = "ADMIN001"
	}
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "changeme"
	}
	email := strings.ToLower(reg) + "@temp.com"

	var existing models.User
	err := database.DB.Where("email = ?", email).First(&existing).Error
	switch {
	case err == nil:
		// promote in place
		if existing.Admin {
			fmt.Println("admin user already exists:", reg)
			os.Exit(0)
		}
		if err := database.DB.Model(&existing).Update("admin", true).Error; err != nil {
			log.Fatalf("failed to promote user: %v", err)
		}
		fmt.Println("promoted existing user to admin:", reg)
		os.Exit(0)
	case err != gorm.ErrRecordNotFound:
		log.Fatalf("failed to query users: %v", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	u := models.User{
		Email:              email,
		PasswordHash:       string(hashed),
		Name:               "Administrator",
		RegistrationNumber: reg,
		ParentPhone:        "-",
		Admin:              true,
	}
	if err := database.DB.Create(&u).Error; err != nil {
		log.Fatalf("failed to insert admin: %v", err)
	}

	fmt.Println("admin user created")
	fmt.Println("   registration number:", reg)
	fmt.Println("   password:", password, "(plain, change it after first sign-in)")
}

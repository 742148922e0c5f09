// scripts/seed.go
package main

import (
	"errors"
	"fmt"
	"log"

	"gorm.io/gorm"

	"github.com/zaid9866/employee-management-system/config"
	"github.com/zaid9866/employee-management-system/database"
	"github.com/zaid9866/employee-management-system/models"
)

// Seeds the department and job-role lookup tables so the add-employee form
// has something to offer on a fresh database. Existing rows are left alone.
func main() {
	cfg := config.Load()
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatal(err)
	}

	departments := []string{"Engineering", "Human Resources", "Finance", "Sales"}
	jobRoles := []string{"Manager", "Engineer", "Accountant", "Sales Representative"}

	for _, name := range departments {
		var existing models.Department
		err := db.Where("name = ?", name).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Fatalf("failed to query departments: %v", err)
		}
		if err := db.Create(&models.Department{Name: name}).Error; err != nil {
			log.Fatalf("failed to insert department %q: %v", name, err)
		}
		fmt.Println("created department:", name)
	}

	for _, name := range jobRoles {
		var existing models.JobRole
		err := db.Where("name = ?", name).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Fatalf("failed to query job roles: %v", err)
		}
		if err := db.Create(&models.JobRole{Name: name}).Error; err != nil {
			log.Fatalf("failed to insert job role %q: %v", name, err)
		}
		fmt.Println("created job role:", name)
	}
}

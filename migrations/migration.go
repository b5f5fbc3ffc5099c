package main

import (
	"famlist/infra"
	"famlist/models"
)

func main() {
	infra.Initialize()
	db := infra.SetupDB()

	if err := db.AutoMigrate(&models.User{}, &models.Family{}, &models.Item{}); err != nil {
		panic("Failed to migrate database")
	}
}

package initializers

import "github.com/te6695/LibraryWebAPI/internals/models"

func SyncDatabase() {
	DB.AutoMigrate(&models.User{})
	DB.AutoMigrate(&models.Book{})
	DB.AutoMigrate(&models.Borrower{})
	DB.AutoMigrate(&models.Loan{})
}

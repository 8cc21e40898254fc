package main

import (
	"net/http"
	"os"

	"github.com/te6695/LibraryWebAPI/initializers"
	"github.com/te6695/LibraryWebAPI/internals/controllers"
	"github.com/te6695/LibraryWebAPI/internals/middleware"
	"github.com/te6695/LibraryWebAPI/internals/models"
	"github.com/te6695/LibraryWebAPI/internals/repository"
	"github.com/te6695/LibraryWebAPI/internals/service"
	logger "github.com/te6695/LibraryWebAPI/loggers"

	"github.com/gin-gonic/gin"
)

func init() {
	initializers.LoadEnvVariables()
	logger.Init()
	initializers.ConnectDatabase()
	initializers.ConnectRedis()
}

func main() {
	logger.Logger.Info("welcome to library management")

	initializers.SyncDatabase()

	secret := []byte(os.Getenv("ACCESS_SECRET"))
	if len(secret) == 0 {
		logger.Logger.Fatal("ACCESS_SECRET is not set")
	}

	var sessions service.SessionStore
	if initializers.Client != nil {
		sessions = service.NewRedisSessionStore(initializers.Client)
	}

	bookRepo := repository.NewBookRepository(initializers.DB)
	borrowerRepo := repository.NewBorrowerRepository(initializers.DB)
	loanRepo := repository.NewLoanRepository(initializers.DB)
	userRepo := repository.NewUserRepository(initializers.DB)

	authController := controllers.NewAuthController(service.NewAuthService(userRepo, sessions, secret))
	booksController := controllers.NewBooksController(service.NewBookService(bookRepo, loanRepo))
	borrowersController := controllers.NewBorrowersController(service.NewBorrowerService(borrowerRepo, loanRepo))
	loansController := controllers.NewLoansController(service.NewLoanService(loanRepo, borrowerRepo))

	r := gin.Default()
	r.GET("/", hello)

	auth := r.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		auth.POST("/logout", middleware.RequireAuth(secret, sessions), authController.Logout)
	}

	requireAuth := middleware.RequireAuth(secret, sessions)
	requireAdmin := middleware.RequireRole(models.RoleAdmin)

	books := r.Group("/books", requireAuth)
	{
		books.GET("", booksController.GetAll)
		books.GET("/:id", booksController.GetById)
		books.POST("", requireAdmin, booksController.Add)
		books.PUT("/:id", requireAdmin, booksController.Update)
		books.DELETE("/:id", requireAdmin, booksController.Delete)
	}

	borrowers := r.Group("/borrowers", requireAuth)
	{
		borrowers.GET("", borrowersController.GetAll)
		borrowers.GET("/:id", borrowersController.GetById)
		borrowers.POST("", requireAdmin, borrowersController.Add)
		borrowers.PUT("/:id", requireAdmin, borrowersController.Update)
		borrowers.DELETE("/:id", requireAdmin, borrowersController.Delete)
	}

	// loan issue/return stay open to any authenticated role
	loans := r.Group("/loans", requireAuth)
	{
		loans.POST("/issue", loansController.Issue)
		loans.POST("/returns", loansController.Return)
		loans.GET("/overdue", loansController.GetOverdue)
		loans.GET("/:id", loansController.GetById)
	}

	r.Run()
}

func hello(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "welcome to library management",
	})
}

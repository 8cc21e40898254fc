package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/te6695/LibraryWebAPI/internals/middleware"
	"github.com/te6695/LibraryWebAPI/internals/models"
	"github.com/te6695/LibraryWebAPI/internals/repository"
	"github.com/te6695/LibraryWebAPI/internals/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var (
	testSecret    = []byte("controllers-test-secret")
	testDBCounter atomic.Int64
)

type testAPI struct {
	router *gin.Engine
	db     *gorm.DB
	auth   *service.AuthService
}

// newTestAPI assembles the same wiring main does, against an in-memory
// sqlite database and without a session store.
func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:controllers_test_%d?mode=memory&cache=shared&_busy_timeout=10000", testDBCounter.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Book{}, &models.Borrower{}, &models.Loan{}))

	bookRepo := repository.NewBookRepository(db)
	borrowerRepo := repository.NewBorrowerRepository(db)
	loanRepo := repository.NewLoanRepository(db)
	userRepo := repository.NewUserRepository(db)

	authSvc := service.NewAuthService(userRepo, nil, testSecret)
	authController := NewAuthController(authSvc)
	booksController := NewBooksController(service.NewBookService(bookRepo, loanRepo))
	borrowersController := NewBorrowersController(service.NewBorrowerService(borrowerRepo, loanRepo))
	loansController := NewLoansController(service.NewLoanService(loanRepo, borrowerRepo))

	r := gin.New()
	auth := r.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		auth.POST("/logout", middleware.RequireAuth(testSecret, nil), authController.Logout)
	}

	requireAuth := middleware.RequireAuth(testSecret, nil)
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

	loans := r.Group("/loans", requireAuth)
	{
		loans.POST("/issue", loansController.Issue)
		loans.POST("/returns", loansController.Return)
		loans.GET("/overdue", loansController.GetOverdue)
		loans.GET("/:id", loansController.GetById)
	}

	return &testAPI{router: r, db: db, auth: authSvc}
}

func (api *testAPI) request(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	api.router.ServeHTTP(w, req)
	return w
}

// registerAndLogin creates a user, optionally promotes it, and returns a
// bearer token.
func (api *testAPI) registerAndLogin(t *testing.T, username, role string) string {
	t.Helper()
	w := api.request(t, http.MethodPost, "/auth/register", "", gin.H{"username": username, "password": "password123"})
	require.Equal(t, http.StatusOK, w.Code)
	if role != models.RoleUser {
		require.NoError(t, api.db.Model(&models.User{}).Where("username = ?", username).
			UpdateColumn("role", role).Error)
	}
	w = api.request(t, http.MethodPost, "/auth/login", "", gin.H{"username": username, "password": "password123"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, role, resp.Role)
	return resp.Token
}

func (api *testAPI) seedBook(t *testing.T, copies int) *models.Book {
	t.Helper()
	book := models.Book{
		Title:           "Clean Architecture",
		Author:          "Robert C. Martin",
		IsBn:            fmt.Sprintf("978-01344944%02d", testDBCounter.Add(1)%100),
		TotalCopies:     copies,
		AvailableCopies: copies,
	}
	require.NoError(t, api.db.Create(&book).Error)
	return &book
}

func (api *testAPI) seedBorrower(t *testing.T) *models.Borrower {
	t.Helper()
	borrower := models.Borrower{
		Name:  "Grace Hopper",
		Email: fmt.Sprintf("grace%d@example.com", testDBCounter.Add(1)),
	}
	require.NoError(t, api.db.Create(&borrower).Error)
	return &borrower
}

func TestBooksRequireAuthentication(t *testing.T) {
	api := newTestAPI(t)
	w := api.request(t, http.MethodGet, "/books", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestBookMutationsAreAdminGated(t *testing.T) {
	api := newTestAPI(t)
	userToken := api.registerAndLogin(t, "plainuser", models.RoleUser)
	book := api.seedBook(t, 1)

	// existing resource: Forbidden, not NotFound
	w := api.request(t, http.MethodDelete, fmt.Sprintf("/books/%d", book.Id), userToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// missing resource: still Forbidden, no existence leak
	w = api.request(t, http.MethodDelete, "/books/99999", userToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = api.request(t, http.MethodPost, "/books", userToken, gin.H{
		"title": "T", "author": "A", "isbn": "1234567890", "totalCopies": 1,
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	// reads are open to any authenticated role
	w = api.request(t, http.MethodGet, fmt.Sprintf("/books/%d", book.Id), userToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAdminBookLifecycle(t *testing.T) {
	api := newTestAPI(t)
	adminToken := api.registerAndLogin(t, "admin", models.RoleAdmin)

	w := api.request(t, http.MethodPost, "/books", adminToken, gin.H{
		"title": "The Mythical Man-Month", "author": "Fred Brooks", "isbn": "978-0201835953", "totalCopies": 3,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var created BookResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, 3, created.TotalCopies)
	assert.Equal(t, 3, created.AvailableCopies)

	w = api.request(t, http.MethodPut, fmt.Sprintf("/books/%d", created.Id), adminToken, gin.H{"totalCopies": 5})
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = api.request(t, http.MethodGet, fmt.Sprintf("/books/%d", created.Id), adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var updated BookResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, 5, updated.TotalCopies)
	assert.Equal(t, 5, updated.AvailableCopies)

	w = api.request(t, http.MethodDelete, fmt.Sprintf("/books/%d", created.Id), adminToken, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = api.request(t, http.MethodGet, fmt.Sprintf("/books/%d", created.Id), adminToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestIssueAndReturnLoanOverHTTP(t *testing.T) {
	api := newTestAPI(t)
	token := api.registerAndLogin(t, "borrowing-user", models.RoleUser)
	book := api.seedBook(t, 1)
	borrower := api.seedBorrower(t)

	w := api.request(t, http.MethodPost, "/loans/issue", token, gin.H{
		"bookId": book.Id, "borrowerId": borrower.Id, "loanDurationDays": 14,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var loan LoanResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &loan))
	assert.Equal(t, book.Title, loan.BookTitle)
	assert.Equal(t, borrower.Name, loan.BorrowerName)
	assert.Nil(t, loan.ReturnDate)
	assert.False(t, loan.IsOverdue)

	// last copy is out: the next issue conflicts
	w = api.request(t, http.MethodPost, "/loans/issue", token, gin.H{
		"bookId": book.Id, "borrowerId": borrower.Id, "loanDurationDays": 14,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// the book cannot be deleted while the loan is active
	adminToken := api.registerAndLogin(t, "loan-admin", models.RoleAdmin)
	w = api.request(t, http.MethodDelete, fmt.Sprintf("/books/%d", book.Id), adminToken, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = api.request(t, http.MethodDelete, fmt.Sprintf("/borrowers/%d", borrower.Id), adminToken, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = api.request(t, http.MethodPost, "/loans/returns", token, gin.H{"loanId": loan.Id})
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = api.request(t, http.MethodPost, "/loans/returns", token, gin.H{"loanId": loan.Id})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = api.request(t, http.MethodDelete, fmt.Sprintf("/books/%d", book.Id), adminToken, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestIssueLoanValidation(t *testing.T) {
	api := newTestAPI(t)
	token := api.registerAndLogin(t, "validating-user", models.RoleUser)
	borrower := api.seedBorrower(t)

	w := api.request(t, http.MethodPost, "/loans/issue", token, gin.H{
		"bookId": 99999, "borrowerId": borrower.Id, "loanDurationDays": 14,
	})
	assert.Equal(t, http.StatusNotFound, w.Code)

	book := api.seedBook(t, 1)
	w = api.request(t, http.MethodPost, "/loans/issue", token, gin.H{
		"bookId": book.Id, "borrowerId": borrower.Id, "loanDurationDays": 400,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoginFailureIsGeneric(t *testing.T) {
	api := newTestAPI(t)
	api.registerAndLogin(t, "eve", models.RoleUser)

	wrongPassword := api.request(t, http.MethodPost, "/auth/login", "", gin.H{"username": "eve", "password": "wrong"})
	unknownUser := api.request(t, http.MethodPost, "/auth/login", "", gin.H{"username": "mallory", "password": "password123"})

	assert.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	assert.Equal(t, http.StatusUnauthorized, unknownUser.Code)
	assert.Equal(t, wrongPassword.Body.String(), unknownUser.Body.String())
}

func TestRegisterDuplicateUsername(t *testing.T) {
	api := newTestAPI(t)
	w := api.request(t, http.MethodPost, "/auth/register", "", gin.H{"username": "frank", "password": "password123"})
	require.Equal(t, http.StatusOK, w.Code)

	w = api.request(t, http.MethodPost, "/auth/register", "", gin.H{"username": "frank", "password": "password456"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOverdueEndpoint(t *testing.T) {
	api := newTestAPI(t)
	token := api.registerAndLogin(t, "overdue-user", models.RoleUser)
	book := api.seedBook(t, 1)
	borrower := api.seedBorrower(t)

	w := api.request(t, http.MethodPost, "/loans/issue", token, gin.H{
		"bookId": book.Id, "borrowerId": borrower.Id, "loanDurationDays": 7,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var loan LoanResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &loan))

	// nothing overdue yet
	w = api.request(t, http.MethodGet, "/loans/overdue", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var overdue []LoanResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &overdue))
	assert.Empty(t, overdue)

	// push the due date into the past
	require.NoError(t, api.db.Model(&models.Loan{}).Where("id = ?", loan.Id).
		UpdateColumn("due_date", time.Now().UTC().AddDate(0, 0, -1)).Error)

	w = api.request(t, http.MethodGet, "/loans/overdue", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &overdue))
	require.Len(t, overdue, 1)
	assert.Equal(t, loan.Id, overdue[0].Id)
	assert.True(t, overdue[0].IsOverdue)
}

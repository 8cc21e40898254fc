package controllers

import (
	"net/http"
	"strconv"

	"github.com/te6695/LibraryWebAPI/internals/service"

	"github.com/gin-gonic/gin"
)

type CreateBookRequest struct {
	Title       string `json:"title" binding:"required,max=200"`
	Author      string `json:"author" binding:"required,max=100"`
	ISBN        string `json:"isbn" binding:"required,min=10,max=17"`
	TotalCopies int    `json:"totalCopies" binding:"gte=0"`
}

type UpdateBookRequest struct {
	Title       string `json:"title" binding:"omitempty,max=200"`
	Author      string `json:"author" binding:"omitempty,max=100"`
	ISBN        string `json:"isbn" binding:"omitempty,min=10,max=17"`
	TotalCopies *int   `json:"totalCopies" binding:"omitempty,gte=0"`
}

type BooksController struct {
	books *service.BookService
}

func NewBooksController(books *service.BookService) *BooksController {
	return &BooksController{books: books}
}

func (ctrl *BooksController) GetAll(c *gin.Context) {
	books, err := ctrl.books.GetAllBooks(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	response := make([]*BookResponse, 0, len(books))
	for i := range books {
		response = append(response, convertBookModelToResponse(&books[i]))
	}
	c.JSON(http.StatusOK, response)
}

func (ctrl *BooksController) GetById(c *gin.Context) {
	id, ok := parseIdParam(c)
	if !ok {
		return
	}
	book, err := ctrl.books.GetBook(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, convertBookModelToResponse(book))
}

func (ctrl *BooksController) Add(c *gin.Context) {
	var req CreateBookRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request format"})
		return
	}

	book, err := ctrl.books.AddBook(c.Request.Context(), service.CreateBookInput{
		Title:       req.Title,
		Author:      req.Author,
		IsBn:        req.ISBN,
		TotalCopies: req.TotalCopies,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, convertBookModelToResponse(book))
}

func (ctrl *BooksController) Update(c *gin.Context) {
	id, ok := parseIdParam(c)
	if !ok {
		return
	}
	var req UpdateBookRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request format"})
		return
	}

	err := ctrl.books.UpdateBook(c.Request.Context(), id, service.UpdateBookInput{
		Title:       req.Title,
		Author:      req.Author,
		IsBn:        req.ISBN,
		TotalCopies: req.TotalCopies,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (ctrl *BooksController) Delete(c *gin.Context) {
	id, ok := parseIdParam(c)
	if !ok {
		return
	}
	if err := ctrl.books.DeleteBook(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func parseIdParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return uint(id), true
}

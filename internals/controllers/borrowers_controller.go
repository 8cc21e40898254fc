package controllers

import (
	"net/http"

	"github.com/te6695/LibraryWebAPI/internals/service"

	"github.com/gin-gonic/gin"
)

type CreateBorrowerRequest struct {
	Name        string `json:"name" binding:"required,max=255"`
	Email       string `json:"email" binding:"required,email"`
	PhoneNumber string `json:"phoneNumber" binding:"omitempty,max=30"`
}

type UpdateBorrowerRequest struct {
	Name        string `json:"name" binding:"omitempty,max=255"`
	Email       string `json:"email" binding:"omitempty,email"`
	PhoneNumber string `json:"phoneNumber" binding:"omitempty,max=30"`
}

type BorrowersController struct {
	borrowers *service.BorrowerService
}

func NewBorrowersController(borrowers *service.BorrowerService) *BorrowersController {
	return &BorrowersController{borrowers: borrowers}
}

func (ctrl *BorrowersController) GetAll(c *gin.Context) {
	borrowers, err := ctrl.borrowers.GetAllBorrowers(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	response := make([]*BorrowerResponse, 0, len(borrowers))
	for i := range borrowers {
		response = append(response, convertBorrowerModelToResponse(&borrowers[i]))
	}
	c.JSON(http.StatusOK, response)
}

func (ctrl *BorrowersController) GetById(c *gin.Context) {
	id, ok := parseIdParam(c)
	if !ok {
		return
	}
	borrower, err := ctrl.borrowers.GetBorrower(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, convertBorrowerModelToResponse(borrower))
}

func (ctrl *BorrowersController) Add(c *gin.Context) {
	var req CreateBorrowerRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request format"})
		return
	}

	borrower, err := ctrl.borrowers.AddBorrower(c.Request.Context(), service.CreateBorrowerInput{
		Name:        req.Name,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, convertBorrowerModelToResponse(borrower))
}

func (ctrl *BorrowersController) Update(c *gin.Context) {
	id, ok := parseIdParam(c)
	if !ok {
		return
	}
	var req UpdateBorrowerRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request format"})
		return
	}

	err := ctrl.borrowers.UpdateBorrower(c.Request.Context(), id, service.UpdateBorrowerInput{
		Name:        req.Name,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (ctrl *BorrowersController) Delete(c *gin.Context) {
	id, ok := parseIdParam(c)
	if !ok {
		return
	}
	if err := ctrl.borrowers.DeleteBorrower(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

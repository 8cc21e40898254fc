package controllers

import (
	"net/http"

	"github.com/te6695/LibraryWebAPI/internals/service"

	"github.com/gin-gonic/gin"
)

type IssueLoanRequest struct {
	BookId           uint `json:"bookId" binding:"required"`
	BorrowerId       uint `json:"borrowerId" binding:"required"`
	LoanDurationDays int  `json:"loanDurationDays" binding:"required"`
}

type ReturnLoanRequest struct {
	LoanId uint `json:"loanId" binding:"required"`
}

type LoansController struct {
	loans *service.LoanService
}

func NewLoansController(loans *service.LoanService) *LoansController {
	return &LoansController{loans: loans}
}

func (ctrl *LoansController) Issue(c *gin.Context) {
	var req IssueLoanRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request format"})
		return
	}

	loan, err := ctrl.loans.IssueLoan(c.Request.Context(), req.BookId, req.BorrowerId, req.LoanDurationDays)
	if err != nil {
		writeError(c, err)
		return
	}

	details, err := ctrl.loans.GetLoan(c.Request.Context(), loan.Id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, convertLoanDetailsToResponse(details))
}

func (ctrl *LoansController) Return(c *gin.Context) {
	var req ReturnLoanRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request format"})
		return
	}

	if err := ctrl.loans.ReturnLoan(c.Request.Context(), req.LoanId); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (ctrl *LoansController) GetById(c *gin.Context) {
	id, ok := parseIdParam(c)
	if !ok {
		return
	}
	details, err := ctrl.loans.GetLoan(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, convertLoanDetailsToResponse(details))
}

func (ctrl *LoansController) GetOverdue(c *gin.Context) {
	overdue, err := ctrl.loans.GetOverdueLoans(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	response := make([]*LoanResponse, 0, len(overdue))
	for i := range overdue {
		response = append(response, convertLoanDetailsToResponse(&overdue[i]))
	}
	c.JSON(http.StatusOK, response)
}

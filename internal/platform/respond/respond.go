// Package respond renders the platform's response envelope. Every endpoint
// returns {success, message?, result?, pagination?} so clients can treat all
// responses uniformly.
package respond

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Paginated describes one page of a list result.
type Paginated struct {
	Count      int64 `json:"count"`
	PageSize   int32 `json:"pageSize"`
	TotalPages int32 `json:"totalPages"`
	Current    int32 `json:"current"`
}

// Envelope is the uniform response body.
type Envelope struct {
	Success    bool       `json:"success"`
	Message    string     `json:"message,omitempty"`
	Result     any        `json:"result,omitempty"`
	Pagination *Paginated `json:"pagination,omitempty"`
}

// NewPaginated computes pagination metadata for a page of a list of count items.
func NewPaginated(count int64, pageSize, current int32) *Paginated {
	if pageSize < 1 {
		pageSize = 1
	}
	totalPages := int32((count + int64(pageSize) - 1) / int64(pageSize))
	return &Paginated{
		Count:      count,
		PageSize:   pageSize,
		TotalPages: totalPages,
		Current:    current,
	}
}

// OK writes a 200 envelope with the given result.
func OK(c *gin.Context, result any) {
	c.JSON(http.StatusOK, Envelope{Success: true, Result: result})
}

// Created writes a 201 envelope with the given result.
func Created(c *gin.Context, result any) {
	c.JSON(http.StatusCreated, Envelope{Success: true, Result: result})
}

// Message writes a 200 envelope with a message and no result.
func Message(c *gin.Context, message string) {
	c.JSON(http.StatusOK, Envelope{Success: true, Message: message})
}

// Page writes a 200 envelope with a result list and pagination metadata.
func Page(c *gin.Context, result any, p *Paginated) {
	c.JSON(http.StatusOK, Envelope{Success: true, Result: result, Pagination: p})
}

// Error writes a failure envelope with the given status and message.
func Error(c *gin.Context, status int, message string) {
	c.JSON(status, Envelope{Success: false, Message: message})
}

// AbortError writes a failure envelope and aborts the handler chain.
func AbortError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, Envelope{Success: false, Message: message})
}

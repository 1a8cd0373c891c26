package util

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Every endpoint wraps its payload in the same envelope:
// {success, data?, message?, error?/errors?}.

// Success writes a 200 response with data.
func Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    data,
	})
}

// SuccessMsg writes a 200 response with data and a human-readable message.
func SuccessMsg(c *gin.Context, message string, data any) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": message,
		"data":    data,
	})
}

// Created writes a 201 response for newly created resources.
func Created(c *gin.Context, message string, data any) {
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": message,
		"data":    data,
	})
}

// Fail writes an error response with only a generic message.
func Fail(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"message": message,
	})
}

// FailErr writes an error response, attaching the underlying error detail
// only outside release mode so internals never leak in production.
func FailErr(c *gin.Context, status int, message string, err error) {
	body := gin.H{
		"success": false,
		"message": message,
	}
	if err != nil && gin.Mode() != gin.ReleaseMode {
		body["error"] = err.Error()
	}
	c.JSON(status, body)
}

// FailFields writes a 400 response carrying per-field validation messages.
func FailFields(c *gin.Context, message string, fields []string) {
	c.JSON(http.StatusBadRequest, gin.H{
		"success": false,
		"message": message,
		"errors":  fields,
	})
}

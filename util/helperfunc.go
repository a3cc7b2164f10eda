package util

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/glucotrack/glucotrack-api/apperr"
)

type APIResponse struct {
	Success bool        `json:"success"`
	Error   string      `json:"error"`
	Msg     string      `json:"msg"`
	Data    interface{} `json:"data"`
}

type APIErrorParams struct {
	Msg string
	Err error
}

type APISuccessParams struct {
	Msg  string
	Data interface{}
}

func errorResponse(params APIErrorParams) APIResponse {
	errText := ""
	if params.Err != nil {
		errText = params.Err.Error()
	}
	return APIResponse{
		Success: false,
		Error:   errText,
		Msg:     params.Msg,
		Data:    map[string]interface{}{},
	}
}

// CallErrorNotFound is for return API response not found
func CallErrorNotFound(c *gin.Context, params APIErrorParams) {
	c.JSON(http.StatusNotFound, errorResponse(params))
}

// CallUserError is for return error from user side
func CallUserError(c *gin.Context, params APIErrorParams) {
	c.JSON(http.StatusBadRequest, errorResponse(params))
}

// CallConflict is for return API response when the request clashes with the current state
func CallConflict(c *gin.Context, params APIErrorParams) {
	c.JSON(http.StatusConflict, errorResponse(params))
}

// CallUnprocessable is for return API response when a valid request cannot be carried out
func CallUnprocessable(c *gin.Context, params APIErrorParams) {
	c.JSON(http.StatusUnprocessableEntity, errorResponse(params))
}

// CallTooManyRequests is for return API response when a client is rate limited
func CallTooManyRequests(c *gin.Context, params APIErrorParams) {
	c.JSON(http.StatusTooManyRequests, errorResponse(params))
}

// CallServerError is for return API response server error
func CallServerError(c *gin.Context, params APIErrorParams) {
	c.JSON(http.StatusInternalServerError, errorResponse(params))
}

// CallError picks the response from the status carried by params.Err.
// Errors that do not wrap an apperr.HttpError are answered with 500.
func CallError(c *gin.Context, params APIErrorParams) {
	var httpErr apperr.HttpError
	if !errors.As(params.Err, &httpErr) {
		CallServerError(c, params)
		return
	}
	switch httpErr.Code {
	case http.StatusNotFound:
		CallErrorNotFound(c, params)
	case http.StatusBadRequest:
		CallUserError(c, params)
	case http.StatusConflict:
		CallConflict(c, params)
	case http.StatusUnprocessableEntity:
		CallUnprocessable(c, params)
	default:
		c.JSON(httpErr.Code, errorResponse(params))
	}
}

// CallSuccessOK is for return API response with status code 200, you need to specify msg, and data as function parameter
func CallSuccessOK(c *gin.Context, params APISuccessParams) {
	response := APIResponse{
		Success: true,
		Error:   "",
		Msg:     params.Msg,
		Data:    params.Data,
	}
	c.JSON(http.StatusOK, response)
}

// CallCreated is for return API response with status code 201
func CallCreated(c *gin.Context, params APISuccessParams) {
	response := APIResponse{
		Success: true,
		Msg:     params.Msg,
		Data:    params.Data,
	}
	c.JSON(http.StatusCreated, response)
}

// NormalizeText trims surrounding whitespace and collapses internal runs of
// whitespace into single spaces. Free text such as symptom descriptions is
// stored normalized.
func NormalizeText(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Json is the standard success envelope.
type Json struct {
	Code int         `json:"code"`
	Msg  string      `json:"msg"`
	Data interface{} `json:"data"`
}

// CustomError is the standard error envelope.
type CustomError struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
	Err  string `json:"error"`
}

var errorCodeTextMap = map[int]string{
	400: "Bad Request",
	404: "Not Found",
	409: "Conflict",
	500: "Internal Server Error",
	502: "Bad Gateway",
}

// JsonSuccess writes the standard success envelope.
func JsonSuccess(ctx *gin.Context, data interface{}) {
	ctx.JSON(http.StatusOK, Json{
		Code: 200,
		Msg:  "success",
		Data: data,
	})
}

// HandleError writes the standard error envelope.
func HandleError(ctx *gin.Context, code int, err error) {
	ctx.JSON(code, CustomError{
		Code: code,
		Msg:  errorCodeTextMap[code],
		Err:  err.Error(),
	})
	ctx.Abort()
}

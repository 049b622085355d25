package response

import "net/http"

// 错误码直接使用 HTTP 状态码
const (
	CodeBadRequest      = http.StatusBadRequest
	CodeUnauthorized    = http.StatusUnauthorized
	CodeForbidden       = http.StatusForbidden
	CodeNotFound        = http.StatusNotFound
	CodeConflict        = http.StatusConflict
	CodeTooManyRequests = http.StatusTooManyRequests
	CodeInternal        = http.StatusInternalServerError
)

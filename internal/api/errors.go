package api

import "fmt"

const genericFailure = "request failed"

// Error 后端返回的非 2xx 响应
type Error struct {
	Message string
	Status  int
	Payload any
}

func (e *Error) Error() string {
	return fmt.Sprintf("api error (status %d): %s", e.Status, e.Message)
}

// StatusCode 供查询层区分「后端明确拒绝」和「传输失败」：
// 前者不重试，后者重试一次。
func (e *Error) StatusCode() int { return e.Status }

package validate

import (
	"fmt"
	"sort"
	"strings"
)

// Error 表单校验失败。字段名 -> 错误信息，在任何网络调用之前返回。
type Error struct {
	Fields map[string]string
}

func (e *Error) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s: %s", name, e.Fields[name]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Checker 聚合一组字段检查，零失败时 Err() 返回 nil
type Checker struct {
	fields map[string]string
}

func New() *Checker {
	return &Checker{fields: make(map[string]string)}
}

func (c *Checker) Required(name, value string) *Checker {
	if strings.TrimSpace(value) == "" {
		c.fields[name] = "is required"
	}
	return c
}

func (c *Checker) Email(name, value string) *Checker {
	if !strings.Contains(value, "@") || strings.HasPrefix(value, "@") || strings.HasSuffix(value, "@") {
		c.fields[name] = "is not a valid email"
	}
	return c
}

func (c *Checker) MinLen(name, value string, min int) *Checker {
	if len(value) < min {
		c.fields[name] = fmt.Sprintf("must be at least %d characters", min)
	}
	return c
}

func (c *Checker) Positive(name string, value float64) *Checker {
	if value <= 0 {
		c.fields[name] = "must be positive"
	}
	return c
}

func (c *Checker) OneOf(name, value string, allowed ...string) *Checker {
	for _, a := range allowed {
		if value == a {
			return c
		}
	}
	c.fields[name] = "must be one of " + strings.Join(allowed, ", ")
	return c
}

func (c *Checker) Err() error {
	if len(c.fields) == 0 {
		return nil
	}
	return &Error{Fields: c.fields}
}

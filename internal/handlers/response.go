package handlers

import (
	"strconv"
	"strings"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

func NewPagination(page, limit int, total int64) Pagination {
	return Pagination{
		Page:  page,
		Limit: limit,
		Total: total,
		Pages: int((total + int64(limit) - 1) / int64(limit)),
	}
}

// ListParams is embedded by the list inputs of searchable entities.
type ListParams struct {
	Page   int    `query:"page" minimum:"1" doc:"Page number, defaults to 1"`
	Limit  int    `query:"limit" minimum:"1" maximum:"100" doc:"Items per page, defaults to 10"`
	Search string `query:"search" doc:"Case-insensitive substring match"`
}

// normalize applies the defaults here rather than via schema tags so the
// handlers behave the same when called directly (as the tests do).
func (p *ListParams) normalize() {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.Limit < 1 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
}

func (p ListParams) offset() int {
	return (p.Page - 1) * p.Limit
}

func searchPattern(search string) string {
	return "%" + strings.ToLower(search) + "%"
}

// parseID mirrors the store's treatment of malformed identifiers: a bad id
// is indistinguishable from a missing record, so callers answer 404.
func parseID(s string) (uint, bool) {
	id, err := strconv.ParseUint(s, 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

type ListOutput[T any] struct {
	Body struct {
		Success    bool       `json:"success"`
		Data       []T        `json:"data"`
		Pagination Pagination `json:"pagination"`
	}
}

func NewListOutput[T any](items []T, pagination Pagination) *ListOutput[T] {
	if items == nil {
		items = []T{}
	}
	out := &ListOutput[T]{}
	out.Body.Success = true
	out.Body.Data = items
	out.Body.Pagination = pagination
	return out
}

type ItemOutput[T any] struct {
	Body struct {
		Success bool `json:"success"`
		Data    T    `json:"data"`
	}
}

func NewItemOutput[T any](item T) *ItemOutput[T] {
	out := &ItemOutput[T]{}
	out.Body.Success = true
	out.Body.Data = item
	return out
}

type MessageOutput struct {
	Body struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
}

func NewMessageOutput(message string) *MessageOutput {
	out := &MessageOutput{}
	out.Body.Success = true
	out.Body.Message = message
	return out
}

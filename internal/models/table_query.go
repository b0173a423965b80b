package models

import (
	"errors"
	"fmt"
)

const (
	// MaxQueryWindow caps how many rows a single page request may span.
	MaxQueryWindow = 500

	FilterTypeText         = "text"
	FilterTypeDate         = "date"
	FilterTypeAutocomplete = "autocomplete"

	FilterOpContains = "contains"
	FilterOpEquals   = "equals"

	SortAscending  = "asc"
	SortDescending = "desc"
)

// TableFilter is one column's filter as the datatable endpoints receive it.
type TableFilter struct {
	Filter     string `json:"filter"`
	FilterType string `json:"filterType"`
	Type       string `json:"type"`
}

// TableSort is one sort model entry. Endpoints accept at most one.
type TableSort struct {
	ColID string `json:"colId"`
	Sort  string `json:"sort"`
}

// TableQuery is the request body of the datatable query endpoints: a row
// window, per-column filters, and an optional sort.
type TableQuery struct {
	StartRow    int                    `json:"startRow"`
	EndRow      int                    `json:"endRow"`
	FilterModel map[string]TableFilter `json:"filterModel"`
	SortModel   []TableSort            `json:"sortModel"`
}

// Validate checks window sanity and filter/sort vocabulary. Column names are
// checked later against each endpoint's own whitelist.
func (q *TableQuery) Validate() error {
	if q.StartRow < 0 {
		return errors.New("startRow must not be negative")
	}

	if q.EndRow <= q.StartRow {
		return errors.New("endRow must be greater than startRow")
	}

	if q.EndRow-q.StartRow > MaxQueryWindow {
		return fmt.Errorf("page window exceeds %d rows", MaxQueryWindow)
	}

	for column, filter := range q.FilterModel {
		if column == "" {
			return errors.New("filter column must not be empty")
		}
		if filter.Filter == "" {
			return fmt.Errorf("filter for column %q has no value", column)
		}
		switch filter.Type {
		case FilterOpContains, FilterOpEquals:
		default:
			return fmt.Errorf("unsupported filter operator %q for column %q", filter.Type, column)
		}
	}

	if len(q.SortModel) > 1 {
		return errors.New("sortModel accepts at most one entry")
	}

	for _, sort := range q.SortModel {
		if sort.ColID == "" {
			return errors.New("sort column must not be empty")
		}
		switch sort.Sort {
		case SortAscending, SortDescending:
		default:
			return fmt.Errorf("unsupported sort direction %q", sort.Sort)
		}
	}

	return nil
}

// Limit returns the number of rows the window spans.
func (q *TableQuery) Limit() int {
	return q.EndRow - q.StartRow
}

// Offset returns the first row index of the window.
func (q *TableQuery) Offset() int {
	return q.StartRow
}

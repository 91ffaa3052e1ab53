//-------------------------------------------------------------------------
//
// posmart - Point-of-Sale Analytics Mart
//
// Copyright (c) 2025 - 2026, Beanlake Labs
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package mart

import (
	"fmt"
	"strings"
)

// ParseError reports a single field that could not be coerced to its target
// type during cleaning. Row-level parse failures are recoverable: the caller
// decides whether to reject the row or abort the pipeline.
type ParseError struct {
	Line   int
	Field  string
	Value  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: field %s: cannot parse %q: %s",
		e.Line, e.Field, e.Value, e.Reason)
}

// DimensionViolation is one key that maps to more than one distinct
// descriptive tuple.
type DimensionViolation struct {
	Key    int
	Tuples []string
}

// DimensionIntegrityError reports functional-dependency violations found
// while building a dimension. It is fatal to dimension construction and
// names every offending key.
type DimensionIntegrityError struct {
	Dimension  string
	Violations []DimensionViolation
}

func (e *DimensionIntegrityError) Error() string {
	parts := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		parts[i] = fmt.Sprintf("%d -> {%s}", v.Key, strings.Join(v.Tuples, "; "))
	}
	return fmt.Sprintf("%s dimension: %d key(s) map to multiple descriptive tuples: %s",
		e.Dimension, len(e.Violations), strings.Join(parts, ", "))
}

// UniquenessError reports duplicate primary keys in the fact set input.
type UniquenessError struct {
	Column string
	Keys   []int64
}

func (e *UniquenessError) Error() string {
	return fmt.Sprintf("duplicate %s values: %v", e.Column, e.Keys)
}

// ReferentialIntegrityError reports fact rows whose foreign keys do not
// exist in the corresponding dimension.
type ReferentialIntegrityError struct {
	Dimension string
	Column    string
	Keys      []int
}

func (e *ReferentialIntegrityError) Error() string {
	return fmt.Sprintf("%s values not present in %s dimension: %v",
		e.Column, e.Dimension, e.Keys)
}

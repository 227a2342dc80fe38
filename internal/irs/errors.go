package irs

import "errors"

var (
	ErrMalformedTable = errors.New("malformed_tax_table")
	ErrNoGrossMatch   = errors.New("no_gross_match")
)

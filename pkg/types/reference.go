// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Reference is a bibliographic record in CSL (Citation Style Language)
// shape. The field names follow the CSL-JSON/CSL-YAML schema so corpus
// files are interchangeable with reference managers.
type Reference struct {
	ID             string   `json:"id" yaml:"id"`
	Type           string   `json:"type" yaml:"type"`
	Title          string   `json:"title" yaml:"title"`
	Author         []Name   `json:"author,omitempty" yaml:"author,omitempty"`
	Issued         *CSLDate `json:"issued,omitempty" yaml:"issued,omitempty"`
	ContainerTitle string   `json:"container-title,omitempty" yaml:"container-title,omitempty"`
	Publisher      string   `json:"publisher,omitempty" yaml:"publisher,omitempty"`
	Volume         string   `json:"volume,omitempty" yaml:"volume,omitempty"`
	Page           string   `json:"page,omitempty" yaml:"page,omitempty"`
	DOI            string   `json:"DOI,omitempty" yaml:"DOI,omitempty"`
}

// Name is a person's name in CSL format. Institutional or mononym authors
// use the literal field.
type Name struct {
	Family  string `json:"family,omitempty" yaml:"family,omitempty"`
	Given   string `json:"given,omitempty" yaml:"given,omitempty"`
	Literal string `json:"literal,omitempty" yaml:"literal,omitempty"`
}

// CSLDate is a date in CSL date-parts form: [[year, month, day]].
type CSLDate struct {
	DateParts [][]int `json:"date-parts" yaml:"date-parts"`
}

// Year returns the first date-part year, or 0 when the date is empty.
func (d *CSLDate) Year() int {
	if d == nil || len(d.DateParts) == 0 || len(d.DateParts[0]) == 0 {
		return 0
	}
	return d.DateParts[0][0]
}

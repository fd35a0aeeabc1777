// Package sampletools provides the built-in tools served by toolhost. Each
// sub-package implements one tool:
//
//   - [github.com/germanamz/toolhost/pkg/sampletools/greeting]: hello_world, an English/Spanish greeting formatter
//   - [github.com/germanamz/toolhost/pkg/sampletools/clock]: get_current_time, the current UTC time in ISO-8601
//   - [github.com/germanamz/toolhost/pkg/sampletools/defaults]: builder that merges the built-in toolboxes
package sampletools

// Package normalize turns raw sheet cells into display strings.
//
// Every function here is total: malformed input resolves to a fixed fallback
// (a dash for dates, zero for numbers, the input itself for text that cannot
// be parsed) and never to an error. This lets the grouping stages assume
// clean values without checking.
//
// # Formats
//
//   - [Date]: "2025-12-04", "25.12.4" and "2025/12/04" all render "25.12.04"
//   - [Percent]: "+29.98" renders "29.98%"
//   - [Rate]: "29.978" renders "29.98"
//   - [Volume]: "1234567.8" renders "1,234,567"
//   - [Text]: NFC with collapsed spaces
//
// [Prefixer] decides whether a commentary line needs a "[YY.MM.DD]" marker
// because it describes an earlier day.
package normalize

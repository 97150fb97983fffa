// Package kassabuch records grocery bills line by line and keeps, for every
// product ever bought, a template to type it faster and the history of its
// purchases.
//
// The core functionalities include:
//   - Line computation: a tolerant parsing of typed numbers and the discount
//     arithmetic giving the final price of a line.
//   - Product catalog: the templates found by name while typing, with stable
//     identifiers naming their files.
//   - Purchase history: every bill line appended, once, to the history of its
//     product.
//   - Bill files: backup and export of bills as locale formatted rows, ready
//     for a spreadsheet.
//
// This package serves as the foundational logic for the `kb` command-line
// tool.
package kassabuch

// Package fuzztests houses Go fuzz harnesses for the expansion pipeline
// (source -> lexer -> scanner -> expander). They guard against panics,
// hangs and broken span invariants on arbitrary input.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
package fuzztests

// Package fuzztests houses Go fuzz harnesses for the reckon front end
// (source -> lexer -> parser -> evaluator). They smoke test robustness:
// no panics escape, spans stay consistent and printed trees reparse.
//
// Назначение: загружать произвольные байты в FileSet и прогонять их через
// лексер, парсер и вычислитель.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
//
// Зависимости: internal/source, internal/lexer, internal/parser, internal/diag,
// internal/ast, internal/eval, internal/diagfmt, internal/testkit.
package fuzztests

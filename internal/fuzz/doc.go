// Package fuzztests houses Go fuzz harnesses for the FTL front end and its
// round trips (source -> lexer -> parser -> serializer / codec). They guard
// against panics, hangs and lossy round trips on arbitrary inputs.
//
// Назначение: гонять произвольные байты через FileSet, лексер, парсер,
// сериализатор и astcodec.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
package fuzztests

// Package plusc translates programs in a minimal expression language into C.
//
// A plusc program is a sequence of statements. A statement is either an
// assignment or a bare expression; an expression is an integer literal, a
// name, or two expressions joined by +:
//
//	x = 1
//	y = x + 2 + 3
//	x + y
//
// Operands and operators are separated by whitespace. Chains of + group
// to the right: a + b + c is a + (b + c).
//
// # Quick Start
//
// For simple one-off translation:
//
//	out, err := plusc.Translate("x = 1 + 2", nil)
//
// With configuration:
//
//	out, err := plusc.Translate(src, &plusc.Config{
//	    Filename: "prog.pc",
//	    Template: "void run(void) {\n<<!statements>>\n}\n",
//	})
//
// # Programs
//
// [Compile] returns a [Program] that can be rendered, inspected or dumped:
//
//	prog, err := plusc.Compile(src)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Print(prog.Generate())
//
// # Templates
//
// Generated statements are inserted, one per line, at the single
// <<!statements>> placeholder of the template; the rest of the template is
// copied unchanged. The first assignment to a name declares it as int.
//
// # Error Handling
//
// Errors are returned as specific types for detailed handling:
//   - [ErrorList]: all diagnostics of a syntax error, each a [ParseError]
//     with line and column
//   - [CompileError]: an unusable template (wraps [ErrTemplate])
//
// A syntax error anywhere in the source fails the whole translation.
//
// # Thread Safety
//
// [Program] values are safe for concurrent use. A [Session] is not.
package plusc

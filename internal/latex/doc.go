// Package latex drives an external TeX engine through the two-pass compile
// that resolves cross-references and the table of contents.
//
// A compile is strictly sequential: validate the source, resolve (and create)
// the output directory, run the engine twice with identical arguments in batch
// mode, then check for <stem>.pdf in the output directory. That existence check
// alone decides success; exit codes of both passes are reported but do not
// change the verdict. Clean removes the engine's auxiliary files afterwards.
//
// Process spawning goes through Runner so tests can substitute the engine, and
// progress is reported to Observers so the CLI, metrics and logs stay out of
// the driver's control flow.
package latex

// Package placeholder resolves ${name} placeholders in template text.
//
// Supported forms:
//
//	${name}            value of name, or "" when undefined
//	${name:default}    value of name, or default
//	${name:-default}   same as ${name:default}
//	${name?prompt}     value of name, or ""; the prompt is shown by hooks
//
// Substitution is a single left-to-right pass. A substituted value is never
// scanned again, so a value containing "${B}" is emitted literally. With
// passthrough enabled undefined placeholders are left untouched, which lets
// several layers resolve the same text one after another.
//
// A placeholder preceded by a backslash (\${name}) is not substituted.
package placeholder

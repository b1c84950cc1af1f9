// Package directive handles livedce comment directives.
//
// # Supported Directives
//
//	//livedce:ignore - Suppress findings for the next line or same line
//
// Anything after the directive name is a free-form reason:
//
//	//livedce:ignore kept for the debugger
//
// # Directive Placement
//
// Directives can be placed:
//   - On the line before the affected code (most common)
//   - On the same line as the affected code
//   - On a function declaration (function-level ignore, covers closures too)
//   - In the package doc comment (file-level ignore)
//
// # Examples
//
// Line-level ignore:
//
//	//livedce:ignore
//	_ = a + b  // This finding is suppressed
//
// Same-line ignore:
//
//	_ = a + b  //livedce:ignore
//
// Function-level ignore:
//
//	//livedce:ignore
//	func scratch() {
//	    // All findings in this function are suppressed
//	}
package directive

import "strings"

const directivePrefix = "livedce:"

// hasDirective checks if a comment carries the named directive.
// Supports both "//livedce:name" and "// livedce:name". The name must be
// followed by the end of the comment or whitespace, so "//livedce:ignored"
// is not an ignore directive.
func hasDirective(text, name string) bool {
	text = strings.TrimPrefix(text, "//")
	text = strings.TrimSpace(text)
	rest, ok := strings.CutPrefix(text, directivePrefix+name)
	if !ok {
		return false
	}
	return rest == "" || rest[0] == ' ' || rest[0] == '\t'
}

// IsIgnoreDirective checks if a comment is an ignore directive.
func IsIgnoreDirective(text string) bool { return hasDirective(text, "ignore") }

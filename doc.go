// Package sexp reads and writes Rivest-style S-expressions: nested lists of
// octet strings, each string optionally tagged with a presentation hint.
//
// Three output forms are produced:
//
//   - canonical: every string as <length>:<octets>, no whitespace. This is the
//     form to hash or sign.
//   - base64: the canonical form wrapped as {<base64 digits>}.
//   - advanced: a line-wrapped human readable form that picks token, quoted,
//     hex or base64 notation per string and lays lists out horizontally when
//     they fit in the remaining columns.
//
// The reader accepts all of them, and mixes freely within one input:
//
//	(certificate (issuer [text/plain]"Alice Smith") #0102# |AQID| 3:a b)
//	{KDE6YTE6Yik=}
//
// Hex and base64 regions are decoded by the input channel itself, so a
// base64-wrapped object may contain verbatim, quoted and token strings but not
// another hex or base64 region.
//
// BNF:
//
//	<object>        :: <object6> | <list> | <string> ;
//	<object6>       :: "{" <base64 of object> "}" ;
//	<list>          :: "(" ( <object> | <whitespace> )* ")" ;
//	<string>        :: [ "[" <simple-string> "]" ] <simple-string> ;
//	<simple-string> :: <token> | <verbatim> | <quoted> | <hex> | <base64> ;
//
//	<token>         :: <token-start> <token-char>* ;
//	<token-start>   :: <alpha> | <simple-punc> ;
//	<token-char>    :: <alpha> | <decimal-digit> | <simple-punc> ;
//	<simple-punc>   :: "-" | "." | "/" | "_" | ":" | "*" | "+" | "=" ;
//
//	<verbatim>      :: <decimal> ":" <octet>* ;
//	<quoted>        :: [ <decimal> ] "\"" ( <quoted-char> | <escape> )* "\"" ;
//	<escape>        :: "\\" ( "b" | "t" | "v" | "n" | "f" | "r" | "\"" | "'" | "\\"
//	                   | <octal> <octal> <octal> | "x" <hex-digit> <hex-digit>
//	                   | <line-break> ) ;
//	<hex>           :: [ <decimal> ] "#" ( <hex-digit> | <whitespace> )* "#" ;
//	<base64>        :: [ <decimal> ] "|" ( <base64-digit> | "=" | <whitespace> )* "|" ;
//	<decimal>       :: <decimal-digit>{1,9} ;
//
// The decimal length is required for verbatim strings and must match for
// quoted strings; for hex and base64 a mismatch is only a warning.
package sexp

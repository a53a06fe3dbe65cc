/*
Package lltab is a toolbox for LL(1) grammar analysis and table-driven
top-down parsing.

lltab computes FIRST- and FOLLOW-sets for a context-free grammar, certifies
the grammar as LL(1) by constructing a conflict-free parsing table, and
drives a deterministic stack automaton over a stream of input tokens.
Package structure is as follows:

■ ll: Package ll holds the grammar model, the FIRST/FOLLOW engines and the
table builder.

■ ll/parser: Package parser implements the table-driven LL(1) parser, emitting
a stream of trace events to an observer.

■ ll/scanner: Package scanner defines the tokenizer interface the parser pulls
tokens from, together with default implementations.

■ ll/gramfile: Package gramfile reads grammar definitions from TOML files.

The base package contains data types which are used throughout all the other packages.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package lltab

/*
Command lltab analyzes LL(1) grammars and parses input with table-driven
LL(1) parsers.

Without a grammar file, lltab uses a built-in grammar for arithmetic
expressions. Grammar files are in TOML format, see package ll/gramfile.

    lltab grammar                 # list the rules of the grammar
    lltab sets                    # FIRST- and FOLLOW-sets
    lltab table --html table.html # the LL(1) parsing table
    lltab parse input.txt         # parse a file, showing every step
    lltab -g my.toml repl         # interactive mode

In interactive mode, every line entered is parsed. Lines starting with a
colon are commands:

    :grammar   :sets   :table   :tree   :file NAME   :quit

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package main

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'lltab.cli'
func tracer() tracing.Trace {
	return tracing.Select("lltab.cli")
}

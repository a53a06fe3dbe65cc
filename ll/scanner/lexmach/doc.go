/*
Package lexmach provides an adapter to use the lexmachine scanner generator with
the LL(1) parser of lltab.

For more information on lexmachine, see e.g.
https://hackthology.com/how-to-tokenize-complex-strings-with-lexmachine.html

Lexmachine has to be initialized by providing keywords and regular expressions.
Please refer to the lexmachine documentation on how to instruct lexmachine.
Package lexmach is very opinionated on how to do the setup of lexmachine.
Token types are named after the terminals of a grammar; the adapter assigns
lexmachine token IDs to them on the fly.

	var literals []string       // The tokens representing literal strings
	var keywords []string       // The keyword tokens

	init := func(lm *lexmach.LMAdapter) {
		// initialize lexmachine with all the necessary regular expressions
		//
		// lexmach.Skip      is a pre-defined action which ignores the scanned match
		// lm.MakeToken(typ) is an action which wraps a scanned match into a
		//                   token of type typ
		lm.Add(`[0-9]+`, lm.MakeToken("num"))
	}

Having that, clients use `NewLMAdapter` to wrap lexmachine into a scanner.Tokenizer.
NewLMAdapter will return an error if compiling the DFA failed.

	LM, err := NewLMAdapter(init, literals, keywords)
	if err != nil {
		// do error handling
	}

A scanner is instantiated for each concrete input sequence.
The scanner implements the scanner.Tokenizer interface.

	scan, err := LM.Scanner("input string to tokenize")
	if err != nil {
		// do error handling
	}

On the parser side tokens are read until end of input.

	for … { // feed token into parser
		token := scan.NextToken()
		if !lltab.IsEOF(token) {
			…
		}
	}

ExpressionLexer returns a ready-made adapter for arithmetic expressions.

________________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package lexmach

package main

import (
	"bufio"
	"fmt"
	"io"

	"github.com/fivemoreminix/qview/pkg/lexer"
)

// dump writes the tokens of src to w, one per line:
//
//	start<TAB>end<TAB>class<TAB>"text"
//
// Offsets are in bytes and the text is Go-quoted. Tokens scanned before an
// error are still written; the error is returned.
func dump(w io.Writer, g *lexer.CompiledGrammar, src string, depth int) error {
	bw := bufio.NewWriter(w)
	count := countTokens(g.Name)

	s := lexer.Tokenize(g, src)
	s.MaxDepth = depth
	for s.Next() {
		tok := s.Token()
		count(tok)
		fmt.Fprintf(bw, "%d\t%d\t%s\t%q\n", tok.Start, tok.End, tok.Class, tok.Text)
	}
	countScan(g.Name, s.Err())

	if err := bw.Flush(); err != nil {
		return err
	}
	return s.Err()
}

// dumpFiles dumps every file in turn, each after a header line when there is
// more than one. It returns the exit status: 1 if any file failed.
func dumpFiles(w io.Writer, files []*file, depth int) int {
	status := 0
	for _, f := range files {
		if len(files) > 1 {
			fmt.Fprintf(w, "==> %s <==\n", f.path)
		}
		if f.lang == nil {
			elog.Printf("%s: no grammar for this file, use -grammar", f.path)
			status = 1
			continue
		}
		if err := dump(w, f.lang.Grammar, string(f.contents), depth); err != nil {
			elog.Printf("%s: %s", f.path, err)
			status = 1
		}
	}
	return status
}

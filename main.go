package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/fivemoreminix/qview/pkg/grammars"
	"github.com/fivemoreminix/qview/pkg/lexer"
	"github.com/fivemoreminix/qview/ui"
	"github.com/fivemoreminix/qview/ui/buffer"
	"github.com/gdamore/tcell/v2"
)

var theme = ui.Theme{}

var focusedComponent ui.Component = nil

func changeFocus(to ui.Component) {
	if focusedComponent != nil {
		focusedComponent.SetFocused(false)
	}
	focusedComponent = to
	to.SetFocused(true)
}

// A file is one of the files named on the command line.
type file struct {
	path     string
	contents []byte
	lang     *buffer.Language // Nil when no grammar claims the file
}

func (f *file) grammarName() string {
	if f.lang == nil {
		return "plain"
	}
	return f.lang.Name
}

// loadFile reads the file at path. The grammar named by grammarName is used
// if it is not empty, otherwise one is chosen by the file name.
func loadFile(path, grammarName string) (*file, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	f := &file{path: path, contents: contents}

	if grammarName != "" {
		g, err := grammars.Get(grammarName)
		if err != nil {
			return nil, err
		}
		f.lang = buffer.NewLanguage(g)
		return f, nil
	}

	f.lang, err = buffer.LanguageFor(path)
	if errors.Is(err, grammars.ErrNotFound) {
		dlog.Printf("%s: %s, showing plain text", path, err)
		return f, nil
	}
	return f, err
}

func main() {
	grammarName := flag.String("grammar", "", "grammar to use for every file (default: chosen by file name)")
	depth := flag.Int("depth", lexer.DefaultMaxDepth, "how deeply lexical modes may nest")
	dumpMode := flag.Bool("dump", false, "print the tokens of each file and exit")
	metricsAddr := flag.String("metrics", "", "serve prometheus metrics on this address")
	listMode := flag.Bool("list", false, "list the known grammars and exit")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: qview [flags] file...\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if *dumpMode || *listMode {
		initLogging("stderr")
	} else {
		initLogging("null") // Anything else would draw over the screen
	}

	if *listMode {
		for _, name := range grammars.Names() {
			fmt.Println(name)
		}
		return
	}

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	if *metricsAddr != "" {
		go func() {
			err := serveMetrics(*metricsAddr)
			elog.Printf("metrics server stopped: %s", err)
		}()
	}

	var files []*file
	for _, path := range flag.Args() {
		f, err := loadFile(path, *grammarName)
		if err != nil {
			fmt.Fprintf(os.Stderr, "qview: %s\n", err)
			os.Exit(1)
		}
		files = append(files, f)
	}

	if *dumpMode {
		os.Exit(dumpFiles(os.Stdout, files, *depth))
	}

	if err := view(files, *depth); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

// statusText returns the status bar text for a code view: the file and its
// language on the left, the class of the token under the cursor and the
// cursor position on the right.
func statusText(cv *ui.CodeView) (left, right string) {
	lang := "plain"
	if l := cv.Language(); l != nil {
		lang = l.Name
	}
	left = fmt.Sprintf("%s [%s]", cv.FilePath, lang)

	line, col := cv.GetCursor().GetLineCol()
	right = fmt.Sprintf("%d:%d", line+1, col+1)
	if tok, ok := cv.TokenAtCursor(); ok {
		right = fmt.Sprintf("%s  %s", tok.Class, right)
	}
	return left, right
}

// copyToken copies the token under the cursor to the clipboard and returns a
// message for the status bar.
func copyToken(cv *ui.CodeView) string {
	tok, ok := cv.TokenAtCursor()
	if !ok {
		return "nothing to copy"
	}
	return clip(tok.Text, string(tok.Class))
}

// copyLine copies the cursor's line to the clipboard and returns a message for
// the status bar.
func copyLine(cv *ui.CodeView) string {
	return clip(string(cv.CurrentLine()), "line")
}

// gotoLine moves the cursor to the start of line, counted from one, and
// scrolls it into view. Lines past the end go to the last line.
func gotoLine(cv *ui.CodeView, line int) {
	cv.SetCursor(cv.GetCursor().SetLineCol(line-1, 0))
}

func clip(text, what string) string {
	if err := ClipWrite(text); err != nil {
		elog.Printf("can't copy: %s", err)
		return "copy failed: " + err.Error()
	}
	return fmt.Sprintf("copied %s (%d bytes)", what, len(text))
}

func view(files []*file, depth int) error {
	s, e := tcell.NewScreen()
	if e != nil {
		return e
	}
	if e := s.Init(); e != nil {
		return e
	}
	defer s.Fini() // Useful for handling panics

	if method, err := ClipInitialize(); err != nil {
		ilog.Printf("system clipboard unavailable, copying internally: %s", err)
	} else {
		dlog.Printf("clipboard method %d", method)
	}

	sizex, sizey := s.Size()

	bar := ui.NewStatusBar(&theme)
	bar.SetPos(0, sizey-1)
	bar.SetSize(sizex, 1)

	var codeView *ui.CodeView
	var prompt *GotoLinePrompt // Non-nil while asking for a line
	var current int
	var message string // Replaces the left status text until the next key

	open := func(i int) {
		f := files[i]
		codeView = ui.NewCodeView(&s, f.path, f.contents, f.lang, &theme)
		codeView.Highlighter.MaxDepth = depth
		codeView.Highlighter.Observe = countTokens(f.grammarName())
		codeView.SetPos(0, 0)
		codeView.SetSize(sizex, sizey-1)
		changeFocus(codeView)

		err := codeView.Highlight()
		countScan(f.grammarName(), err)
		if err != nil {
			elog.Printf("%s: %s", f.path, err)
		}
		bar.Err = err
	}
	open(current)

main_loop:
	for {
		bar.Left, bar.Right = statusText(codeView)
		if message != "" {
			bar.Left = message
		}

		s.Clear()
		codeView.Draw(s)
		if prompt != nil {
			prompt.Draw(s)
		} else {
			bar.Draw(s)
		}
		s.Show()

		switch ev := s.PollEvent().(type) {
		case *tcell.EventResize:
			sizex, sizey = s.Size()

			codeView.SetSize(sizex, sizey-1)
			codeView.ScrollToCursor()
			bar.SetPos(0, sizey-1)
			bar.SetSize(sizex, 1)
			if prompt != nil {
				prompt.SetPos(0, sizey-1)
				prompt.SetSize(sizex, 1)
			}

			s.Sync() // Redraw everything
		case *tcell.EventKey:
			message = ""
			if prompt != nil {
				prompt.HandleEvent(ev)
				continue
			}

			switch ev.Key() {
			case tcell.KeyEscape, tcell.KeyCtrlQ:
				break main_loop
			case tcell.KeyCtrlN:
				current = (current + 1) % len(files)
				open(current)
			case tcell.KeyCtrlP:
				current = (current + len(files) - 1) % len(files)
				open(current)
			case tcell.KeyCtrlC:
				message = copyToken(codeView)
			case tcell.KeyCtrlL:
				message = copyLine(codeView)
			case tcell.KeyCtrlG:
				closePrompt := func() {
					prompt = nil
					changeFocus(codeView)
				}
				prompt = NewGotoLinePrompt(&s, &theme, func(line int) {
					gotoLine(codeView, line)
					closePrompt()
				}, closePrompt)
				prompt.SetPos(0, sizey-1)
				prompt.SetSize(sizex, 1)
				changeFocus(prompt)
			default:
				focusedComponent.HandleEvent(ev)
			}
		}
	}
	return nil
}

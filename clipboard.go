package main

import "github.com/zyedidia/clipboard"

type ClipMethod uint8

const (
	ClipExternal ClipMethod = iota
	ClipInternal
)

var ClipCurrentMethod ClipMethod

var internalClipboard string

// ClipInitialize will initialize the system clipboard, and if that fails, an
// internal clipboard is chosen instead. The method chosen is returned along
// with any error that occurred while selecting it. The error is not fatal:
// copying still works within qview.
func ClipInitialize() (ClipMethod, error) {
	err := clipboard.Initialize()
	if err != nil {
		ClipCurrentMethod = ClipInternal
		return ClipInternal, err
	}
	ClipCurrentMethod = ClipExternal
	return ClipExternal, nil
}

// ClipRead receives the clipboard contents using the ClipCurrentMethod.
func ClipRead() (string, error) {
	switch ClipCurrentMethod {
	case ClipExternal:
		return clipboard.ReadAll("clipboard")
	case ClipInternal:
		return internalClipboard, nil
	}
	panic("How did execution get here?")
}

// ClipWrite sets the clipboard contents using the ClipCurrentMethod.
func ClipWrite(content string) error {
	switch ClipCurrentMethod {
	case ClipExternal:
		return clipboard.WriteAll(content, "clipboard")
	case ClipInternal:
		internalClipboard = content
		return nil
	}
	panic("How did execution get here?")
}

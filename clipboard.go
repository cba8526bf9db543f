package main

import "github.com/zyedidia/clipboard"

type ClipMethod uint8

const (
	ClipExternal ClipMethod = iota // The system clipboard
	ClipInternal                   // A register private to this process
)

func (m ClipMethod) String() string {
	if m == ClipExternal {
		return "external"
	}
	return "internal"
}

// Clipboard is a single register: each cut or copy replaces what it holds,
// and a paste reads it without emptying it.
type Clipboard struct {
	method   ClipMethod
	internal string
}

// NewClipboard initializes the clipboard for the given method first, and if
// that fails, an internal method is chosen, instead. The error is not fatal
// because the Clipboard is usable either way.
func NewClipboard(m ClipMethod) (*Clipboard, error) {
	c := &Clipboard{method: ClipInternal}
	if m == ClipInternal {
		return c, nil
	}
	if err := clipboard.Initialize(); err != nil {
		return c, err
	}
	c.method = ClipExternal
	return c, nil
}

func (c *Clipboard) Method() ClipMethod {
	return c.method
}

// Read receives the clipboard contents.
func (c *Clipboard) Read() (string, error) {
	if c.method == ClipExternal {
		return clipboard.ReadAll("clipboard")
	}
	return c.internal, nil
}

// Write replaces the clipboard contents.
func (c *Clipboard) Write(content string) error {
	if c.method == ClipExternal {
		return clipboard.WriteAll(content, "clipboard")
	}
	c.internal = content
	return nil
}

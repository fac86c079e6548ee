package main

import (
	"os/exec"
	"regexp"
	"runtime"
	"strings"

	"github.com/atotto/clipboard"
)

func readClipboardText() (string, error) {
	if runtime.GOOS == "darwin" {
		if output, err := exec.Command("pbpaste", "-Prefer", "txt").Output(); err == nil {
			return string(output), nil
		}
		if output, err := exec.Command("pbpaste").Output(); err == nil {
			return string(output), nil
		}
	}
	return clipboard.ReadAll()
}

// cleanClipboardText flattens pasted text for the single-line chat input:
// RTF markup is stripped, line breaks and tabs become spaces and other
// control characters are dropped.
func cleanClipboardText(text string) string {
	if text == "" {
		return text
	}
	text = stripRTF(text)
	var result strings.Builder
	result.Grow(len(text))
	for _, r := range text {
		switch {
		case r == '\n' || r == '\r' || r == '\t':
			result.WriteRune(' ')
		case r >= 32 && r != 127:
			result.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(result.String()), " ")
}

// rtfControlWord matches a control word such as \b0 or \ansi together
// with its optional delimiting space.
var rtfControlWord = regexp.MustCompile(`^\\[a-zA-Z]+-?[0-9]* ?`)

// stripRTF drops RTF groups and control words, keeping escaped braces
// and backslashes as text.
func stripRTF(text string) string {
	if !strings.Contains(text, `\rtf`) {
		return text
	}
	var b strings.Builder
	b.Grow(len(text))
	for i := 0; i < len(text); i++ {
		switch ch := text[i]; ch {
		case '{', '}':
		case '\\':
			if i+1 < len(text) && strings.IndexByte(`\{}`, text[i+1]) >= 0 {
				b.WriteByte(text[i+1])
				i++
				continue
			}
			if loc := rtfControlWord.FindStringIndex(text[i:]); loc != nil {
				i += loc[1] - 1
			}
		default:
			b.WriteByte(ch)
		}
	}
	return b.String()
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

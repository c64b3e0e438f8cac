package latex

import (
	"bufio"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

const (
	// firstPassPreview bounds the diagnostic text shown for the first pass.
	firstPassPreview = 500
	// finalPassPreview bounds the diagnostic text shown for the final pass.
	finalPassPreview = 1000
	// maxDiagnostics caps the file:line errors kept on a Result.
	maxDiagnostics = 10
)

// Diagnostic is one error line emitted under -file-line-error.
type Diagnostic struct {
	File    string `json:"file" yaml:"file"`
	Line    int    `json:"line" yaml:"line"`
	Message string `json:"message" yaml:"message"`
}

// fileLineError matches "./slides.tex:42: Undefined control sequence."
var fileLineError = regexp.MustCompile(`^(\S[^:]*\.(?:tex|sty|cls|bib|bbl)):(\d+): (.+)$`)

// head returns at most n runes of s, dropping invalid UTF-8.
func head(s string, n int) string {
	s = strings.ToValidUTF8(s, "")
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}

// tail returns at most the last n runes of s, dropping invalid UTF-8.
func tail(s string, n int) string {
	s = strings.ToValidUTF8(s, "")
	total := utf8.RuneCountInString(s)
	if total <= n {
		return s
	}
	skip := total - n
	count := 0
	for i := range s {
		if count == skip {
			return s[i:]
		}
		count++
	}
	return ""
}

// preview picks what to show for a captured pass: the start of stderr, or the
// end of stdout when stderr is empty, since TeX engines print errors at the
// point of failure on stdout.
func preview(stdout, stderr string, n int) string {
	if strings.TrimSpace(stderr) != "" {
		return head(stderr, n)
	}
	if strings.TrimSpace(stdout) != "" {
		return tail(stdout, n)
	}
	return ""
}

// parseDiagnostics extracts file:line errors from engine output, keeping the
// first maxDiagnostics in order of appearance.
func parseDiagnostics(output string) []Diagnostic {
	var diags []Diagnostic
	scanner := bufio.NewScanner(strings.NewReader(output))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		m := fileLineError.FindStringSubmatch(strings.TrimRight(scanner.Text(), "\r"))
		if m == nil {
			continue
		}
		line, err := strconv.Atoi(m[2])
		if err != nil {
			continue
		}
		diags = append(diags, Diagnostic{File: m[1], Line: line, Message: m[3]})
		if len(diags) == maxDiagnostics {
			break
		}
	}
	return diags
}

package pull

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// Sample is one example test from a problem statement.
type Sample struct {
	Input  string
	Output string
}

// ParseSamples extracts the sample tests of a problem page. Inputs and
// outputs come from <div class="input"><pre> and <div class="output"><pre>;
// pages without them fall back to alternating <pre> blocks.
func ParseSamples(r io.Reader) ([]Sample, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse problem page: %w", err)
	}

	var inputs, outputs, all []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch {
			case n.Data == "div" && hasClass(n, "input"):
				if pre := findElement(n, "pre"); pre != nil {
					inputs = append(inputs, preText(pre))
				}
			case n.Data == "div" && hasClass(n, "output"):
				if pre := findElement(n, "pre"); pre != nil {
					outputs = append(outputs, preText(pre))
				}
			case n.Data == "pre":
				if text := preText(n); text != "" {
					all = append(all, text)
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	if len(inputs) == 0 || len(outputs) == 0 {
		inputs, outputs = nil, nil
		for i, text := range all {
			if i%2 == 0 {
				inputs = append(inputs, text)
			} else {
				outputs = append(outputs, text)
			}
		}
	}

	n := min(len(inputs), len(outputs))
	samples := make([]Sample, n)
	for i := 0; i < n; i++ {
		samples[i] = Sample{Input: inputs[i], Output: outputs[i]}
	}
	return samples, nil
}

func hasClass(n *html.Node, class string) bool {
	for _, a := range n.Attr {
		if a.Key != "class" {
			continue
		}
		for _, c := range strings.Fields(a.Val) {
			if c == class {
				return true
			}
		}
	}
	return false
}

func findElement(n *html.Node, tag string) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.Data == tag {
			return c
		}
		if found := findElement(c, tag); found != nil {
			return found
		}
	}
	return nil
}

// preText returns the text of a <pre>. Nested <div> elements (one per test
// line on newer pages) and <br> tags both end a line. Trailing spaces are
// trimmed from every line and blank lines around the text are dropped.
func preText(pre *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch {
		case n.Type == html.TextNode:
			b.WriteString(n.Data)
		case n.Type == html.ElementNode && n.Data == "br":
			b.WriteByte('\n')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
		if n.Type == html.ElementNode && n.Data == "div" {
			b.WriteByte('\n')
		}
	}
	lineDivs := false
	for c := pre.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.Data == "div" {
			lineDivs = true
		}
	}
	if lineDivs {
		// Only the divs carry content; text between them is layout whitespace.
		for c := pre.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode {
				walk(c)
			}
		}
	} else {
		walk(pre)
	}

	lines := strings.Split(strings.ReplaceAll(b.String(), "\r\n", "\n"), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Trim(strings.Join(lines, "\n"), "\n")
}

/*
Package gradle reads Android Gradle build scripts without running Gradle.
gradle_script_parser.go implements the block scanner shared by the Groovy DSL (.gradle)
and Kotlin DSL (.gradle.kts) readers: it locates `keyword { ... }` blocks while skipping
comments and string literals.
*/
package gradle

import (
	"regexp"
	"strings"

	buildinfoflexpack "github.com/jfrog/build-info-go/flexpack/gradle"
)

var (
	// (?:getByName|create|named|maybeCreate|register) Container accessors used for build types
	// \(\s*['"]([^'"]+)['"]\s*\) The quoted name inside the parentheses
	// example: getByName("release") or create("staging")
	// Capture group 1: block name
	namedContainerRe = regexp.MustCompile(`(?:getByName|create|named|maybeCreate|register)\s*\(\s*['"]([^'"]+)['"]\s*\)\s*$`)

	// ([a-zA-Z_][a-zA-Z0-9_]*) A plain identifier right before the opening brace
	// example: release {
	// Capture group 1: block name
	identifierHeaderRe = regexp.MustCompile(`([a-zA-Z_][a-zA-Z0-9_]*)\s*$`)
)

type blockExtractorState struct {
	inString       bool
	stringChar     byte
	inLineComment  bool
	inBlockComment bool
}

// processChar advances over comments and string literals. It returns the index to continue
// from and whether the character was consumed.
func (s *blockExtractorState) processChar(content string, i int) (int, bool) {
	char := content[i]

	if s.inLineComment {
		if char == '\n' {
			s.inLineComment = false
		}
		return i, true
	}

	if s.inBlockComment {
		if char == '*' && i+1 < len(content) && content[i+1] == '/' {
			s.inBlockComment = false
			return i + 1, true
		}
		return i, true
	}

	if s.inString {
		if char == s.stringChar && !buildinfoflexpack.IsEscaped(content, i) {
			s.inString = false
		}
		return i, true
	}

	switch char {
	case '/':
		if i+1 < len(content) {
			switch content[i+1] {
			case '/':
				s.inLineComment = true
				return i + 1, true
			case '*':
				s.inBlockComment = true
				return i + 1, true
			}
		}
	case '"', '\'':
		s.inString = true
		s.stringChar = char
		return i, true
	}

	return i, false
}

// blockSpan locates one `keyword { ... }` block.
type blockSpan struct {
	start int // index of the keyword
	open  int // index of '{'
	end   int // index of the matching '}'
}

func (b blockSpan) body(content string) string {
	return content[b.open+1 : b.end]
}

// ExtractBlocks returns the bodies of every `keyword { ... }` block in content, in order.
// Nested blocks with the same keyword are returned as part of their parent only.
func ExtractBlocks(content, keyword string) []string {
	var blocks []string
	for _, span := range findBlocks(content, keyword) {
		blocks = append(blocks, span.body(content))
	}
	return blocks
}

func findBlocks(content, keyword string) []blockSpan {
	var spans []blockSpan
	idx := 0
	for {
		span, ok := findNextBlock(content, keyword, idx)
		if !ok {
			break
		}
		spans = append(spans, span)
		idx = span.end + 1
	}
	return spans
}

func findNextBlock(content, keyword string, startIndex int) (blockSpan, bool) {
	if keyword == "" {
		return blockSpan{}, false
	}
	state := &blockExtractorState{}
	keywordLen := len(keyword)
	span := blockSpan{start: -1, open: -1}
	depth := 0

	// 0: Search for keyword, 1: Search for opening brace, 2: Search for closing brace
	mode := 0
	for i := startIndex; i < len(content); i++ {
		newIndex, processed := state.processChar(content, i)
		if processed {
			i = newIndex
			continue
		}

		char := content[i]
		switch mode {
		case 0:
			if char == keyword[0] && i+keywordLen <= len(content) && content[i:i+keywordLen] == keyword {
				validStart := i == 0 || buildinfoflexpack.IsDelimiter(content[i-1])
				validEnd := i+keywordLen == len(content) || buildinfoflexpack.IsDelimiter(content[i+keywordLen])
				if validStart && validEnd {
					mode = 1
					span.start = i
					i += keywordLen - 1
				}
			}
		case 1:
			switch {
			case char == '{':
				mode = 2
				depth = 1
				span.open = i
			case !buildinfoflexpack.IsWhitespace(char):
				mode = 0
			}
		case 2:
			switch char {
			case '{':
				depth++
			case '}':
				depth--
				if depth == 0 {
					span.end = i
					return span, true
				}
			}
		}
	}
	return blockSpan{}, false
}

// removeBlocks drops every `keyword { ... }` block, keyword included.
func removeBlocks(content, keyword string) string {
	spans := findBlocks(content, keyword)
	if len(spans) == 0 {
		return content
	}
	var sb strings.Builder
	last := 0
	for _, span := range spans {
		sb.WriteString(content[last:span.start])
		last = span.end + 1
	}
	sb.WriteString(content[last:])
	return sb.String()
}

type namedBlock struct {
	Name string
	Body string
}

// childBlocks returns the direct child blocks of content, named after the text preceding
// their opening brace: `release {`, `getByName("release") {`, `create("staging") {`.
func childBlocks(content string) []namedBlock {
	var children []namedBlock
	state := &blockExtractorState{}
	depth := 0
	headerStart := 0
	openIdx := -1
	header := ""
	for i := 0; i < len(content); i++ {
		newIndex, processed := state.processChar(content, i)
		if processed {
			i = newIndex
			continue
		}
		switch content[i] {
		case '{':
			if depth == 0 {
				header = strings.TrimSpace(content[headerStart:i])
				openIdx = i
			}
			depth++
		case '}':
			depth--
			if depth == 0 && openIdx >= 0 {
				if name := blockName(header); name != "" {
					children = append(children, namedBlock{Name: name, Body: content[openIdx+1 : i]})
				}
				openIdx = -1
				headerStart = i + 1
			}
		case '\n', ';':
			if depth == 0 {
				headerStart = i + 1
			}
		}
	}
	return children
}

func blockName(header string) string {
	if m := namedContainerRe.FindStringSubmatch(header); m != nil {
		return m[1]
	}
	if m := identifierHeaderRe.FindStringSubmatch(header); m != nil {
		return m[1]
	}
	return ""
}

// stripComments blanks out line and block comments, keeping string literals intact.
func stripComments(content string) string {
	var sb strings.Builder
	sb.Grow(len(content))
	inString := false
	var quote byte
	for i := 0; i < len(content); i++ {
		c := content[i]
		if inString {
			sb.WriteByte(c)
			if c == quote && !buildinfoflexpack.IsEscaped(content, i) {
				inString = false
			}
			continue
		}
		switch {
		case c == '"' || c == '\'':
			inString = true
			quote = c
			sb.WriteByte(c)
		case c == '/' && i+1 < len(content) && content[i+1] == '/':
			for i < len(content) && content[i] != '\n' {
				i++
			}
			if i < len(content) {
				sb.WriteByte('\n')
			}
		case c == '/' && i+1 < len(content) && content[i+1] == '*':
			i += 2
			for i+1 < len(content) && !(content[i] == '*' && content[i+1] == '/') {
				if content[i] == '\n' {
					sb.WriteByte('\n')
				}
				i++
			}
			i++
		default:
			sb.WriteByte(c)
		}
	}
	return sb.String()
}

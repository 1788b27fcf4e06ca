package pipeline

import "strings"

// slideCSS pins the filled document to a single borderless page so the
// engine's first-page export captures the whole slide. Dimensions are left
// to the engine's paper settings; the stylesheet only removes default
// margins and keeps content on one page.
const slideCSS = `@page { margin: 0; }
html, body { margin: 0; padding: 0; }
body { page-break-after: avoid; }`

// InjectSlideCSS inserts the slide stylesheet into an HTML document.
// Tries </head> first, then after <body>, then prepends to the document.
func InjectSlideCSS(htmlContent string) string {
	styleBlock := "<style>" + slideCSS + "</style>"
	lowerHTML := strings.ToLower(htmlContent)

	if idx := strings.Index(lowerHTML, "</head>"); idx != -1 {
		return htmlContent[:idx] + styleBlock + htmlContent[idx:]
	}

	if idx := strings.Index(lowerHTML, "<body"); idx != -1 {
		closeIdx := strings.Index(htmlContent[idx:], ">")
		if closeIdx != -1 {
			insertPos := idx + closeIdx + 1
			return htmlContent[:insertPos] + styleBlock + htmlContent[insertPos:]
		}
	}

	return styleBlock + htmlContent
}

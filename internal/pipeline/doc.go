// Package pipeline holds the document-preparation stages shared by the
// certificate renderer: Markdown template conversion and slide stylesheet
// injection.
package pipeline

package api

import (
	"embed"
	"html/template"
)

//go:embed templates/*.html
var templateFS embed.FS

var views = template.Must(template.ParseFS(templateFS, "templates/*.html"))

type styleOption struct {
	Value string
	Label string
}

type functionOption struct {
	Value  string
	Label  string
	Styles []styleOption
}

var functionOptions = []functionOption{
	{
		Value: "answer_question",
		Label: "Answer a Question",
		Styles: []styleOption{
			{"general", "General"},
			{"detailed", "Detailed"},
			{"concise", "Concise"},
		},
	},
	{
		Value: "summarize_text",
		Label: "Summarize Text",
		Styles: []styleOption{
			{"standard", "Standard"},
			{"key_points", "Key Points"},
			{"very_short", "Very Short"},
		},
	},
	{
		Value: "generate_creative_content",
		Label: "Generate Creative Content",
		Styles: []styleOption{
			{"story_standard", "Story (Standard)"},
			{"story_imaginative", "Story (Imaginative)"},
			{"story_structured", "Story (Structured)"},
			{"poem_standard", "Poem (Standard)"},
			{"poem_imaginative", "Poem (Imaginative)"},
			{"poem_structured", "Poem (Structured)"},
			{"essay_idea_standard", "Essay Idea (Standard)"},
			{"essay_idea_imaginative", "Essay Idea (Imaginative)"},
			{"essay_idea_structured", "Essay Idea (Structured)"},
		},
	},
}

type indexView struct {
	Functions []functionOption
}

type resultView struct {
	Query            string
	ResponseHTML     template.HTML // produced by the markdown renderer, raw HTML stripped
	OriginalResponse string
}

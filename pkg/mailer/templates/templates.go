package templates

import (
	"bytes"
	"fmt"
	htmpl "html/template"
	"strings"
	texttpl "text/template"
)

const Welcome = "welcome"

type emailTemplate struct {
	subject *texttpl.Template
	text    *texttpl.Template
	html    *htmpl.Template
}

var funcs = map[string]any{"default": defaultFn}

func mustTemplate(subject, text, html string) emailTemplate {
	return emailTemplate{
		subject: texttpl.Must(texttpl.New("subject").Funcs(funcs).Parse(subject)),
		text:    texttpl.Must(texttpl.New("text").Funcs(funcs).Parse(text)),
		html:    htmpl.Must(htmpl.New("html").Funcs(funcs).Parse(html)),
	}
}

var registry = map[string]emailTemplate{
	Welcome: mustTemplate(
		`Welcome to {{ .AppName | default "Recipe App" }}`,
		"Hi {{ .Name | default .Email }},\n\n"+
			"Your account {{ .Email }} is ready. Request an API token at /api/user/token to start adding tags.\n",
		`<p>Hi {{ .Name | default .Email }},</p>`+
			`<p>Your account <b>{{ .Email }}</b> is ready. Request an API token at <code>/api/user/token</code> to start adding tags.</p>`,
	),
}

// defaultFn supports pipe usage: {{ .Value | default "Fallback" }}
func defaultFn(fallback any, value any) any {
	switch x := value.(type) {
	case string:
		if strings.TrimSpace(x) == "" {
			return fallback
		}
		return x
	case nil:
		return fallback
	default:
		return value
	}
}

// Render executes the named template and returns subject, text and html bodies.
func Render(name string, data map[string]any) (string, string, string, error) {
	t, ok := registry[strings.ToLower(name)]
	if !ok {
		return "", "", "", fmt.Errorf("unknown email template %q", name)
	}
	var subj, text, html bytes.Buffer
	if err := t.subject.Execute(&subj, data); err != nil {
		return "", "", "", fmt.Errorf("render subject: %w", err)
	}
	if err := t.text.Execute(&text, data); err != nil {
		return "", "", "", fmt.Errorf("render text: %w", err)
	}
	if err := t.html.Execute(&html, data); err != nil {
		return "", "", "", fmt.Errorf("render html: %w", err)
	}
	return subj.String(), text.String(), html.String(), nil
}

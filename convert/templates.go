package convert

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"text/template"

	sprig "github.com/go-task/slim-sprig/v3"

	"anfc/article"
	"anfc/config"
)

// Values is a struct that holds variables we make available for template expansion
type Values struct {
	Context    string
	Title      string
	Slug       string
	Language   string
	Date       string
	Authors    []string
	Identifier string
	SourceFile string
}

func buildDate(art *article.Envelope) string {
	if art.Published.IsZero() {
		return ""
	}
	return art.Published.Format("2006-01-02")
}

func expandTemplate(art *article.Envelope, src string, name config.TemplateFieldName, field string) (string, error) {
	funcMap := sprig.FuncMap()

	tmpl, err := template.New(string(name)).Funcs(funcMap).Parse(field)
	if err != nil {
		return "", fmt.Errorf("unable to parse template field %s: %w", name, err)
	}

	values := Values{
		Context:    string(name),
		Title:      art.Title,
		Slug:       art.Slug,
		Language:   art.Language,
		Date:       buildDate(art),
		Authors:    art.Authors,
		Identifier: art.Identifier,
		SourceFile: strings.TrimSuffix(filepath.Base(src), filepath.Ext(src)),
	}

	buf := new(bytes.Buffer)
	if err := tmpl.Execute(buf, values); err != nil {
		return "", err
	}
	return buf.String(), nil
}

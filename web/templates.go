package web

import (
	"html/template"
	"io/fs"
	"strconv"

	"nepalvoices-web/core/calendar"
	"nepalvoices-web/core/domain"
	htmlutil "nepalvoices-web/pkg/utils/html"
)

var pageTemplates = []string{"home.html", "category.html", "article.html", "error.html"}

var templateFuncs = template.FuncMap{
	// sanitize renders WordPress body HTML after the article policy ran
	"sanitize": func(body string) template.HTML {
		return template.HTML(htmlutil.SanitizeArticle(body))
	},
	"cardStyle": func(c *domain.RGBColor) template.CSS {
		if c == nil {
			return ""
		}
		return template.CSS("--card-color: " + c.CSS())
	},
	"plainTitle": htmlutil.CleanTitle,
	"nepaliNumber": func(n int) string {
		return calendar.ToDevanagari(strconv.Itoa(n))
	},
	"add": func(a, b int) int { return a + b },
}

// parseTemplates builds one template set per page, each sharing the layout
func parseTemplates(fsys fs.FS) (map[string]*template.Template, error) {
	out := make(map[string]*template.Template, len(pageTemplates))
	for _, name := range pageTemplates {
		tmpl, err := template.New(name).Funcs(templateFuncs).ParseFS(fsys, "templates/layout.html", "templates/"+name)
		if err != nil {
			return nil, err
		}
		out[name] = tmpl
	}
	return out, nil
}
